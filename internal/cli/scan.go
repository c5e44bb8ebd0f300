package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waferlabel/pkg/geom"
	"github.com/matzehuels/waferlabel/pkg/marker"
	"github.com/matzehuels/waferlabel/pkg/units"
)

// scanCommand creates the scan command for listing template placements.
func (c *CLI) scanCommand() *cobra.Command {
	var template, container string

	cmd := &cobra.Command{
		Use:   "scan DESIGN",
		Short: "List the placements of a template cell in raster order",
		Long: `List the placements of a template cell in the order the serial
command numbers them: by y, then x, ascending.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), args[0], container, template)
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "name of the cell to scan for")
	cmd.Flags().StringVar(&container, "container", "", "cell to scan (default: the top cell)")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func runScan(ctx context.Context, path, container, template string) error {
	design, err := loadDesign(ctx, path)
	if err != nil {
		return err
	}
	ctx = withDesign(ctx, path, design)
	cell, err := design.Container(container)
	if err != nil {
		return err
	}

	pts, err := marker.Scan(cell, template)
	if err != nil {
		return err
	}
	ordered := marker.Order(pts)
	loggerFromContext(ctx).Debug("scanned", "container", cell.Name(), "template", template, "placements", len(ordered))

	if len(ordered) == 0 {
		printWarning("no placements of %s in %s", template, cell.Name())
		return nil
	}

	printInfo("%s placements of %s in %s",
		StyleNumber.Render(strconv.Itoa(len(ordered))),
		StyleHighlight.Render(template),
		StyleHighlight.Render(cell.Name()))
	fmt.Println(renderTable(
		[]string{"#", "x", "y", "x (grid)", "y (grid)"},
		scanRows(ordered, design.Scale()),
		0, 1, 2, 3, 4,
	))
	printNextStep("Number them with", "serial", path, "--template", template)
	return nil
}

// scanRows formats ordered placements as table rows, numbered from 1.
func scanRows(pts []geom.Point, scale units.Scale) [][]string {
	rows := make([][]string, len(pts))
	for i, p := range pts {
		v := scale.Vec(p)
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(v.X, 'f', -1, 64),
			strconv.FormatFloat(v.Y, 'f', -1, 64),
			strconv.FormatInt(p.X, 10),
			strconv.FormatInt(p.Y, 10),
		}
	}
	return rows
}
