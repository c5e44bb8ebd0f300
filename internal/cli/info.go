package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// infoCommand creates the info command for summarizing a design file.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info DESIGN",
		Short: "Summarize a design file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			design, err := loadDesign(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			stats := design.Stats()
			var tops []string
			for _, cell := range design.TopCells() {
				tops = append(tops, cell.Name())
			}

			fmt.Println(StyleTitle.Render(args[0]))
			printKeyValue("ID", design.ID.String())
			printKeyValue("DBU", strconv.FormatFloat(design.DBU(), 'g', -1, 64))
			printKeyValue("Top cells", strings.Join(tops, ", "))
			printKeyValue("Cells", strconv.Itoa(stats.Cells))
			printKeyValue("Label cells", strconv.Itoa(stats.LabelCells))
			printKeyValue("Instances", strconv.Itoa(stats.Instances))
			printKeyValue("Placements", strconv.Itoa(stats.Placements))
			if len(tops) != 1 {
				printWarning("no unique top cell; pass --container to place labels")
			}
			return nil
		},
	}
}
