package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/waferlabel/pkg/layoutdb"
	"github.com/matzehuels/waferlabel/pkg/pipeline"
)

func TestSetLogFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "loaded design"},
		{"logfmt", "msg=\"loaded design\""},
		{"json", "\"msg\":\"loaded design\""},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, log.InfoLevel)
			if err := setLogFormat(l, tt.format); err != nil {
				t.Fatalf("setLogFormat(%q) error: %v", tt.format, err)
			}
			l.Info("loaded design")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}

	if err := setLogFormat(log.Default(), "xml"); err == nil {
		t.Error("setLogFormat(xml) error = nil, want error")
	}
}

func TestProgressDoneFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.SetFormatter(log.LogfmtFormatter)

	newProgress(l).done("saved design", "path", "wafer.json")

	out := buf.String()
	for _, want := range []string{"msg=\"saved design\"", "path=wafer.json", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want it to contain %q", out, want)
		}
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}
}

func TestWithDesignAndRun(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.SetFormatter(log.JSONFormatter)

	design, err := layoutdb.New(0.001)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	result := &pipeline.Result{RunID: uuid.New(), Container: "WAFER"}

	ctx := withLogger(context.Background(), l)
	ctx = withDesign(ctx, "/tmp/designs/wafer.json", design)
	ctx = withRun(ctx, result)
	loggerFromContext(ctx).Info("saved design")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line %q is not JSON: %v", buf.String(), err)
	}
	want := map[string]string{
		"design":    "wafer.json",
		"design_id": design.ID.String()[:8],
		"run":       result.RunID.String()[:8],
		"container": "WAFER",
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("field %s = %v, want %q", k, line[k], v)
		}
	}
}
