package cmd

import (
	"slices"
	"testing"

	"github.com/posener/complete/v2/predict"
)

func TestCompletionCommand(t *testing.T) {
	c := completionCommand()

	report, ok := c.Sub["report"]
	if !ok {
		t.Fatal("completion has no report command")
	}
	for _, name := range []string{"out", "format", "trades", "simplified"} {
		if _, ok := report.Flags[name]; !ok {
			t.Errorf("report completion has no -%s flag", name)
		}
	}
	if p := report.Flags["simplified"]; p != nil {
		t.Errorf("report -simplified predictor = %v, want nil for a bool flag", p)
	}
	if _, ok := c.Flags["config"]; !ok {
		t.Error("completion has no global -config flag")
	}

	topics, ok := c.Sub["topic"].Args.(predict.Set)
	if !ok {
		t.Fatalf("topic arguments predictor = %T, want predict.Set", c.Sub["topic"].Args)
	}
	if !slices.Contains(topics, "report") {
		t.Errorf("topic arguments = %v, want the report topic", topics)
	}
}
