package docs

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fenced block infos that the scenarios execute.
const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	bashCheck    = "bash check"
	consoleCheck = "console check"
)

var listedTopic = regexp.MustCompile(`(?m)^\*\s+([^:]+):`)

// TestTopics checks that readme.md lists exactly the embedded topics.
func TestTopics(t *testing.T) {
	readme, err := GetTopic(index)
	if err != nil {
		t.Fatalf("GetTopic(%q) error = %v", index, err)
	}
	listed := make(map[string]bool)
	for _, m := range listedTopic.FindAllStringSubmatch(readme, -1) {
		listed[strings.TrimSpace(m[1])] = true
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range all {
		if !listed[topic] {
			t.Errorf("topic %q is not listed in %s.md", topic, index)
		}
		delete(listed, topic)
	}
	for _, topic := range slices.Sorted(maps.Keys(listed)) {
		t.Errorf("%s.md lists %q which does not exist", index, topic)
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	if len(all) == 0 {
		t.Fatal("GetAllTopics() returned no topics")
	}
	if slices.Contains(all, index) {
		t.Errorf("GetAllTopics() lists the %q index", index)
	}

	star, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error = %v", err)
	}
	first, _ := GetTopic(all[0])
	if !strings.HasPrefix(star, first) {
		t.Errorf("GetTopic(*) does not start with the %q topic", all[0])
	}

	if _, err := GetTopic("missing"); err == nil {
		t.Error("GetTopic(missing) error = nil")
	}
}

// TestScenarios runs the executable examples of the manual against a fresh
// build of k4tax.
func TestScenarios(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	var bin string
	for _, file := range files {
		scenarios := parseScenarios(t, file)
		if len(scenarios) == 0 {
			continue
		}
		if bin == "" {
			bin = buildK4tax(t)
		}
		for _, s := range scenarios {
			t.Run(fmt.Sprintf("%s:%d", file, s.line), func(t *testing.T) { s.run(t, bin) })
		}
	}
}

// block is a fenced code block of a scenario.
type block struct {
	info    string
	content string
	line    int
}

// scenario is a sequence of blocks starting with a setup, run in its own
// folder.
type scenario struct {
	file   string
	line   int
	blocks []block
}

func (s scenario) where(b block) string { return fmt.Sprintf("%s:%d", s.file, b.line) }

func (s scenario) run(t *testing.T, bin string) {
	dir := t.TempDir()
	env := append(os.Environ(),
		fmt.Sprintf("PATH=%s%c%s", filepath.Dir(bin), os.PathListSeparator, os.Getenv("PATH")),
		"K4TAX_TESTING_NOW=2006-01-02 15:04:05",
	)

	var output string
	for _, b := range s.blocks {
		if b.info == consoleCheck {
			got := strings.ReplaceAll(strings.TrimSpace(output), "\t", "        ")
			if want := strings.TrimSpace(b.content); got != want {
				t.Errorf("%s: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q", s.where(b), got, want, got, want)
			}
			continue
		}

		cmd := exec.Command("bash", "-c", "set -e; "+b.content)
		cmd.Dir = dir
		cmd.Env = env
		out, err := cmd.CombinedOutput()
		if b.info == bashRun {
			output = string(out)
		}
		if err == nil {
			continue
		}
		if b.info == bashCheck {
			t.Errorf("%s: check failed: %v with output:\n%s", s.where(b), err, out)
			continue
		}
		t.Fatalf("%s: %s failed: %v with output:\n%s", s.where(b), b.info, err, out)
	}
}

// parseScenarios returns the scenarios of a markdown file. Blocks before the
// first setup are ignored.
func parseScenarios(t *testing.T, file string) []scenario {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("cannot read %s: %v", file, err)
	}

	var scenarios []scenario
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		b := block{
			info: string(fcb.Info.Segment.Value(source)),
			line: bytes.Count(source[:fcb.Info.Segment.Start], []byte("\n")) + 1,
		}
		switch b.info {
		case bashSetup:
			scenarios = append(scenarios, scenario{file: file, line: b.line})
		case bashRun, bashCheck, consoleCheck:
			if len(scenarios) == 0 {
				return ast.WalkContinue, nil
			}
		default:
			return ast.WalkContinue, nil
		}
		var content strings.Builder
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			content.Write(seg.Value(source))
		}
		b.content = content.String()
		last := &scenarios[len(scenarios)-1]
		last.blocks = append(last.blocks, b)
		return ast.WalkContinue, nil
	})
	return scenarios
}

// buildK4tax compiles the k4tax command and returns the binary path.
func buildK4tax(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "k4tax")
	if out, err := exec.Command("go", "build", "-o", bin, "../k4tax/").CombinedOutput(); err != nil {
		t.Fatalf("cannot build k4tax: %v\n%s", err, out)
	}
	return bin
}
