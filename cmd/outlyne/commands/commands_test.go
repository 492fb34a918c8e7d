package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/jmylchreest/outlyne/internal/output"
	"github.com/jmylchreest/outlyne/pkg/outline"
)

const reportHTML = `<html><head><style>p{}</style></head><body>
<p>1 Introduction</p>
<p>图1.1 System overview</p>
<p>1.1 Background</p>
<p>1.1.1 Sensor Placement</p>
<table><tr><td>9 Table Cell</td></tr></table>
<p>2 Methods</p>
<p>1 Introduction</p>
</body></html>`

// run executes a fresh command tree and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOutlineCommand(t *testing.T) {
	input := writeInput(t, "report.html", reportHTML)

	stdout, stderr, err := run(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"tables removed: 1",
		"captions removed: 1",
		"1 Introduction\n  1.1 Background\n2 Methods\n",
		"Extracted 3 headings",
		"report_outline.md",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in stdout:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "1.1.1") {
		t.Error("level 3 heading should be excluded at the default max level")
	}
	if !strings.Contains(stderr, "Extracting outline") {
		t.Errorf("expected progress on stderr, got %q", stderr)
	}
}

func TestOutlineCommandSiblingFiles(t *testing.T) {
	input := writeInput(t, "report.html", reportHTML)

	if _, _, err := run(t, input, "--quiet"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txt, err := os.ReadFile(output.SiblingPath(input, outline.FormatText))
	if err != nil {
		t.Fatalf("txt sibling missing: %v", err)
	}
	if string(txt) != "1 Introduction\n  1.1 Background\n2 Methods" {
		t.Errorf("txt sibling = %q", txt)
	}

	md, err := os.ReadFile(output.SiblingPath(input, outline.FormatMarkdown))
	if err != nil {
		t.Fatalf("markdown sibling missing: %v", err)
	}
	if !strings.HasPrefix(string(md), "# Document Outline\n\n## 1 Introduction\n") {
		t.Errorf("markdown sibling = %q", md)
	}

	data, err := os.ReadFile(output.SiblingPath(input, outline.FormatJSON))
	if err != nil {
		t.Fatalf("json sibling missing: %v", err)
	}
	var entries []outline.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("invalid JSON sibling: %v", err)
	}
	if len(entries) != 3 || entries[1].Number != "1.1" || entries[1].Level != 2 {
		t.Errorf("json sibling entries = %+v", entries)
	}
}

func TestOutlineCommandOutputFile(t *testing.T) {
	input := writeInput(t, "report.html", reportHTML)
	out := filepath.Join(t.TempDir(), "nested", "outline.json")

	stdout, _, err := run(t, input, "--max-level", "3", "--format", "json", "--output", out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Outline saved to: "+out) {
		t.Errorf("expected save message, got:\n%s", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var entries []outline.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("got %d entries, want 4", len(entries))
	}

	if _, err := os.Stat(output.SiblingPath(input, outline.FormatText)); !os.IsNotExist(err) {
		t.Error("sibling files should not be written when --output is set")
	}
}

func TestOutlineCommandRejectsBadSettings(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.html")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"max level", []string{missing, "--max-level", "5"}, outline.ErrInvalidConfig},
		{"format", []string{missing, "--format", "pdf"}, outline.ErrUnknownFormat},
		{"preset", []string{missing, "--preset", "shallow"}, outline.ErrInvalidConfig},
		{"input size", []string{missing, "--max-input-size", "lots"}, outline.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOutlineCommandMissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.html")

	_, _, err := run(t, missing)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestOutlineCommandEnvironment(t *testing.T) {
	input := writeInput(t, "report.html", reportHTML)
	t.Setenv("OUTLYNE_MAX_LEVEL", "1")

	stdout, _, err := run(t, input, "--write-siblings=false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(stdout, "1.1 Background") {
		t.Errorf("OUTLYNE_MAX_LEVEL=1 should drop level 2 headings:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Extracted 2 headings") {
		t.Errorf("unexpected summary:\n%s", stdout)
	}
}

func TestCleanCommand(t *testing.T) {
	input := writeInput(t, "report.html", reportHTML)

	stdout, stderr, err := run(t, "clean", input, "--format", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(stdout, "9 Table Cell") || strings.Contains(stdout, "System overview") {
		t.Errorf("removed content leaked into output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "1.1.1 Sensor Placement") {
		t.Errorf("expected surviving block in output:\n%s", stdout)
	}
	if !strings.Contains(stderr, "tables removed: 1") {
		t.Errorf("expected stats on stderr, got %q", stderr)
	}

	stdout, _, err = run(t, "clean", input, "--stats-only")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("--stats-only should print nothing to stdout, got %q", stdout)
	}
}

func TestConvertCommand(t *testing.T) {
	d := docx.New().WithDefaultTheme()
	d.AddParagraph().Style("Heading1").AddText("1 Introduction")
	d.AddParagraph().Style("Heading2").AddText("1.1 Scope")

	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	input := writeInput(t, "report.docx", buf.String())

	stdout, _, err := run(t, "convert", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	htmlPath := strings.TrimSuffix(input, ".docx") + ".html"
	if !strings.Contains(stdout, htmlPath) {
		t.Errorf("expected output path in:\n%s", stdout)
	}

	stdout, _, err = run(t, htmlPath, "--write-siblings=false", "--stats=false")
	if err != nil {
		t.Fatalf("outline of converted document failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "1 Introduction\n  1.1 Scope\n") {
		t.Errorf("unexpected outline:\n%s", stdout)
	}
}

func TestBatchCommand(t *testing.T) {
	good := writeInput(t, "good.html", reportHTML)
	missing := filepath.Join(t.TempDir(), "missing.html")

	stdout, _, err := run(t, "batch", good, missing, "--report", "jsonl", "--workers", "2")
	if err == nil {
		t.Fatal("expected an error for the missing input")
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d records, want 2:\n%s", len(lines), stdout)
	}

	var first, second output.Record
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if first.Source != good || len(first.Entries) != 3 {
		t.Errorf("first record = %+v", first)
	}
	if second.Source != missing || !second.Failed() {
		t.Errorf("second record = %+v", second)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(info) == 0 {
		t.Error("expected version fields")
	}
}
