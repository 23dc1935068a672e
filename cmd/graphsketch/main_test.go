package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunFromStdin(t *testing.T) {
	out, err := execute(t, "vertex 10 10\nvertex 100 10\nvertex 200 10\nedge 1 2\nstatus\n", "run", "-q")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "M = 3, N = 1, K = 2\n" {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestRunFileWithReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.gs")
	if err := os.WriteFile(path, []byte("click 10 10\nclick 10 10\nclick 10 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "run", path, "--radius", "15")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"M = 1, N = 1, K = 1", "r=15 degree=2", "[loop]"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestRunLoopPolicyFlag(t *testing.T) {
	out, err := execute(t, "vertex 10 10\nedge 1 1\n", "run", "--loops", "once")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "degree=1") {
		t.Errorf("Expected a single incident entry for the loop:\n%s", out)
	}
}

func TestRunScriptError(t *testing.T) {
	_, err := execute(t, "vertex 1 1\nfly 2 2\n", "run")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected a line-numbered error, got %v", err)
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "", "run", "--hit-shape", "hexagon")
	if err == nil || !strings.Contains(err.Error(), "config") {
		t.Errorf("Expected a config error, got %v", err)
	}
}
