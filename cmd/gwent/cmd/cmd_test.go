package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GWENT_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "gwent") {
		t.Errorf("Expected version output to name the tool, got %q", out)
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "hello.gw", `Console.WriteLine("hello");`)

	out, err := execute(t, "run", dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("Expected script output, got %q", out)
	}
	if !strings.Contains(out, "1 files, 1 passed, 0 failed") {
		t.Errorf("Expected summary line, got %q", out)
	}
}

func TestRunCommandFailure(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.gw", `int x = 1 / 0;`)

	if _, err := execute(t, "run", dir); err == nil {
		t.Error("Expected an error when a file fails")
	}
}

func TestTokensCommand(t *testing.T) {
	path := writeScript(t, t.TempDir(), "a.gw", `int x = 42;`)

	out, err := execute(t, "tokens", path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, `"42"`) {
		t.Errorf("Expected the number token, got %q", out)
	}
}

func TestASTCommandReportsParseErrors(t *testing.T) {
	path := writeScript(t, t.TempDir(), "a.gw", `int x = ;`)

	out, err := execute(t, "ast", path)
	if err == nil {
		t.Fatal("Expected an error for invalid syntax")
	}
	if !strings.Contains(out, "[Parse]") {
		t.Errorf("Expected a parse diagnostic, got %q", out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeScript(t, dir, "gwent.toml", "[general]\nlog_level = \"loud\"\n")

	_, err := execute(t, "--config", cfgPath, "version")
	cfgFile = ""
	if err == nil {
		t.Error("Expected an error for an unknown log level")
	}
}
