package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"exprcalc", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"exprcalc", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"exprcalc"})
	if err == nil || !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("expected invalid command error, got %v", err)
	}
}

func TestEvalCommandArguments(t *testing.T) {
	isolateEnv(t)
	var out bytes.Buffer
	err := evalCommand([]string{"-notation", "postfix", "1 2 3 * +", "6 2 /"}, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("evalCommand failed: %v", err)
	}
	want := "1 2 3 * + = 7\n6 2 / = 3.0\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestEvalCommandReadsStdin(t *testing.T) {
	isolateEnv(t)
	var out bytes.Buffer
	in := strings.NewReader("(1 + (2 * 3))\n\n(4 - 1)\n")
	if err := evalCommand([]string{"-notation", "infix"}, in, &out); err != nil {
		t.Fatalf("evalCommand failed: %v", err)
	}
	want := "(1 + (2 * 3)) = 7\n(4 - 1) = 3\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestEvalCommandReportsFailures(t *testing.T) {
	isolateEnv(t)
	var out bytes.Buffer
	err := evalCommand([]string{"-notation", "prefix", "+ 1 2", "+ 1 2 3", "/ 1 0"}, strings.NewReader(""), &out)
	if err == nil {
		t.Fatalf("expected failure error")
	}
	if !strings.Contains(err.Error(), "2 of 3 expression(s) failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "+ 1 2 = 3\n") {
		t.Fatalf("missing success line: %q", got)
	}
	if !strings.Contains(got, `Error: Invalid expression "+ 1 2 3": unexpected trailing integer`) {
		t.Fatalf("missing invalid line: %q", got)
	}
	if !strings.Contains(got, `Error: Cannot evaluate "/ 1 0": division by zero`) {
		t.Fatalf("missing domain error line: %q", got)
	}
}

func TestEvalCommandDetailPrintsFrame(t *testing.T) {
	isolateEnv(t)
	var out bytes.Buffer
	err := evalCommand([]string{"-notation", "infix", "-detail", "(1 + 2"}, strings.NewReader(""), &out)
	if err == nil {
		t.Fatalf("expected failure error")
	}
	if !strings.Contains(out.String(), "  --> column 7\n   | (1 + 2\n   |       ^") {
		t.Fatalf("missing caret frame:\n%s", out.String())
	}
}

func TestEvalCommandUsesConfiguredNotation(t *testing.T) {
	isolateEnv(t)
	t.Setenv("EXPRCALC_NOTATION", "postfix")
	var out bytes.Buffer
	if err := evalCommand([]string{"4 5 *"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("evalCommand failed: %v", err)
	}
	if out.String() != "4 5 * = 20\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestEvalCommandRejectsUnknownNotation(t *testing.T) {
	isolateEnv(t)
	err := evalCommand([]string{"-notation", "sideways", "1"}, strings.NewReader(""), new(bytes.Buffer))
	if err == nil || !strings.Contains(err.Error(), "unknown notation") {
		t.Fatalf("expected unknown notation error, got %v", err)
	}
}

func TestEvalCommandRequiresExpression(t *testing.T) {
	isolateEnv(t)
	err := evalCommand(nil, strings.NewReader("   \n"), new(bytes.Buffer))
	if err == nil || !strings.Contains(err.Error(), "expression required") {
		t.Fatalf("expected expression required error, got %v", err)
	}
}

func TestTokensCommand(t *testing.T) {
	var out bytes.Buffer
	if err := tokensCommand([]string{"3.5*2"}, &out); err != nil {
		t.Fatalf("tokensCommand failed: %v", err)
	}
	want := "FLOAT 3.5 @1\n* * @4\nINT 2 @5\n"
	if out.String() != want {
		t.Fatalf("unexpected tokens output:\n%s", out.String())
	}
}

func TestTokensCommandEmptyLine(t *testing.T) {
	var out bytes.Buffer
	if err := tokensCommand([]string{"abc"}, &out); err != nil {
		t.Fatalf("tokensCommand failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "no tokens" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

// isolateEnv points .env loading at an empty directory and clears any
// EXPRCALC_* variables inherited from the test environment.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	t.Setenv(envPrefix+"ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
