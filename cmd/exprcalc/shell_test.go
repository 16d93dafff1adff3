package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mgomes/exprcalc/calc"
)

func runShell(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sh := newShell(calc.MustNewEngine(calc.Config{}), logger, strings.NewReader(input), &out)
	if err := sh.run(); err != nil {
		t.Fatalf("shell run failed: %v", err)
	}
	return out.String()
}

func TestShellEvaluatesEachNotation(t *testing.T) {
	out := runShell(t, "1\n+ 1 * 2 3\nq\n2\n1 2 3 * +\nquit\n3\n(1 + (2 * 3))\nq\n4\n")

	for _, want := range []string{
		"Enter prefix expression> + 1 * 2 3 = 7\n",
		"Enter postfix expression> 1 2 3 * + = 7\n",
		"Enter parenthetical infix expression> (1 + (2 * 3)) = 7\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "Enter an integer between 1 and 4> "); got != 4 {
		t.Fatalf("expected 4 menu prompts, got %d", got)
	}
}

func TestShellMenuRejectsBadChoices(t *testing.T) {
	out := runShell(t, "abc\n0\n7\n4\n")

	for _, want := range []string{
		"The input could not be converted to an integer\n",
		"The input is not allowed to be less than 1\n",
		"The input is not allowed to be more than 4\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestShellReportsInvalidExpression(t *testing.T) {
	out := runShell(t, "2\n1 +\n6 2 /\n")

	if !strings.Contains(out, `Error: Invalid expression "1 +": operator "+" needs two operands, have 1`) {
		t.Fatalf("missing invalid expression report:\n%s", out)
	}
	if !strings.Contains(out, "6 2 / = 3.0\n") {
		t.Fatalf("missing division result:\n%s", out)
	}
}

func TestShellEOFReturnsToMenuThenExits(t *testing.T) {
	out := runShell(t, "1\n+ 1 2\n")
	if !strings.Contains(out, "+ 1 2 = 3\n") {
		t.Fatalf("missing result:\n%s", out)
	}
	if got := strings.Count(out, "What kind of mathematical expressions"); got != 2 {
		t.Fatalf("expected menu to be shown twice, got %d", got)
	}
}

func TestShellMenuAcceptsPaddedInteger(t *testing.T) {
	out := runShell(t, " 4 \n")
	if strings.Contains(out, "could not be converted") {
		t.Fatalf("padded integer rejected:\n%s", out)
	}
}

func TestMenuTextListsNotations(t *testing.T) {
	text := menuText()
	for _, want := range []string{
		"1) prefix                 e.g. + 1 * 2 3",
		"2) postfix                e.g. 1 2 3 * +",
		"3) parenthetical infix    e.g. (1 + (2 * 3))",
		"4) quit",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("menu missing %q:\n%s", want, text)
		}
	}
}
