package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/exprcalc/calc"
)

const quitChoice = 4

// shell is the line-oriented interface: a numbered notation menu followed
// by a per-notation expression loop.
type shell struct {
	engine     *calc.Engine
	logger     *slog.Logger
	in         *bufio.Scanner
	out        io.Writer
	errorLabel lipgloss.Style
}

func newShell(engine *calc.Engine, logger *slog.Logger, in io.Reader, out io.Writer) *shell {
	r := lipgloss.NewRenderer(out)
	return &shell{
		engine:     engine,
		logger:     logger,
		in:         bufio.NewScanner(in),
		out:        out,
		errorLabel: r.NewStyle().Background(errorColor).Foreground(lipgloss.Color("#FFFFFF")),
	}
}

func (s *shell) run() error {
	for {
		choice, err := s.readChoice(menuText(), 1, quitChoice)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		if choice == quitChoice {
			return nil
		}
		if err := s.expressionLoop(calc.Notations()[choice-1]); err != nil {
			return err
		}
	}
}

func (s *shell) expressionLoop(n calc.Notation) error {
	eval := s.engine.Evaluator(n)
	for {
		line, err := s.readLine(fmt.Sprintf("Enter %s expression> ", n))
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		if line == "quit" || line == "q" {
			return nil
		}
		result, err := eval(line)
		logEvaluation(s.logger, n, line, result, err)
		if err != nil {
			fmt.Fprintln(s.out, s.failure(line, err))
			continue
		}
		fmt.Fprintf(s.out, "%s = %s\n", line, result)
	}
}

func (s *shell) failure(line string, err error) string {
	return fmt.Sprintf("%s %s", s.errorLabel.Render("Error:"), describeFailure(line, err))
}

// readChoice prompts until the user enters an integer within [lo, hi].
func (s *shell) readChoice(prompt string, lo, hi int) (int, error) {
	for {
		line, err := s.readLine(fmt.Sprintf("%s\nEnter an integer between %d and %d> ", prompt, lo, hi))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			fmt.Fprintln(s.out, "The input could not be converted to an integer")
			fmt.Fprintln(s.out)
		case n < lo:
			fmt.Fprintf(s.out, "The input is not allowed to be less than %d\n", lo)
		case n > hi:
			fmt.Fprintf(s.out, "The input is not allowed to be more than %d\n", hi)
		default:
			return n, nil
		}
	}
}

func (s *shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func menuText() string {
	var b strings.Builder
	b.WriteString("What kind of mathematical expressions do you want to parse?\n")
	for i, n := range calc.Notations() {
		fmt.Fprintf(&b, "%d) %-22s e.g. %s\n", i+1, n, n.Example())
	}
	fmt.Fprintf(&b, "%d) quit\n", quitChoice)
	return b.String()
}

// describeFailure renders a failed evaluation for display.
func describeFailure(line string, err error) string {
	var evalErr *calc.EvalError
	if errors.As(err, &evalErr) {
		if calc.IsDomainError(err) {
			return fmt.Sprintf("Cannot evaluate %q: %s", line, evalErr.Msg)
		}
		return fmt.Sprintf("Invalid expression %q: %s", line, evalErr.Msg)
	}
	return fmt.Sprintf("Invalid expression %q: %v", line, err)
}

func logEvaluation(logger *slog.Logger, n calc.Notation, line string, result calc.Number, err error) {
	if err != nil {
		logger.Debug("evaluation failed", "notation", n.String(), "line", line, "error", err)
		return
	}
	logger.Debug("evaluated", "notation", n.String(), "line", line, "result", result.String())
}
