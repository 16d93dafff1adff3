package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/exprcalc/calc"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "shell":
		return shellCommand(args[2:], os.Stdin, os.Stdout)
	case "repl":
		return replCommand(args[2:])
	case "eval":
		return evalCommand(args[2:], os.Stdin, os.Stdout)
	case "tokens":
		return tokensCommand(args[2:], os.Stdout)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// setup loads configuration and builds the engine and logger shared by the
// evaluating commands.
func setup(configPath string, logOut io.Writer) (Config, *calc.Engine, *slog.Logger, func() error, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return cfg, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	engine, err := cfg.engine()
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	logger, closeLog, err := newLogger(cfg, logOut)
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	return cfg, engine, logger, closeLog, nil
}

func shellCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, engine, logger, closeLog, err := setup(*configPath, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	return newShell(engine, logger, stdin, stdout).run()
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// The terminal belongs to the TUI; logs only go to a configured file.
	cfg, engine, logger, closeLog, err := setup(*configPath, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	return runREPL(engine, logger, cfg)
}

func evalCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "path to a YAML config file")
	notationName := fs.String("notation", "", "prefix, postfix, or infix (default from config)")
	detail := fs.Bool("detail", false, "print a caret frame under each failed expression")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, engine, logger, closeLog, err := setup(*configPath, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	notation := cfg.notation()
	if *notationName != "" {
		notation, err = calc.ParseNotation(*notationName)
		if err != nil {
			return err
		}
	}

	lines := fs.Args()
	if len(lines) == 0 {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := scanner.Text(); strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	if len(lines) == 0 {
		return errors.New("exprcalc eval: expression required")
	}

	eval := engine.Evaluator(notation)
	failed := 0
	for _, line := range lines {
		result, err := eval(line)
		logEvaluation(logger, notation, line, result, err)
		if err != nil {
			failed++
			fmt.Fprintln(stdout, "Error: "+describeFailure(line, err))
			var evalErr *calc.EvalError
			if *detail && errors.As(err, &evalErr) {
				fmt.Fprintln(stdout, evalErr.Detail())
			}
			continue
		}
		fmt.Fprintf(stdout, "%s = %s\n", line, result)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expression(s) failed", failed, len(lines))
	}
	return nil
}

func tokensCommand(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("exprcalc tokens: expression required")
	}
	count := 0
	for tok := range calc.Tokens(strings.Join(args, " ")) {
		fmt.Fprintln(stdout, tok.String())
		count++
	}
	if count == 0 {
		fmt.Fprintln(stdout, "no tokens")
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  shell               line-oriented notation menu and expression loop")
	fmt.Fprintln(os.Stderr, "  repl                interactive terminal UI")
	fmt.Fprintln(os.Stderr, "  eval [expr...]      evaluate arguments, or stdin lines when none are given")
	fmt.Fprintln(os.Stderr, "  tokens <expr>       print the tokens of an expression")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config string")
	fmt.Fprintln(os.Stderr, "    path to a YAML config file (shell, repl, eval)")
	fmt.Fprintln(os.Stderr, "  -notation string")
	fmt.Fprintln(os.Stderr, "    prefix, postfix, or infix (eval)")
	fmt.Fprintln(os.Stderr, "  -detail")
	fmt.Fprintln(os.Stderr, "    print a caret frame under each failure (eval)")
	fmt.Fprintln(os.Stderr, "Use -- before an expression that starts with '-'.")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
