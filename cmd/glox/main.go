// Command glox is the CLI entry point for the Lox tree-walking
// interpreter: file execution mode and an interactive read-eval-print
// mode (spec.md §6). Grounded on abdidvp-openkraft's cobra root command
// (internal/adapters/inbound/cli/root.go) and the teacher's main.go
// (archevan-glox), whose runFile/runPrompt shape is kept almost verbatim
// but now calls into internal/lox.Pipeline instead of a bare scanner.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/glox-lang/glox/internal/lox"
	"github.com/glox-lang/glox/internal/replstyle"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// exitError carries the process exit code spec.md §6/§7 specifies (65
// static failure, 70 runtime failure) up to main without cobra printing
// its own error line (RunE errors are otherwise echoed to stderr).
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var noColor bool

	cmd := &cobra.Command{
		Use:           "glox [script]",
		Short:         "glox is a tree-walking interpreter for Lox",
		Long:          "glox scans, parses, resolves, and evaluates Lox source. With no script argument it starts an interactive prompt.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runFile(args[0], noColor)
			}
			return runPrompt(noColor)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level interpreter tracing")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
	// Applied before every subcommand too, so `glox run -v` traces like `glox -v`.
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		configureLogging(verbose)
	}

	cmd.AddCommand(newRunCmd(&noColor))
	cmd.AddCommand(newASTCmd())
	return cmd
}

func newRunCmd(noColor *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run a Lox script file (equivalent to `glox <script>`)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], *noColor)
		},
	}
}

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <script>",
		Short: "Parse a script and print each top-level expression statement's AST in Lisp-style notation; other statements are not printed (debug tool, not a language feature)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printAST(args[0])
		},
	}
}

func configureLogging(verbose bool) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// runFile reads the script at path, runs it, and exits with the code
// spec.md §6 specifies: 65 on a static error, 70 on a runtime error, else
// 0.
func runFile(path string, noColor bool) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("can't open file %q: %w", path, err)
	}

	reporter := replstyle.NewReporter(os.Stdout, noColor)
	pipeline := lox.NewPipeline(os.Stdout, reporter, false)

	hadError, hadRuntimeError := pipeline.Run(string(contents))
	switch {
	case hadError:
		return &exitError{code: 65}
	case hadRuntimeError:
		return &exitError{code: 70}
	}
	return nil
}

// runPrompt is a simple line-at-a-time REPL: each line is run through the
// same Pipeline, and the static-error flag is conceptually reset between
// prompts because each Run call starts a fresh errorCollector (spec.md
// §6 "runPrompt ... resets the per-prompt static-error flag").
func runPrompt(noColor bool) error {
	reporter := replstyle.NewReporter(os.Stdout, noColor)
	pipeline := lox.NewPipeline(os.Stdout, reporter, true)

	banner := replstyle.Banner.Render(fmt.Sprintf("glox %s", version))
	hint := replstyle.Hint.Render("(Ctrl-D to exit)")
	fmt.Printf("%s %s\n", banner, hint)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(replstyle.Prompt.Render("> "))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && err != io.EOF {
				return err
			}
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		pipeline.Run(line)
	}
}

func printAST(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("can't open file %q: %w", path, err)
	}

	reporter := &lox.TextReporter{Out: os.Stderr}
	out := os.Stdout
	stmts, hadError := lox.ParseOnly(string(contents), reporter)
	if hadError {
		return &exitError{code: 65}
	}
	printer := &lox.Printer{}
	for _, s := range stmts {
		if es, ok := s.(*lox.ExpressionStmt); ok {
			fmt.Fprintln(out, printer.Print(es.Expr))
		}
	}
	return nil
}
