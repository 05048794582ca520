// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"parsekit/calc"
	"parsekit/internal/config"
	"parsekit/internal/report"
)

var (
	exprSource string
	configPath string
	printAST   bool
	noColor    bool
	trace      bool
	verbosity  int
)

var rootCmd = &cobra.Command{
	Use:   "parsec-calc [file]",
	Short: "Parse and evaluate calc programs",
	Long: `Parses a calc program with the parsec combinators and evaluates it.

Examples:
  parsec-calc prog.calc
  parsec-calc -e 'let x = 6; print x * 7;'
  parsec-calc --ast prog.calc`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&exprSource, "expr", "e", "", "program source given inline")
	rootCmd.Flags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.Flags().BoolVar(&printAST, "ast", false, "print the parsed program instead of evaluating it")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "log every parser invocation")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = trace
	}
	if verbosity > 0 {
		cfg.Verbosity = verbosity
	}
	if noColor {
		cfg.Color = config.ColorNever
	}
	applyColor(cfg.Color)
	commonlog.Configure(cfg.LogVerbosity(), nil)

	path, source, err := readSource(args)
	if err != nil {
		return err
	}

	startTime := time.Now()
	out := cmd.OutOrStdout()
	err = process(path, source, out)
	duration := formatDuration(time.Since(startTime))

	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), report.NewReporter(path, source).FormatError(err))
		return errors.Errorf("%s failed after %s", path, duration)
	}
	if printAST {
		fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("Parsed %s in %s", path, duration))
	}
	return nil
}

func process(path, source string, out io.Writer) error {
	if !printAST {
		return calc.Run(path, source, out)
	}
	prog, err := calc.Parse(path, source)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, prog.String())
	return err
}

func readSource(args []string) (string, string, error) {
	switch {
	case exprSource != "" && len(args) > 0:
		return "", "", errors.New("give either a file or --expr, not both")
	case exprSource != "":
		return "<expr>", exprSource, nil
	case len(args) == 1:
		source, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", errors.Wrap(err, "failed to read file")
		}
		return args[0], string(source), nil
	default:
		source, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "failed to read stdin")
		}
		return "<stdin>", string(source), nil
	}
}

func applyColor(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
