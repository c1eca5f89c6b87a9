package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fjl/scicalc/internal/calc"
)

func newEvalCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate an expression and print the result",
		Long: `Evaluate an expression and print the result.

The arguments are joined into one expression. Unclosed parentheses are closed
automatically. Supported are + - * / ^ (or **), !, √, π, e and the functions
sin cos tan asin acos atan log log10 exp sqrt.

Use -- before an expression that starts with a minus sign.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, e, strings.Join(args, " "))
		},
	}
	cmd.Flags().Bool("tokens", false, "print the normalized token stream")
	cmd.Flags().Bool("parse", false, "print the parse tree")
	cmd.Flags().Bool("debug", false, "print tokens and parse tree")
	return cmd
}

func runEval(cmd *cobra.Command, e *env, text string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	for _, name := range []string{"tokens", "parse"} {
		on, _ := cmd.Flags().GetBool(name)
		e.cfg.SetDebug(name, on || debug)
	}

	var b calc.Buffer
	b.SetUnit(e.cfg.Unit())
	b.SetExpression(text)
	b.AutoClose()

	out := cmd.OutOrStdout()
	if e.cfg.Debug("tokens") || e.cfg.Debug("parse") {
		normalized, tree, err := calc.Explain(b.Expression(), e.cfg.Unit())
		if e.cfg.Debug("tokens") && normalized != "" {
			fmt.Fprintf(out, "tokens: %s\n", normalized)
		}
		if e.cfg.Debug("parse") && err == nil {
			fmt.Fprintf(out, "tree:   %s\n", tree)
		}
	}

	res := b.Evaluate()
	fmt.Fprintln(out, res.String())
	if err := res.Err(); err != nil {
		return fmt.Errorf("%s: %w", b.Expression(), err)
	}
	return nil
}
