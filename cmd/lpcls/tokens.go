package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lpcls/internal/diag"
	"lpcls/internal/diagfmt"
	"lpcls/internal/lexer"
	"lpcls/internal/source"
	"lpcls/internal/token"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] <file.c>",
		Short: "Dump the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			text := source.NewText(content)
			bag := diag.NewBag(100)
			lx := lexer.New(text, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
			var tokens []token.Token
			for {
				tok := lx.Next()
				tokens = append(tokens, tok)
				if tok.Kind == token.EOF {
					break
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty":
				if err := diagfmt.FormatTokensPretty(out, tokens, text); err != nil {
					return err
				}
			case "json":
				if err := diagfmt.FormatTokensJSON(out, tokens); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (must be pretty or json)", format)
			}
			if bag.Len() > 0 {
				fmt.Fprint(cmd.ErrOrStderr(), diag.FormatShort(args[0], text, bag.Items(), false)+"\n")
			}
			return nil
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}
