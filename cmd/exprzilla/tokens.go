package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/lexer"
	"github.com/thisisjab/exprzilla/token"
	"gopkg.in/yaml.v3"
)

var (
	tokensExpr      string
	tokensYAML      bool
	tokensKeepGoing bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a source",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, args, tokensExpr, cmd.Flags().Changed("expr"))
		if err != nil {
			return err
		}

		var tokens []token.Token
		var lexErr error
		if tokensKeepGoing {
			tokens, lexErr = scanAll(src)
		} else {
			tokens, lexErr = lexer.New(src).Tokenize()
			if lexErr != nil {
				return errors.New(fault.Excerpt(src, lexErr))
			}
		}

		if err := printTokens(cmd.OutOrStdout(), tokens, tokensYAML); err != nil {
			return err
		}

		return lexErr
	},
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensExpr, "expr", "e", "", "source to scan instead of a file")
	tokensCmd.Flags().BoolVar(&tokensYAML, "yaml", false, "print tokens as YAML")
	tokensCmd.Flags().BoolVarP(&tokensKeepGoing, "keep-going", "k", false, "report every lexical error instead of stopping at the first")
}

// scanAll collects every token, ILLEGAL ones included, and joins all lexical
// errors.
func scanAll(src string) ([]token.Token, error) {
	s := lexer.New(src)

	var tokens []token.Token
	var errs []error
	for {
		tok, err := s.Next()
		if err != nil {
			errs = append(errs, errors.New(fault.Excerpt(src, err)))
		}

		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, errors.Join(errs...)
		}
	}
}

func printTokens(w io.Writer, tokens []token.Token, asYAML bool) error {
	if asYAML {
		out, err := yaml.Marshal(tokens)
		if err != nil {
			return fmt.Errorf("cannot marshal tokens: %w", err)
		}
		_, err = w.Write(out)
		return err
	}

	for _, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", tok.Pos, tok); err != nil {
			return err
		}
	}
	return nil
}
