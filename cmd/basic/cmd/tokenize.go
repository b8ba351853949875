package cmd

import (
	"fmt"
	"os"

	"github.com/nkanaev/msbasic/internal/lexer"
	"github.com/spf13/cobra"
)

var tokenizeExpr string

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a line of BASIC source and print the crunched byte stream",
	Long: `Tokenize crunches one line of BASIC source to its single-byte-token
form and prints it back out in hex, useful for debugging the tokenizer.

Examples:
  basic tokenize -e "10 PRINT \"HI\""
  basic tokenize program.bas`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&tokenizeExpr, "eval", "e", "", "tokenize an inline line instead of reading from file")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	var input string
	if tokenizeExpr != "" {
		input = tokenizeExpr
	} else if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	text := lexer.Tokenize(input)
	for _, b := range text {
		fmt.Printf("%02X ", b)
	}
	fmt.Println()
	fmt.Println(lexer.Detokenize(text))
	return nil
}
