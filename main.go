package main

import (
	"fmt"
	"os"

	"github.com/goonidz/ghsecret/cmd"

	"github.com/cockroachdb/errors"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghsecret",
	Short: "ghsecret - encrypt and upload GitHub Actions repository secrets.",
	Long: `ghsecret uploads a secret value to a GitHub repository's Actions secrets.

GitHub requires secret values to be encrypted with the repository's public
key before they are sent. ghsecret fetches that key, seals the value locally
and stores the result, so the plaintext never leaves your machine.

Usage:
  ghsecret <command> [flags]

Available Commands:
  publish    Encrypt a value and store it as a repository secret
  key        Show the repository's Actions public key

Run 'ghsecret help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewColorFigure("ghsecret", "", "green", true).Print()
		fmt.Println()
		fmt.Println("Run 'ghsecret --help' to see available commands.")
	},
}

func main() {
	cmd.AddCommands(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
