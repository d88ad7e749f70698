package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitegrade.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitegrade",
		Short: "Grade a web page with weighted presence checks",
		Long: `sitegrade fetches a single web page and scores it in five categories:
technical excellence, performance, user experience, content quality and
professional presentation. Each category is capped at 20 points and the
total out of 100 is mapped to a letter grade with recommendations.

Without arguments, http://localhost:3000 is evaluated.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewEvaluateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
