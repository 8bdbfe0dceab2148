package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sometanjas/Static-Code-Analyzer/catalog"
	"github.com/sometanjas/Static-Code-Analyzer/report"
	"github.com/sometanjas/Static-Code-Analyzer/runner"
)

var rootCmd = &cobra.Command{
	Use:   "code-analyzer",
	Short: "Static style checker for Python source files",
	Long:  "code-analyzer scans Python source files and reports style-rule violations (S001..S012), each tagged with a stable rule code and line number.",
}

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Check a file or directory for style violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configureColor(cmd)

		workers, _ := cmd.Flags().GetInt("workers")
		quiet, _ := cmd.Flags().GetBool("quiet")

		var reporter report.Reporter = report.NewConsole(os.Stderr)
		if quiet {
			reporter = report.Nop{}
		}

		r := runner.New(os.Stdout, reporter, workers)
		return r.Run(cmd.Context(), args[0])
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <code>",
	Short: "Show the catalog entry for one rule code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		issue, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s [%s] %s\n\n%s", issue.IssueCode, issue.Category, issue.Title, issue.Description)
		return nil
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Render the rule catalog as sanitized HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		issues, err := catalog.Load()
		if err != nil {
			return err
		}

		for _, issue := range issues {
			html, err := catalog.RenderHTML(issue)
			if err != nil {
				return err
			}
			fmt.Printf("<h1>%s: %s</h1>\n%s\n", issue.IssueCode, issue.Title, html)
		}
		return nil
	},
}

// configureColor applies the --color flag: on and off force the setting,
// auto enables color only when stdout is a terminal.
func configureColor(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	}
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(docsCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	checkCmd.Flags().Int("workers", 0, "number of files checked concurrently (0 = number of CPUs)")
	checkCmd.Flags().Bool("quiet", false, "suppress tool-level log output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
