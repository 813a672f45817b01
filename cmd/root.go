package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "braincourse",
	Short: "Adaptive AI tutor in the terminal",
	Long: `BrainCourse: practice quizzes, generated courses and module exams that
adapt to your level. Run without a subcommand to open the terminal UI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Database DSN; a file path for sqlite (overrides BRAINCOURSE_DB)")
	pf.String("config", "", "Path to config.toml (default $XDG_CONFIG_HOME/braincourse/config.toml)")
	pf.StringP("user", "u", "", "Profile email to act as (overrides BRAINCOURSE_USER)")
	pf.String("provider", "", "LLM provider: gemini, anthropic, openai, openrouter or mock")

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}
