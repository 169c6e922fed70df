package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/studytrack/tutor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Terminal study tracker with quizzes and recommendations",
	Long: `Tutor keeps a running score per subject, quizzes you from a question bank
and recommends what to study next.

Run without a subcommand to open the interactive app.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command and flushes the log afterwards.
func Execute() error {
	defer closeLogger()
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a tutor.yaml config file")
	flags.String("data", "", "Path to the JSON score file (default data.json)")
	flags.String("history", "", "Path to the SQLite history database (default next to the score file)")
	flags.String("bank", "", "Path to a JSON question bank (default built-in subjects)")
	flags.String("log-file", "", "Path to the log file (default next to the score file)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("llm-provider", "", "LLM provider for the study coach: anthropic, openai, openrouter, gemini or mock")
	flags.String("llm-model", "", "Model name for the LLM provider")

	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"data":         config.KeyDataFile,
	"history":      config.KeyHistoryDB,
	"bank":         config.KeyBankFile,
	"log-file":     config.KeyLogFile,
	"log-level":    config.KeyLogLevel,
	"llm-provider": config.KeyLLMProvider,
	"llm-model":    config.KeyLLMModel,
}

// loadConfig resolves settings with flag values taking precedence over
// environment, config file and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("no-splash"); f != nil && f.Changed {
		v.Set(config.KeySplash, false)
	}

	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(v, configFile)
}

// bindFlags binds the changed persistent flags only, so unset flags never
// shadow environment variables.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind --%s: %w", f.Name, err)
		}
	})
	return bindErr
}
