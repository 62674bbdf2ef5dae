package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/keyprobe/internal"
	"codeberg.org/snonux/keyprobe/internal/credential"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "keyprobe",
		Short: "AI provider API key diagnostic",
		Long: `keyprobe verifies AI-provider API keys by probing the provider's
model-listing endpoint and reporting what the key can access.

It reads the key from the environment, an .env file in the working
directory, or the config file, and makes a single best-effort call.

Examples:
  keyprobe                          # Probe the Gemini key from env/.env
  keyprobe --list-models            # Also print models grouped by capability
  keyprobe --provider openai        # Probe an OpenAI key instead
  keyprobe --smoke-test             # Verify the key with a CountTokens call
  keyprobe --batch keys.txt         # Probe every key listed in keys.txt
  keyprobe --history                # Show recent probe outcomes`,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.keyprobe.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", flags.Provider, "Provider to probe (gemini or openai)")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", flags.EnvFile, "Path of the .env file to read the key from")
	cmd.Flags().StringVarP(&flags.Key, "key", "k", "", "API key to probe (overrides env/.env/config)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Only print the verdict, not the model list")
	cmd.Flags().StringVar(&flags.ExpectModel, "expect-model", flags.ExpectModel, "Model name substring the key is expected to have access to")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "Print available models grouped by capability")
	cmd.Flags().StringVar(&flags.Describe, "describe", "", "Print the full descriptor of models matching this substring")
	cmd.Flags().BoolVar(&flags.SmokeTest, "smoke-test", false, "Verify the key with a minimal CountTokens call (gemini only)")
	cmd.Flags().StringVar(&flags.SmokeModel, "smoke-model", flags.SmokeModel, "Model used for the smoke test")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP timeout for the probe call")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Probe keys from file (one per line, optionally LABEL = KEY)")
	cmd.Flags().BoolVar(&flags.History, "history", false, "Show recent probe outcomes and exit")
	cmd.Flags().IntVar(&flags.HistoryLimit, "history-limit", flags.HistoryLimit, "Number of history entries to show")
	cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record this probe in the history database")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("probe.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("probe.env_file", cmd.Flags().Lookup("env-file"))
	viper.BindPFlag("probe.expect_model", cmd.Flags().Lookup("expect-model"))
	viper.BindPFlag("probe.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("probe.smoke_model", cmd.Flags().Lookup("smoke-model"))
	viper.BindPFlag("history.limit", cmd.Flags().Lookup("history-limit"))
}

// ResolveConfig overlays config-file and environment values onto the
// flag fields after InitConfig has run. Through the viper bindings a
// flag set on the command line wins, then the config file and
// KEYPROBE_* environment, then the flag default.
func ResolveConfig(flags *Flags) {
	flags.Provider = viper.GetString("probe.provider")
	flags.EnvFile = viper.GetString("probe.env_file")
	flags.ExpectModel = viper.GetString("probe.expect_model")
	flags.Timeout = viper.GetDuration("probe.timeout")
	flags.SmokeModel = viper.GetString("probe.smoke_model")
	flags.HistoryLimit = viper.GetInt("history.limit")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".keyprobe" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".keyprobe")
	}

	// Environment variables
	viper.SetEnvPrefix("KEYPROBE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment, the .env
// file, or the config file, in that order.
func GetGeminiKey(envFile string) string {
	return credential.Resolve("GEMINI_API_KEY", envFile, "gemini.api_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment, the .env
// file, or the config file, in that order.
func GetOpenAIKey(envFile string) string {
	return credential.Resolve("OPENAI_API_KEY", envFile, "openai.api_key")
}
