package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/anuvad/internal"
	"codeberg.org/snonux/anuvad/internal/engine/factory"
	"codeberg.org/snonux/anuvad/internal/engine/gemini"
	"codeberg.org/snonux/anuvad/internal/engine/hfhub"
	"codeberg.org/snonux/anuvad/internal/engine/openaicompat"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "anuvad [text]",
		Short: "English, Hindi and Bangla neural machine translation",
		Long: `anuvad translates text between English, Hindi and Bangla using the
opus-mt neural machine-translation models. When no direct model exists for a
pair, it translates through English.

Examples:
  anuvad                          # Launch interactive GUI (default)
  anuvad --pair en-hi "Hello"     # Translate via CLI
  anuvad --pair hi-bn "नमस्ते"      # Chained via English if needed
  anuvad --list-models            # Show which directions resolve`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// commandFlags is the flag set of the root command, used to tell explicit
// flags from defaults
var commandFlags *pflag.FlagSet

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.anuvad.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Pair, "pair", "p", flags.Pair, "Translation direction: en-hi, hi-en, en-bn, bn-en, hi-bn, bn-hi")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List which translation directions have a direct model")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Engine flags
	cmd.Flags().StringVarP(&flags.Backend, "backend", "b", flags.Backend, "Translation backend: "+strings.Join(factory.Backends, ", "))
	cmd.Flags().StringVar(&flags.HFToken, "hf-token", "", "Hugging Face access token (default: $HF_TOKEN)")
	cmd.Flags().StringVar(&flags.HFHubURL, "hf-hub-url", hfhub.DefaultHubURL, "Hugging Face hub URL")
	cmd.Flags().StringVar(&flags.HFInferenceURL, "hf-inference-url", hfhub.DefaultInferenceURL, "Hugging Face inference URL")
	cmd.Flags().StringVar(&flags.OpenAIBaseURL, "openai-base-url", "", "Base URL of an OpenAI-compatible server hosting opus-mt models")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used by the gemini backend")

	// Bind flags to viper
	bindFlagsToViper(cmd)
	commandFlags = cmd.Flags()
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.pair", cmd.Flags().Lookup("pair"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("engine.backend", cmd.Flags().Lookup("backend"))
	viper.BindPFlag("engine.hf_token", cmd.Flags().Lookup("hf-token"))
	viper.BindPFlag("engine.hf_hub_url", cmd.Flags().Lookup("hf-hub-url"))
	viper.BindPFlag("engine.hf_inference_url", cmd.Flags().Lookup("hf-inference-url"))
	viper.BindPFlag("engine.openai_base_url", cmd.Flags().Lookup("openai-base-url"))
	viper.BindPFlag("engine.gemini_model", cmd.Flags().Lookup("gemini-model"))
}

// InitConfig loads a .env file if present and initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env file is not an error
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

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

		// Search config in home directory with name ".anuvad" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".anuvad")
	}

	// Environment variables
	viper.SetEnvPrefix("ANUVAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetHFToken retrieves the Hugging Face token from the --hf-token flag,
// environment or config, in that order
func GetHFToken() string {
	if commandFlags != nil && commandFlags.Changed("hf-token") {
		if key, err := commandFlags.GetString("hf-token"); err == nil && key != "" {
			return key
		}
	}
	if key := os.Getenv("HF_TOKEN"); key != "" {
		return key
	}
	return viper.GetString("engine.hf_token")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("engine.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("engine.gemini_key")
}

// EngineConfig assembles the backend configuration from viper.
func EngineConfig() *factory.Config {
	return &factory.Config{
		Backend: viper.GetString("engine.backend"),
		HF: hfhub.Config{
			HubURL:       viper.GetString("engine.hf_hub_url"),
			InferenceURL: viper.GetString("engine.hf_inference_url"),
			Token:        GetHFToken(),
		},
		OpenAI: openaicompat.Config{
			BaseURL: viper.GetString("engine.openai_base_url"),
			APIKey:  GetOpenAIKey(),
		},
		Gemini: gemini.Config{
			APIKey:     GetGeminiKey(),
			Model:      viper.GetString("engine.gemini_model"),
			Directions: viper.GetStringSlice("engine.gemini_directions"),
		},
	}
}
