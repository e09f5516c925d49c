// Package cmd wires the CLI: configuration loading, credential plumbing,
// and the ask/models/login/info/response subcommands.
package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skel-ai/go-responder/internal/config"
	"github.com/skel-ai/go-responder/internal/credstore"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "responder",
	Short: "Capability-gated client for the Responses API",
	Long: `responder composes capability-gated requests against a Responses-style
chat API and decodes the streamed results, tolerating malformed frames.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.responder/config.yaml)")
	rootCmd.PersistentFlags().String("model", "gpt-5", "target model id")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose request/response logging")

	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// A .env next to the binary is a convenience for local development;
	// absence is not an error.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(credstore.HomeDir())
	}

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the configuration snapshot for one invocation.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// credentialStore picks the credential source: an explicit API key from the
// environment wins over the on-disk OAuth credentials.
func credentialStore() credstore.Store {
	if key := os.Getenv("RESPONDER_API_KEY"); key != "" {
		return credstore.StaticStore(key)
	}
	return credstore.NewFileStore(os.Getenv("RESPONDER_CLIENT_ID"), credstore.TokenURL())
}
