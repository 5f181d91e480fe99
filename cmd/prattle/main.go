package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-go-golems/prattle/cmd/prattle/cmds"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "prattle",
	Short: "prattle renders shared ChatGPT, Claude, and Grok conversations",
	Long: `prattle ingests a public share URL from ChatGPT, Claude, or Grok and
produces a human-readable HTML page and/or a machine-readable XML export of
the same conversation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// reinitialize the logger once --log-level and co have been parsed
		initLogger()
	},
}

func initLogger() {
	logLevel := viper.GetString("log-level")
	if viper.GetBool("verbose") && logLevel != "trace" {
		logLevel = "debug"
	}

	err := InitLogger(&logConfig{
		Level:      logLevel,
		LogFile:    viper.GetString("log-file"),
		LogFormat:  viper.GetString("log-format"),
		WithCaller: viper.GetBool("with-caller"),
	})
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().Bool("with-caller", false, "Log caller")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (json, text)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file (default: stderr)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")

	viper.SetEnvPrefix("prattle")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "prattle"))
	}
	// missing config file is fine, flags and env cover everything
	_ = viper.ReadInConfig()

	err := viper.BindPFlags(rootCmd.PersistentFlags())
	cobra.CheckErr(err)

	rootCmd.AddCommand(cmds.NewRenderCommand())
	rootCmd.AddCommand(cmds.NewExportCommand())
	rootCmd.AddCommand(cmds.NewPrintCommand())
	rootCmd.AddCommand(cmds.NewServeCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}
