package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aashish23092/bill-dispute-analyzer/common"
	"github.com/Aashish23092/bill-dispute-analyzer/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "billcheck",
		Short: "Find overcharges in medical, insurance, rent and utility bills",
		Long: `billcheck reads a bill (text, PDF or photo), flags charges that look wrong,
estimates what you could recover, and drafts the dispute letter.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "analysis history database (default from config)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(statementCmd())
	rootCmd.AddCommand(feeCmd())
	rootCmd.AddCommand(historyCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	config.SetDefaults(viper.GetViper())
	// the CLI prints its own results; keep routine service logs quiet
	viper.SetDefault("logging.level", "warn")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := config.FromViper(viper.GetViper())
	if err := common.SetupLogger(common.ParseLevel(cfg.LogLevel), cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

// currentConfig returns the merged flag/env/file configuration.
func currentConfig() *config.Config {
	return config.FromViper(viper.GetViper())
}
