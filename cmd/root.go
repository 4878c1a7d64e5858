package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rb3vid/internal/app"
	"rb3vid/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rb3vid",
	Short: "Play YouTube music videos alongside Rock Band 3 via RB3Enhanced",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		settings.Apply(cmd.Flags())
		config.SetupLogger()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.NewApp()
		defer a.Stop()

		err := a.Initialize()
		if err != nil {
			config.Logger.Error("failed to initialize", zap.Error(err))
			return err
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-interrupt
			a.Stop()
		}()

		a.Run()
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	config.RegisterFlags(rootCmd.PersistentFlags())
}
