package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/MyelinBots/journalbot-go/config"
	"github.com/MyelinBots/journalbot-go/internal/bot"
	"github.com/MyelinBots/journalbot-go/internal/db"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "journalbot",
		Short:        "Discord collaborative journaling bot",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bot.StartBot()
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:          "migrate",
		Short:        "Apply database migrations and exit",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrPanic()
			return db.RunMigrations("file://migrations", cfg.DBConfig)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}
}
