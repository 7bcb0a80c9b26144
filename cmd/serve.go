package cmd

import (
	"study_coach_backend/internal/app"
	"study_coach_backend/internal/config"
	"study_coach_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var forceMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return err
		}
		// release 模式下需显式指定才会迁移
		cfg.ForceMigrate = forceMigrate

		application, err := app.NewApp(cfg)
		if err != nil {
			return err
		}
		defer logger.Log.Sync()

		return application.Run()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&forceMigrate, "migrate", false, "run database migrations on startup even in release mode")
	rootCmd.AddCommand(serveCmd)
}
