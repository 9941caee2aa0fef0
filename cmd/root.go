package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"recbox/config"
	"recbox/db"
	"recbox/logger"
	"recbox/repository"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "recbox",
	Short: "recbox is a local microphone recording box.",
	Long:  `recbox captures microphone audio, stores recordings in a local database and lets you list, export, rename and delete them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.InitLogger(logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			OutputPath: cfg.LogPath,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
		})
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the database and returns the recording repository plus the
// handle for the caller to close.
func openStore() (repository.RecordingRepository, *gorm.DB, error) {
	gdb, err := db.Open(cfg.DBFile)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSQLiteRecordingRepository(gdb), gdb, nil
}
