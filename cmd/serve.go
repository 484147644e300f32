package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/db"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP game server",
		RunE:  runServe,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	sqlDB, err := db.OpenAndMigrate(cfg.DBPath, assets.Migrations())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	srv := httpserver.New(cfg, store.NewMemoryStore(), sqlDB, list)
	log.Info().Str("port", cfg.Port).Int("words", len(list)).Str("db", cfg.DBPath).Msg("starting wordsearch server")
	return srv.Start(":" + cfg.Port)
}
