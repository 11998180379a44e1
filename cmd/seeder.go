package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/worldsell/internal/paymentprovider"
	"github.com/frahmantamala/worldsell/internal/paymentprovider/postgres"
	"github.com/frahmantamala/worldsell/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	clearData bool
	seedFrom  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the payment catalog in the database",
	Long:  `Writes the built-in catalog, or the YAML catalog given with --from, to the database tables.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "only clear the stored catalog")
	seedCmd.Flags().StringVar(&seedFrom, "from", "", "YAML catalog file to seed instead of the built-in tables")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled() {
		return fmt.Errorf("seed: database.source is not configured")
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer db.Close()

	gormDB, err := openGorm(db)
	if err != nil {
		return err
	}
	repo := postgres.NewCatalogRepository(gormDB)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	if clearData {
		if err := repo.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
		logger.L().Info("stored catalog cleared")
		return nil
	}

	var loader paymentprovider.Loader = paymentprovider.BuiltinLoader{}
	if seedFrom != "" {
		loader = paymentprovider.FileLoader{Path: seedFrom}
	}

	catalog, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, catalog); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	countries, providers := catalog.Size()
	logger.L().Info("catalog seeded", "countries", countries, "providers", providers)
	return nil
}
