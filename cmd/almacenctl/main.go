// almacenctl herramienta de operación: migraciones y datos de demostración.
//
// Uso:
//
//	almacenctl migrate up
//	almacenctl migrate down --steps 1
//	almacenctl migrate version
//	almacenctl seed --file seed/seed.yaml
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/almacen-api/internal/application/seed"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Version se sobrescribe con -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "almacenctl",
		Short:         "Operación de la API de almacén",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(migrateCmd(), seedCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "almacenctl %s\n", Version)
		},
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "almacenctl"})
	return cfg, log, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de la base de datos",
	}

	withMigrator := func(fn func(*postgres.Migrator, *logger.Logger) error) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := postgres.NewMigrator(cfg.DB.MigrationURL())
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(m, log)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(func(m *postgres.Migrator, log *logger.Logger) error {
				if err := m.Up(); err != nil {
					return err
				}
				v, _, err := m.Version()
				if err != nil {
					return err
				}
				log.Info().Uint("version", v).Msg("migraciones aplicadas")
				return nil
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withMigrator(func(m *postgres.Migrator, log *logger.Logger) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				log.Info().Int("steps", steps).Msg("migraciones revertidas")
				return nil
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Cantidad de migraciones a revertir")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Versión actual del esquema",
		RunE: func(c *cobra.Command, _ []string) error {
			return withMigrator(func(m *postgres.Migrator, _ *logger.Logger) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
				return nil
			})
		},
	})
	return cmd
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga categorías, artículos y usuarios desde YAML",
		RunE: func(c *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("abrir %s: %w", file, err)
			}
			defer f.Close()
			data, err := seed.Parse(f)
			if err != nil {
				return err
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			categoryRepo := postgres.NewCategoryRepository(pool)
			txRunner := postgres.NewTxRunner(pool)
			loader := seed.NewLoader(
				usecase.NewCategoryUseCase(categoryRepo, txRunner),
				usecase.NewItemUseCase(postgres.NewItemRepository(pool), categoryRepo),
				usecase.NewUserUseCase(postgres.NewUserRepository(pool), postgres.NewRoleRepository(pool), txRunner),
				log.Component("seed"),
			)
			res, err := loader.Load(ctx, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "categorías: %d, artículos: %d, usuarios: %d, omitidos: %d\n",
				res.Categories, res.Items, res.Users, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed/seed.yaml", "Archivo YAML de semillas")
	return cmd
}
