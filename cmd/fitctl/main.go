// Command fitctl runs database maintenance for the fittrack server.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fittrack/internal/config"
	"fittrack/internal/db"
	"fittrack/internal/logging"
)

const version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is resolved lazily so that commands which never touch the database still work
// without one.
type env struct {
	cfg    config.Config
	logger *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fitctl",
		Short:         "Database maintenance for fittrack",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(migrateCmd(), repairCmd(), seedCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fitctl version %s\n", version)
		},
	})
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert schema migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := loadEnv()
				if err != nil {
					return err
				}
				if err := db.RunMigrations(e.cfg.DatabaseURL); err != nil {
					return err
				}
				e.logger.Info("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Revert the last migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n <= 0 {
						return fmt.Errorf("steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				e, err := loadEnv()
				if err != nil {
					return err
				}
				if err := db.RollbackMigrations(e.cfg.DatabaseURL, steps); err != nil {
					return err
				}
				e.logger.Info("migrations reverted", zap.Int("steps", steps))
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := loadEnv()
				if err != nil {
					return err
				}
				v, dirty, err := db.MigrationVersion(e.cfg.DatabaseURL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", v, dirty)
				return nil
			},
		},
	)
	return cmd
}

func repairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair-enums",
		Short: "Normalize legacy enum tags such as mealtype.breakfast to breakfast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			conn, err := db.Open(cmd.Context(), e.cfg.DatabaseURL, 2)
			if err != nil {
				return err
			}
			defer conn.Close()
			n, err := db.RepairEnumTags(cmd.Context(), conn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "repaired %d rows\n", n)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the initial superuser and knowledge base categories if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			conn, err := db.Open(cmd.Context(), e.cfg.DatabaseURL, 2)
			if err != nil {
				return err
			}
			defer conn.Close()
			created, err := db.EnsureSuperuser(cmd.Context(), conn, e.cfg.FirstSuperuserEmail, e.cfg.FirstSuperuserPasswd)
			if err != nil {
				return err
			}
			categories, err := db.SeedKnowledgeCategories(cmd.Context(), conn)
			if err != nil {
				return err
			}
			e.logger.Info("seed complete", zap.Bool("superuser_created", created), zap.Int("categories", categories))
			return nil
		},
	}
}
