// Package main provides ledgerctl, an operations CLI for the ledgerbook
// backend: schema initialization, seeding a starter chart of accounts, and
// closing periods without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ledgerbook/internal/domain/closing"
	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/infrastructure/config"
	"ledgerbook/internal/infrastructure/storage/postgres"
	"ledgerbook/internal/infrastructure/storage/postgres/ledger_repo"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operations CLI for the ledgerbook backend",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(initSchemaCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(closePeriodCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect loads configuration and opens the database pool.
func connect(ctx context.Context) (*postgres.Pool, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

func initSchemaCmd() *cobra.Command {
	var migrationsFile string

	cmd := &cobra.Command{
		Use:   "init-schema",
		Short: "Apply the schema migration file to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			sql, err := os.ReadFile(migrationsFile)
			if err != nil {
				return fmt.Errorf("read migrations file: %w", err)
			}
			if _, err := pool.Exec(ctx, string(sql)); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}

			fmt.Println("schema applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsFile, "file", "migrations/001_init.sql", "path to the schema migration file")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a starter chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			txm := postgres.NewTxManager(pool)
			accounts := ledger.NewAccountService(ledger_repo.NewAccountRepo(txm), txm)
			hierarchy := ledger.NewHierarchyService(ledger_repo.NewHierarchyRepo(txm), txm)

			seed := []ledger.Account{
				{Code: "1000", Name: "Assets", Type: ledger.TypeAsset},
				{Code: "1100", Name: "Cash", Type: ledger.TypeAsset},
				{Code: "1200", Name: "Accounts Receivable", Type: ledger.TypeAsset},
				{Code: "2000", Name: "Liabilities", Type: ledger.TypeLiability},
				{Code: "2100", Name: "Accounts Payable", Type: ledger.TypeLiability},
				{Code: "3000", Name: "Equity", Type: ledger.TypeEquity},
				{Code: "4000", Name: "Revenue", Type: ledger.TypeIncome},
				{Code: "5000", Name: "Expenses", Type: ledger.TypeExpense},
			}
			for i := range seed {
				if err := accounts.Create(ctx, &seed[i]); err != nil {
					return fmt.Errorf("seed account %s: %w", seed[i].Code, err)
				}
			}

			edges := []ledger.HierarchyEdge{
				{ChildCode: "1100", ParentCode: "1000", Level: 1},
				{ChildCode: "1200", ParentCode: "1000", Level: 1},
				{ChildCode: "2100", ParentCode: "2000", Level: 1},
			}
			for i := range edges {
				if err := hierarchy.Create(ctx, &edges[i]); err != nil {
					return fmt.Errorf("seed hierarchy edge %s: %w", edges[i].ChildCode, err)
				}
			}

			fmt.Printf("seeded %d accounts and %d hierarchy edges\n", len(seed), len(edges))
			return nil
		},
	}
}

func closePeriodCmd() *cobra.Command {
	var periodID int64

	cmd := &cobra.Command{
		Use:   "close-period",
		Short: "Close a period and write its balance snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			txm := postgres.NewTxManager(pool)
			periodRepo := ledger_repo.NewPeriodRepo(txm)
			closer := closing.NewCloser(
				periodRepo,
				ledger_repo.NewEntryRepo(txm),
				ledger_repo.NewSnapshotRepo(txm),
				txm,
			)
			periods := ledger.NewPeriodService(periodRepo, closer, txm)

			if err := periods.Close(ctx, periodID); err != nil {
				return fmt.Errorf("close period %d: %w", periodID, err)
			}

			fmt.Printf("period %d closed\n", periodID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&periodID, "period", 0, "ID of the period to close")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}
