// Command statement prints a company's transaction ledger as CSV on stdout.
//
// Usage: statement <company-id>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/lendwell/ledger/internal/config"
	"github.com/lendwell/ledger/internal/contract"
	contractStore "github.com/lendwell/ledger/internal/contract/store"
	"github.com/lendwell/ledger/internal/database"
	"github.com/lendwell/ledger/internal/export"
	"github.com/lendwell/ledger/internal/loan"
	loanStore "github.com/lendwell/ledger/internal/loan/store"
	settlementStore "github.com/lendwell/ledger/internal/settlement/store"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 2 {
		slog.Error("usage: statement <company-id>")
		os.Exit(1)
	}

	companyID, err := uuid.Parse(os.Args[1])
	if err != nil {
		slog.Error("invalid company id", "arg", os.Args[1], "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		resolver      = contract.NewResolver(contractStore.New(db))
		loanService   = loan.NewService(loanStore.New(db), resolver)
		exportService = export.NewService(loanService, settlementStore.New(db))
	)

	if err := exportService.Statement(context.Background(), companyID, os.Stdout); err != nil {
		slog.Error("failed to write statement", "company_id", companyID, "error", err)
		os.Exit(1)
	}
}
