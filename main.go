package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"scholarfund/application"
	"scholarfund/config"
	"scholarfund/database"
	"scholarfund/domain/interfaces"
	"scholarfund/infrastructure"
	"scholarfund/repository"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: scholarfund [migrate|reconcile|register|recompute] ...")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "migrate":
		err = handleMigrationCommand()
	case "reconcile":
		err = handleReconcileCommand()
	case "register":
		err = handleRegisterCommand()
	case "recompute":
		err = handleRecomputeCommand()
	default:
		err = fmt.Errorf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatalf("Command failed: %v", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: scholarfund migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

// handleReconcileCommand scans every scholarship for freeze-flag divergence.
// "reconcile fix" also overwrites each divergent flag with the predicate
// result.
func handleReconcileCommand() error {
	fix := len(os.Args) > 2 && os.Args[2] == "fix"

	ctx := context.Background()
	db, cleanup, err := connect(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reconciler := application.NewReconciler(repository.NewUnitOfWorkFactory(db))
	mismatches, err := reconciler.Run(ctx, fix)
	if err != nil {
		return err
	}

	for _, m := range mismatches {
		fmt.Printf("scholarship %d: frozen=%v shouldFreeze=%v\n", m.ScholarshipID, m.Frozen, m.ShouldFreeze)
	}
	fmt.Printf("%d mismatches found (fix=%v)\n", len(mismatches), fix)
	return nil
}

func handleRegisterCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: scholarfund register <student>")
	}

	ctx := context.Background()
	ledger, cleanup, err := buildLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	scholarship, err := ledger.Register(ctx, os.Args[2])
	if err != nil {
		return err
	}

	fmt.Printf("registered scholarship %d for student %s\n", scholarship.ID, scholarship.Student)
	return nil
}

func handleRecomputeCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: scholarfund recompute <scholarship-id>")
	}
	scholarshipID, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scholarship id %q: %w", os.Args[2], err)
	}

	ctx := context.Background()
	ledger, cleanup, err := buildLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	frozen, err := ledger.RecomputeFrozen(ctx, scholarshipID)
	if err != nil {
		return err
	}

	fmt.Printf("scholarship %d frozen=%v\n", scholarshipID, frozen)
	return nil
}

func connect(ctx context.Context) (*database.DB, func(), error) {
	cfg := config.Get()
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, func() { db.Close() }, nil
}

func buildLedger(ctx context.Context) (*application.Ledger, func(), error) {
	cfg := config.Get()

	db, cleanup, err := connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	closeCache := func() {}
	var cache *infrastructure.RedisReputationCache
	if cfg.RedisAddr != "" {
		cache, err = infrastructure.NewRedisReputationCache(cfg.RedisAddr)
		if err != nil {
			log.Warnf("Reputation cache unavailable, continuing without it: %v", err)
			cache = nil
		} else {
			closeCache = func() {
				if err := cache.Close(); err != nil {
					log.Errorf("Failed to close reputation cache: %v", err)
				}
			}
		}
	}

	// The CLI has no external asset layer attached, so token movement runs
	// against the in-memory gateway.
	tokens := infrastructure.NewMemoryTokenGateway()
	tokens.SetDecimals(cfg.FundingAsset, 6)
	tokens.SetDecimals(cfg.RewardAsset, 18)

	ledgerCfg := application.LedgerConfig{
		FundingAsset:            cfg.FundingAsset,
		RewardAsset:             cfg.RewardAsset,
		EscrowAccount:           cfg.EscrowAccount,
		FeeRecipient:            cfg.FeeRecipient,
		FeeBps:                  cfg.FeeBps,
		RewardRatePerUnit:       cfg.RewardRatePerUnit,
		BlockWithdrawWhenFrozen: !cfg.WithdrawWhenFrozen,
	}

	ledger, err := application.NewLedger(repository.NewUnitOfWorkFactory(db), tokens, tokens, cacheOrNil(cache), nil, ledgerCfg)
	if err != nil {
		cleanup()
		closeCache()
		return nil, nil, err
	}

	return ledger, func() {
		closeCache()
		cleanup()
	}, nil
}

// cacheOrNil avoids handing the ledger a non-nil interface wrapping a nil
// pointer
func cacheOrNil(cache *infrastructure.RedisReputationCache) interfaces.ReputationCache {
	if cache == nil {
		return nil
	}
	return cache
}
