// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain/closing"
	"ledgerbook/internal/domain/ledger"
	"ledgerbook/internal/domain/statements"
	"ledgerbook/internal/infrastructure/http/v1/handlers"
	"ledgerbook/internal/infrastructure/http/v1/middleware"
	"ledgerbook/internal/infrastructure/storage/postgres"
	"ledgerbook/internal/infrastructure/storage/postgres/ledger_repo"
	"ledgerbook/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger
}

// NewRouter builds the Gin router with the full dependency graph:
// repositories over the pool's TxManager, domain services over the
// repositories, handlers over the services.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware, order matters.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	txm := postgres.NewTxManager(cfg.Pool)

	accountRepo := ledger_repo.NewAccountRepo(txm)
	entryRepo := ledger_repo.NewEntryRepo(txm)
	periodRepo := ledger_repo.NewPeriodRepo(txm)
	snapshotRepo := ledger_repo.NewSnapshotRepo(txm)
	hierarchyRepo := ledger_repo.NewHierarchyRepo(txm)

	closer := closing.NewCloser(periodRepo, entryRepo, snapshotRepo, txm)

	accountSvc := ledger.NewAccountService(accountRepo, txm)
	entrySvc := ledger.NewEntryService(entryRepo, accountRepo, periodRepo, txm)
	periodSvc := ledger.NewPeriodService(periodRepo, closer, txm)
	hierarchySvc := ledger.NewHierarchyService(hierarchyRepo, txm)
	statementsSvc := statements.NewService(accountRepo, entryRepo, periodRepo, snapshotRepo, hierarchyRepo, txm)

	base := handlers.NewBaseHandler()
	accountHandler := handlers.NewAccountHandler(base, accountSvc)
	entryHandler := handlers.NewEntryHandler(base, entrySvc)
	periodHandler := handlers.NewPeriodHandler(base, periodSvc)
	hierarchyHandler := handlers.NewHierarchyHandler(base, hierarchySvc)
	statementsHandler := handlers.NewStatementsHandler(base, statementsSvc)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)

	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")
	{
		accounts := api.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.GET("/code/:code", accountHandler.GetByCode)
			accounts.PUT("/:id", accountHandler.Update)
			accounts.DELETE("/:id", accountHandler.Delete)
		}

		entries := api.Group("/entries")
		{
			entries.POST("", entryHandler.Create)
			entries.GET("/:id", entryHandler.GetByID)
			entries.PUT("/:id", entryHandler.Update)
			entries.DELETE("/:id", entryHandler.Delete)
		}

		periods := api.Group("/periods")
		{
			periods.POST("", periodHandler.Create)
			periods.GET("", periodHandler.List)
			periods.GET("/:id", periodHandler.GetByID)
			periods.PUT("/:id", periodHandler.Update)
			periods.DELETE("/:id", periodHandler.Delete)
			periods.POST("/:id/close", periodHandler.Close)
			periods.GET("/:id/entries", entryHandler.ListByPeriod)
			periods.GET("/:id/balances", statementsHandler.PeriodBalances)
		}

		hierarchy := api.Group("/hierarchy")
		{
			hierarchy.POST("", hierarchyHandler.Create)
			hierarchy.GET("", hierarchyHandler.List)
			hierarchy.GET("/:id", hierarchyHandler.GetByID)
			hierarchy.GET("/resolve/:code", hierarchyHandler.Resolve)
			hierarchy.PUT("/:id", hierarchyHandler.Update)
			hierarchy.DELETE("/:id", hierarchyHandler.Delete)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/general-ledger", statementsHandler.GeneralLedger)
			reports.GET("/trial-balance", statementsHandler.TrialBalance)
			reports.GET("/income-statement", statementsHandler.IncomeStatement)
			reports.GET("/balance-sheet", statementsHandler.BalanceSheet)
			reports.GET("/combined", statementsHandler.Combined)
			reports.GET("/journal-book", statementsHandler.JournalBook)
		}
	}

	return router
}
