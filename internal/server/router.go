package server

import (
	"net/http"

	"gorm.io/gorm"

	"atelierledger/internal/handlers"
	"atelierledger/internal/httpx"
	"atelierledger/internal/middleware"
	"atelierledger/internal/repository"
	"atelierledger/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. Dependency graph: Handler ← Service ← Repository ← DB.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	clientRepo := repository.NewClientRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	saleSvc := services.NewSaleService(saleRepo)
	reportSvc := services.NewReportService(saleRepo, purchaseRepo, goalRepo)

	ch := handlers.NewClientHandler(clientRepo)
	mux.HandleFunc("GET /clients", ch.List)
	mux.HandleFunc("POST /clients", ch.Create)
	mux.HandleFunc("PUT /clients/{id}", ch.Update)
	mux.HandleFunc("DELETE /clients/{id}", ch.Delete)

	ph := handlers.NewPurchaseHandler(purchaseRepo)
	mux.HandleFunc("GET /purchases", ph.List)
	mux.HandleFunc("POST /purchases", ph.Create)
	mux.HandleFunc("PUT /purchases/{id}", ph.Update)
	mux.HandleFunc("DELETE /purchases/{id}", ph.Delete)

	gh := handlers.NewGoalHandler(goalRepo)
	mux.HandleFunc("GET /goals", gh.List)
	mux.HandleFunc("PUT /goals/{year}/{month}", gh.Upsert)

	prh := handlers.NewProfileHandler(profileRepo)
	mux.HandleFunc("GET /profile", prh.Get)
	mux.HandleFunc("PUT /profile", prh.Put)

	sh := handlers.NewSaleHandler(saleSvc)
	mux.HandleFunc("GET /sales", sh.List)
	mux.HandleFunc("POST /sales", sh.Create)
	mux.HandleFunc("GET /sales/{id}", sh.Get)
	mux.HandleFunc("DELETE /sales/{id}", sh.Delete)
	mux.HandleFunc("PUT /sales/{id}/status", sh.ChangeStatus)

	rh := handlers.NewReportHandler(reportSvc)
	mux.HandleFunc("GET /reports/sales", rh.Sales)
	mux.HandleFunc("GET /reports/purchases", rh.Purchases)
	mux.HandleFunc("GET /reports/goals/{year}/{month}", rh.GoalProgress)
	mux.HandleFunc("GET /reports/cashflow", rh.CashFlow)
	mux.HandleFunc("GET /reports/lifetime", rh.Lifetime)

	return middleware.RequestID(middleware.Logger(mux))
}
