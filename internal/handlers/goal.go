package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"atelierledger/internal/httpx"
	"atelierledger/internal/models"
	"atelierledger/internal/repository"
)

type GoalHandler struct {
	repo repository.GoalRepository
}

func NewGoalHandler(repo repository.GoalRepository) *GoalHandler {
	return &GoalHandler{repo: repo}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.repo.List(r.Context())
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goals)
}

// Upsert sets the targets for the period in the path, inserting or
// updating as needed.
func (h *GoalHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(r.PathValue("year"))
	month, errM := strconv.Atoi(r.PathValue("month"))
	if errY != nil || errM != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_period", nil)
		return
	}
	var body struct {
		RevenueTarget decimal.Decimal `json:"revenue_target"`
		ProfitTarget  decimal.Decimal `json:"profit_target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	goal := models.Goal{
		Year:          year,
		Month:         month,
		RevenueTarget: body.RevenueTarget,
		ProfitTarget:  body.ProfitTarget,
	}
	if err := h.repo.Upsert(r.Context(), &goal); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goal)
}
