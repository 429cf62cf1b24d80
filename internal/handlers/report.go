package handlers

import (
	"net/http"
	"strconv"
	"time"

	"atelierledger/internal/dateutil"
	"atelierledger/internal/httpx"
	"atelierledger/internal/services"
)

type ReportHandler struct {
	svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// rangeFrom reads ?from= and ?to= (either date encoding). When omitted,
// the range defaults to the first day of the current month through today,
// matching what the reporting screens preselect. The engine itself never
// normalizes a reversed range; a from after to simply matches nothing.
func rangeFrom(r *http.Request) (services.DateRange, bool) {
	now := time.Now()
	dr := services.DateRange{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, ok := dateutil.ParseAny(from)
		if !ok {
			return dr, false
		}
		dr.Start = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, ok := dateutil.ParseAny(to)
		if !ok {
			return dr, false
		}
		dr.End = t
	}
	return dr, true
}

func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	dr, ok := rangeFrom(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_range", nil)
		return
	}
	sum, err := h.svc.SummarizeSales(r.Context(), dr, r.URL.Query().Get("client"))
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}

func (h *ReportHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	dr, ok := rangeFrom(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_range", nil)
		return
	}
	sum, err := h.svc.SummarizePurchases(r.Context(), dr)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}

func (h *ReportHandler) GoalProgress(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(r.PathValue("year"))
	month, errM := strconv.Atoi(r.PathValue("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_period", nil)
		return
	}
	progress, err := h.svc.GoalProgress(r.Context(), year, month)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, progress)
}

func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	dr, ok := rangeFrom(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_range", nil)
		return
	}
	net, err := h.svc.NetCashFlow(r.Context(), dr)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"net": net})
}

func (h *ReportHandler) Lifetime(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.Lifetime(r.Context())
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, totals)
}
