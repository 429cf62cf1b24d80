package handlers

import (
	"encoding/json"
	"net/http"

	"atelierledger/internal/httpx"
	"atelierledger/internal/models"
	"atelierledger/internal/repository"
)

type PurchaseHandler struct {
	repo repository.PurchaseRepository
}

func NewPurchaseHandler(repo repository.PurchaseRepository) *PurchaseHandler {
	return &PurchaseHandler{repo: repo}
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.repo.List(r.Context())
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, purchases)
}

func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Purchase
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p.ID = 0
	if err := h.repo.Create(r.Context(), &p); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *PurchaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var p models.Purchase
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	p.ID = id
	if err := h.repo.Update(r.Context(), &p); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		httpx.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
