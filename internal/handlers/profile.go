package handlers

import (
	"encoding/json"
	"net/http"

	"atelierledger/internal/httpx"
	"atelierledger/internal/models"
	"atelierledger/internal/repository"
)

type ProfileHandler struct {
	repo repository.ProfileRepository
}

func NewProfileHandler(repo repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.repo.Current(r.Context())
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var p models.StoreProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.repo.Save(r.Context(), &p); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
