package handlers

import (
	"encoding/json"
	"net/http"

	"atelierledger/internal/httpx"
	"atelierledger/internal/models"
	"atelierledger/internal/repository"
)

type ClientHandler struct {
	repo repository.ClientRepository
}

func NewClientHandler(repo repository.ClientRepository) *ClientHandler {
	return &ClientHandler{repo: repo}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repo.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	c.ID = 0
	if err := h.repo.Create(r.Context(), &c); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	c.ID = id
	if err := h.repo.Update(r.Context(), &c); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
