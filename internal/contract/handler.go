package contract

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/meridianadvisory/api-portal/pkg/logger"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler exposes the admin write path for contracts.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, log *logger.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: log}
}

// Create registers a new contract.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c Contract
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := c.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.Create(h.DB, &c); err != nil {
		h.Log.Error().Err(err).Msg("contract create failed")
		http.Error(w, "could not create contract", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// List returns all contracts, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListAll(h.DB)
	if err != nil {
		h.Log.Error().Err(err).Msg("contract list failed")
		http.Error(w, "could not list contracts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GetByID returns one contract.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "contract not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Update replaces the mutable fields of a contract.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	existing, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "contract not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not load contract", http.StatusInternalServerError)
		return
	}

	var in Contract
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	existing.Title = in.Title
	existing.Amount = in.Amount
	existing.Status = in.Status
	existing.ContractDate = in.ContractDate
	existing.StartDate = in.StartDate
	existing.EndDate = in.EndDate
	if err := existing.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repository.Update(h.DB, existing); err != nil {
		h.Log.Error().Err(err).Uint("contract", existing.ID).Msg("contract update failed")
		http.Error(w, "could not update contract", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

// Delete removes a contract.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		http.Error(w, "could not delete contract", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
