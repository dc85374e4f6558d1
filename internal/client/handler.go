package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/meridianadvisory/api-portal/internal/auth"
	"github.com/meridianadvisory/api-portal/internal/contract"
	"github.com/meridianadvisory/api-portal/internal/user"
	"github.com/meridianadvisory/api-portal/pkg/logger"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves the client portal views and the admin write path for
// client records.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Users      user.Repository
	Contracts  contract.Repository
	Log        *logger.Logger

	// now is swappable in tests; the aggregations are time-dependent.
	now func() time.Time
}

func NewHandler(db *gorm.DB, log *logger.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Users:      user.NewRepository(),
		Contracts:  contract.NewRepository(),
		Log:        log,
		now:        time.Now,
	}
}

// GetContracts returns the logged-in client's contracts with the linear
// time-progress estimate per contract.
func (h *Handler) GetContracts(w http.ResponseWriter, r *http.Request) {
	c, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	contracts, err := h.Contracts.ListByClient(h.DB, c.ID)
	if err != nil {
		h.Log.Error().Err(err).Uint("client", c.ID).Msg("contract fetch failed")
		http.Error(w, "could not load contracts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildContractsResponse(contracts, h.now()))
}

// GetStats returns the client dashboard summary.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	c, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	contracts, err := h.Contracts.ListByClient(h.DB, c.ID)
	if err != nil {
		h.Log.Error().Err(err).Uint("client", c.ID).Msg("contract fetch failed")
		http.Error(w, "could not load stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildStatsResponse(contracts, h.now()))
}

// resolveOwner maps the authenticated identity to its client record.
// A missing user or client record is the caller's 404, anything else 500.
func (h *Handler) resolveOwner(w http.ResponseWriter, r *http.Request) (*Client, bool) {
	email := auth.EmailFromContext(r.Context())

	u, err := h.Users.FindByEmail(h.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return nil, false
		}
		h.Log.Error().Err(err).Str("email", email).Msg("user lookup failed")
		http.Error(w, "could not resolve account", http.StatusInternalServerError)
		return nil, false
	}

	c, err := h.Repository.FindByUserID(h.DB, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return nil, false
		}
		h.Log.Error().Err(err).Uint("user", u.ID).Msg("client lookup failed")
		http.Error(w, "could not resolve client", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}

// List returns all clients (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListAll(h.DB)
	if err != nil {
		http.Error(w, "could not list clients", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Update changes a client record (admin).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	existing, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	var in Client
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	existing.CompanyName = in.CompanyName
	existing.ContactPerson = in.ContactPerson
	existing.Phone = in.Phone
	existing.Industry = in.Industry
	if in.Status != "" {
		existing.Status = in.Status
	}
	if err := h.Repository.Update(h.DB, existing); err != nil {
		http.Error(w, "could not update client", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

// ProfileCreator provisions the client record during registration.
type ProfileCreator struct {
	Repository Repository
}

func NewProfileCreator() ProfileCreator {
	return ProfileCreator{Repository: NewRepository()}
}

func (p ProfileCreator) CreateProfile(db *gorm.DB, userID uint, req user.RegisterRequest) error {
	return p.Repository.Create(db, &Client{
		UserID:        userID,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Status:        StatusLead,
	})
}
