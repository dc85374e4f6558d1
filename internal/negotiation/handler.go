package negotiation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/meridianadvisory/api-portal/internal/auth"
	"github.com/meridianadvisory/api-portal/pkg/logger"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// OwnerResolver maps the authenticated email to an affiliate id. Provided
// by the affiliate package.
type OwnerResolver interface {
	ResolveAffiliateID(db *gorm.DB, email string) (uint, error)
}

// Handler exposes the affiliate's pipeline management.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Owners     OwnerResolver
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, owners OwnerResolver, log *logger.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Owners: owners, Log: log}
}

// Create opens a new negotiation for the logged-in affiliate.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	affiliateID, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	var n Negotiation
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	n.AffiliateID = affiliateID
	if n.Stage == "" {
		n.Stage = StageLead
	}
	if err := h.Repository.Create(h.DB, &n); err != nil {
		h.Log.Error().Err(err).Msg("negotiation create failed")
		http.Error(w, "could not create negotiation", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(n)
}

// List returns the logged-in affiliate's negotiations, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	affiliateID, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	list, err := h.Repository.ListByAffiliate(h.DB, affiliateID)
	if err != nil {
		h.Log.Error().Err(err).Msg("negotiation list failed")
		http.Error(w, "could not list negotiations", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Update changes stage or contact details of an owned negotiation.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	affiliateID, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	n, ok := h.loadOwned(w, r, affiliateID)
	if !ok {
		return
	}

	var in Negotiation
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	n.CompanyName = in.CompanyName
	n.Contact = in.Contact
	n.Phone = in.Phone
	n.Value = in.Value
	if in.Stage != "" {
		n.Stage = in.Stage
	}
	if err := h.Repository.Update(h.DB, n); err != nil {
		h.Log.Error().Err(err).Uint("negotiation", n.ID).Msg("negotiation update failed")
		http.Error(w, "could not update negotiation", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(n)
}

// Delete removes an owned negotiation.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	affiliateID, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	n, ok := h.loadOwned(w, r, affiliateID)
	if !ok {
		return
	}
	if err := h.Repository.Delete(h.DB, n.ID); err != nil {
		http.Error(w, "could not delete negotiation", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resolveOwner(w http.ResponseWriter, r *http.Request) (uint, bool) {
	email := auth.EmailFromContext(r.Context())
	id, err := h.Owners.ResolveAffiliateID(h.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "affiliate not found", http.StatusNotFound)
			return 0, false
		}
		http.Error(w, "could not resolve affiliate", http.StatusInternalServerError)
		return 0, false
	}
	return id, true
}

func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request, affiliateID uint) (*Negotiation, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}
	n, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "negotiation not found", http.StatusNotFound)
		return nil, false
	}
	if n.AffiliateID != affiliateID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return n, true
}
