package commission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/meridianadvisory/api-portal/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// EarningsLedger maintains the affiliate's cached earnings totals. The
// aggregation read paths report these numbers as-is, so every commission
// mutation must go through the ledger.
type EarningsLedger interface {
	AddPending(db *gorm.DB, affiliateID uint, amount float64) error
	SettlePaid(db *gorm.DB, affiliateID uint, amount float64) error
}

// Handler exposes the admin write path for commissions.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Ledger     EarningsLedger
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, ledger EarningsLedger, log *logger.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Ledger: ledger, Log: log}
}

// Create records a new pending commission and grows the affiliate's total
// and pending earnings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c Commission
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if c.Amount < 0 {
		http.Error(w, "amount must not be negative", http.StatusBadRequest)
		return
	}
	c.Status = StatusPending
	c.PaymentReference = nil
	c.PaymentDate = nil
	c.ApprovedDate = nil

	if err := h.Repository.Create(h.DB, &c); err != nil {
		h.Log.Error().Err(err).Msg("commission create failed")
		http.Error(w, "could not create commission", http.StatusInternalServerError)
		return
	}
	if err := h.Ledger.AddPending(h.DB, c.AffiliateID, c.Amount); err != nil {
		h.Log.Error().Err(err).Uint("affiliate", c.AffiliateID).Msg("earnings update failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// List returns every commission, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListAll(h.DB)
	if err != nil {
		h.Log.Error().Err(err).Msg("commission list failed")
		http.Error(w, "could not list commissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Approve moves a pending commission to approved and stamps the date.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	if c.Status != StatusPending {
		http.Error(w, "only pending commissions can be approved", http.StatusConflict)
		return
	}
	now := time.Now()
	c.Status = StatusApproved
	c.ApprovedDate = &now
	if err := h.Repository.Update(h.DB, c); err != nil {
		h.Log.Error().Err(err).Uint("commission", c.ID).Msg("commission approve failed")
		http.Error(w, "could not approve commission", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

type payRequest struct {
	PaymentReference string `json:"paymentReference"`
	PaymentMethod    string `json:"paymentMethod"`
}

// Pay settles an approved commission. A payment reference may be supplied
// to group several commissions under one payout; otherwise one is generated.
// Moves the amount from the affiliate's pending bucket to the paid bucket.
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	if c.Status != StatusApproved {
		http.Error(w, "only approved commissions can be paid", http.StatusConflict)
		return
	}

	var req payRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	ref := req.PaymentReference
	if ref == "" {
		ref = uuid.NewString()
	}

	now := time.Now()
	c.Status = StatusPaid
	c.PaymentReference = &ref
	c.PaymentMethod = req.PaymentMethod
	c.PaymentDate = &now
	if err := h.Repository.Update(h.DB, c); err != nil {
		h.Log.Error().Err(err).Uint("commission", c.ID).Msg("commission pay failed")
		http.Error(w, "could not pay commission", http.StatusInternalServerError)
		return
	}
	if err := h.Ledger.SettlePaid(h.DB, c.AffiliateID, c.Amount); err != nil {
		h.Log.Error().Err(err).Uint("affiliate", c.AffiliateID).Msg("earnings update failed")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Commission, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}
	c, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "commission not found", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "could not load commission", http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}
