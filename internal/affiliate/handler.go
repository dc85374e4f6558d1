package affiliate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/meridianadvisory/api-portal/internal/auth"
	"github.com/meridianadvisory/api-portal/internal/client"
	"github.com/meridianadvisory/api-portal/internal/commission"
	"github.com/meridianadvisory/api-portal/internal/contract"
	"github.com/meridianadvisory/api-portal/internal/negotiation"
	"github.com/meridianadvisory/api-portal/internal/user"
	"github.com/meridianadvisory/api-portal/pkg/logger"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// recentContractsLimit caps the dashboard's recent contracts block.
const recentContractsLimit = 5

// Handler serves the affiliate portal views and the admin write path for
// affiliate records.
type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Users        user.Repository
	Contracts    contract.Repository
	Commissions  commission.Repository
	Negotiations negotiation.Repository
	Clients      client.Repository
	Log          *logger.Logger

	// now is swappable in tests; the aggregations are time-dependent.
	now func() time.Time
}

func NewHandler(db *gorm.DB, log *logger.Logger) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Users:        user.NewRepository(),
		Contracts:    contract.NewRepository(),
		Commissions:  commission.NewRepository(),
		Negotiations: negotiation.NewRepository(),
		Clients:      client.NewRepository(),
		Log:          log,
		now:          time.Now,
	}
}

// GetCommissions returns the affiliate commissions view: the normalized
// commission list with contracts attached, the cached earnings totals, the
// current month sum, payment history groups and upcoming payments.
func (h *Handler) GetCommissions(w http.ResponseWriter, r *http.Request) {
	aff, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}

	commissions, err := h.Commissions.ListByAffiliate(h.DB, aff.ID)
	if err != nil {
		h.Log.Error().Err(err).Uint("affiliate", aff.ID).Msg("commission fetch failed")
		http.Error(w, "could not load commissions", http.StatusInternalServerError)
		return
	}

	// Attach each referenced contract best-effort. A missing contract is
	// not an error; the commission is kept with contract null.
	list := make([]CommissionWithContract, 0, len(commissions))
	for _, c := range commissions {
		item := CommissionWithContract{Commission: c}
		if ct, err := h.Contracts.FindByID(h.DB, c.ContractID); err == nil {
			item.Contract = ct
		}
		list = append(list, item)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildCommissionsResponse(*aff, list, h.now()))
}

// GetContracts returns the affiliate's contracts with summary counters.
func (h *Handler) GetContracts(w http.ResponseWriter, r *http.Request) {
	aff, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	contracts, err := h.Contracts.ListByAffiliate(h.DB, aff.ID, 0)
	if err != nil {
		h.Log.Error().Err(err).Uint("affiliate", aff.ID).Msg("contract fetch failed")
		http.Error(w, "could not load contracts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildContractsResponse(contracts))
}

// GetRecentContracts returns the five most recent contracts with the client
// display name resolved. A failed client lookup falls back, never errors.
func (h *Handler) GetRecentContracts(w http.ResponseWriter, r *http.Request) {
	aff, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}
	contracts, err := h.Contracts.ListByAffiliate(h.DB, aff.ID, recentContractsLimit)
	if err != nil {
		h.Log.Error().Err(err).Uint("affiliate", aff.ID).Msg("contract fetch failed")
		http.Error(w, "could not load contracts", http.StatusInternalServerError)
		return
	}

	resp := RecentContractsResponse{Contracts: make([]RecentContractDTO, 0, len(contracts))}
	for _, c := range contracts {
		name := "Unknown Client"
		if cl, err := h.Clients.FindByID(h.DB, c.ClientID); err == nil {
			name = cl.DisplayName()
		}
		resp.Contracts = append(resp.Contracts, RecentContractDTO{
			ID:         c.ID,
			Title:      c.Title,
			Amount:     c.Amount,
			Status:     c.Status,
			ClientName: name,
			CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetStats returns the affiliate dashboard summary.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	aff, ok := h.resolveOwner(w, r)
	if !ok {
		return
	}

	contracts, err := h.Contracts.ListByAffiliate(h.DB, aff.ID, 0)
	if err != nil {
		h.Log.Error().Err(err).Uint("affiliate", aff.ID).Msg("contract fetch failed")
		http.Error(w, "could not load stats", http.StatusInternalServerError)
		return
	}
	negotiations, err := h.Negotiations.ListByAffiliate(h.DB, aff.ID)
	if err != nil {
		h.Log.Error().Err(err).Uint("affiliate", aff.ID).Msg("negotiation fetch failed")
		http.Error(w, "could not load stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildStatsResponse(*aff, contracts, negotiations))
}

// resolveOwner maps the authenticated identity to its affiliate record.
// A missing user or affiliate record is the caller's 404, anything else 500.
func (h *Handler) resolveOwner(w http.ResponseWriter, r *http.Request) (*Affiliate, bool) {
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

	aff, err := h.Repository.FindByUserID(h.DB, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "affiliate not found", http.StatusNotFound)
			return nil, false
		}
		h.Log.Error().Err(err).Uint("user", u.ID).Msg("affiliate lookup failed")
		http.Error(w, "could not resolve affiliate", http.StatusInternalServerError)
		return nil, false
	}
	return aff, true
}

// List returns all affiliates (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListAll(h.DB)
	if err != nil {
		http.Error(w, "could not list affiliates", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

type approveRequest struct {
	CommissionRate float64 `json:"commissionRate"`
}

// Approve activates a pending affiliate (admin), optionally setting the
// agreed commission rate.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	aff, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "affiliate not found", http.StatusNotFound)
		return
	}

	var req approveRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	aff.Status = StatusApproved
	if req.CommissionRate > 0 {
		aff.CommissionRate = req.CommissionRate
	}
	if err := h.Repository.Update(h.DB, aff); err != nil {
		h.Log.Error().Err(err).Uint("affiliate", aff.ID).Msg("affiliate approve failed")
		http.Error(w, "could not approve affiliate", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(aff)
}

// Resolver implements negotiation.OwnerResolver.
type Resolver struct {
	Users      user.Repository
	Affiliates Repository
}

func NewResolver() Resolver {
	return Resolver{Users: user.NewRepository(), Affiliates: NewRepository()}
}

func (r Resolver) ResolveAffiliateID(db *gorm.DB, email string) (uint, error) {
	u, err := r.Users.FindByEmail(db, email)
	if err != nil {
		return 0, err
	}
	aff, err := r.Affiliates.FindByUserID(db, u.ID)
	if err != nil {
		return 0, err
	}
	return aff.ID, nil
}

// ProfileCreator provisions the affiliate record during registration.
type ProfileCreator struct {
	Repository Repository
}

func NewProfileCreator() ProfileCreator {
	return ProfileCreator{Repository: NewRepository()}
}

func (p ProfileCreator) CreateProfile(db *gorm.DB, userID uint, req user.RegisterRequest) error {
	return p.Repository.Create(db, &Affiliate{
		UserID:         userID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Company:        req.CompanyName,
		Phone:          req.Phone,
		CommissionRate: DefaultCommissionRate,
		Status:         StatusPending,
	})
}
