package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meridianadvisory/api-portal/internal/auth"
	"github.com/meridianadvisory/api-portal/internal/utils"
	"github.com/meridianadvisory/api-portal/pkg/logger"

	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
}

// ProfileCreator provisions the role-specific record for a new account.
// The affiliate and client packages each provide one.
type ProfileCreator interface {
	CreateProfile(db *gorm.DB, userID uint, req RegisterRequest) error
}

// Mailer sends a templated transactional email, best-effort.
type Mailer interface {
	Send(to, template string, data map[string]string)
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Profiles   map[string]ProfileCreator
	Mail       Mailer
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, log *logger.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Profiles:   map[string]ProfileCreator{},
		Log:        log,
	}
}

// Register creates an account plus its affiliate or client profile.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}
	creator, ok := h.Profiles[req.Role]
	if !ok {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}

	u := User{Email: req.Email, Password: hash, Role: req.Role}
	if err := h.Repository.Create(h.DB, &u); err != nil {
		http.Error(w, "could not create account", http.StatusInternalServerError)
		return
	}
	if err := creator.CreateProfile(h.DB, u.ID, req); err != nil {
		h.Log.Error().Err(err).Str("email", req.Email).Msg("profile creation failed")
		http.Error(w, "could not create profile", http.StatusInternalServerError)
		return
	}

	if h.Mail != nil {
		h.Mail.Send(u.Email, "welcome", map[string]string{"role": u.Role})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

// Login checks credentials and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.FindByEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		h.Log.Error().Err(err).Msg("token generation failed")
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token, "role": u.Role})
}

// Me returns the logged-in account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email := auth.EmailFromContext(r.Context())
	u, err := h.Repository.FindByEmail(h.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not load account", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}
