package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/meridianadvisory/api-portal/internal/affiliate"
	"github.com/meridianadvisory/api-portal/internal/auth"
	"github.com/meridianadvisory/api-portal/internal/client"
	"github.com/meridianadvisory/api-portal/internal/comment"
	"github.com/meridianadvisory/api-portal/internal/commission"
	"github.com/meridianadvisory/api-portal/internal/contract"
	"github.com/meridianadvisory/api-portal/internal/negotiation"
	"github.com/meridianadvisory/api-portal/internal/notification"
	"github.com/meridianadvisory/api-portal/internal/user"
	"github.com/meridianadvisory/api-portal/pkg/config"
	"github.com/meridianadvisory/api-portal/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// .env is optional; the environment wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Msg("starting")

	auth.Configure(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpHours)*time.Hour)

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	if err := db.AutoMigrate(
		&user.User{},
		&affiliate.Affiliate{},
		&client.Client{},
		&contract.Contract{},
		&commission.Commission{},
		&negotiation.Negotiation{},
		&comment.Comment{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	mailer := notification.NewMailer(cfg.Mail.ProviderURL, cfg.Mail.APIKey, cfg.Mail.From, log)

	// Handlers
	userHandler := user.NewHandler(db, log)
	userHandler.Mail = mailer
	userHandler.Profiles = map[string]user.ProfileCreator{
		auth.RoleAffiliate: affiliate.NewProfileCreator(),
		auth.RoleClient:    client.NewProfileCreator(),
	}
	affiliateHandler := affiliate.NewHandler(db, log)
	clientHandler := client.NewHandler(db, log)
	contractHandler := contract.NewHandler(db, log)
	commissionHandler := commission.NewHandler(db, affiliate.NewRepository(), log)
	negotiationHandler := negotiation.NewHandler(db, affiliate.NewResolver(), log)
	commentHandler := comment.NewHandler(db)

	// Router
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/auth/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", userHandler.Login).Methods("POST")

	// Authenticated routes
	secured := r.NewRoute().Subrouter()
	secured.Use(auth.Middleware)
	secured.HandleFunc("/me", userHandler.Me).Methods("GET")

	// Affiliate portal
	aff := secured.PathPrefix("/affiliate").Subrouter()
	aff.Use(auth.RequireRole(auth.RoleAffiliate))
	aff.HandleFunc("/stats", affiliateHandler.GetStats).Methods("GET")
	aff.HandleFunc("/commissions", affiliateHandler.GetCommissions).Methods("GET")
	aff.HandleFunc("/contracts", affiliateHandler.GetContracts).Methods("GET")
	aff.HandleFunc("/contracts/recent", affiliateHandler.GetRecentContracts).Methods("GET")
	aff.HandleFunc("/negotiations", negotiationHandler.Create).Methods("POST")
	aff.HandleFunc("/negotiations", negotiationHandler.List).Methods("GET")
	aff.HandleFunc("/negotiations/{id}", negotiationHandler.Update).Methods("PUT")
	aff.HandleFunc("/negotiations/{id}", negotiationHandler.Delete).Methods("DELETE")
	aff.HandleFunc("/negotiations/{id}/comments", commentHandler.CreateForNegotiation).Methods("POST")
	aff.HandleFunc("/negotiations/{id}/comments", commentHandler.ListByNegotiation).Methods("GET")

	// Client portal
	cli := secured.PathPrefix("/client").Subrouter()
	cli.Use(auth.RequireRole(auth.RoleClient))
	cli.HandleFunc("/contracts", clientHandler.GetContracts).Methods("GET")
	cli.HandleFunc("/stats", clientHandler.GetStats).Methods("GET")

	// Admin back office
	adm := secured.PathPrefix("/admin").Subrouter()
	adm.Use(auth.RequireRole(auth.RoleAdmin))
	adm.HandleFunc("/affiliates", affiliateHandler.List).Methods("GET")
	adm.HandleFunc("/affiliates/{id}/approve", affiliateHandler.Approve).Methods("PUT")
	adm.HandleFunc("/clients", clientHandler.List).Methods("GET")
	adm.HandleFunc("/clients/{id}", clientHandler.Update).Methods("PUT")
	adm.HandleFunc("/contracts", contractHandler.Create).Methods("POST")
	adm.HandleFunc("/contracts", contractHandler.List).Methods("GET")
	adm.HandleFunc("/contracts/{id}", contractHandler.GetByID).Methods("GET")
	adm.HandleFunc("/contracts/{id}", contractHandler.Update).Methods("PUT")
	adm.HandleFunc("/contracts/{id}", contractHandler.Delete).Methods("DELETE")
	adm.HandleFunc("/commissions", commissionHandler.Create).Methods("POST")
	adm.HandleFunc("/commissions", commissionHandler.List).Methods("GET")
	adm.HandleFunc("/commissions/{id}/approve", commissionHandler.Approve).Methods("PUT")
	adm.HandleFunc("/commissions/{id}/pay", commissionHandler.Pay).Methods("PUT")

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
