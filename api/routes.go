package api

import (
	"net/http"

	"github.com/Adedunmol/pulso/api/auth"
	"github.com/Adedunmol/pulso/api/jsonutil"
	"github.com/Adedunmol/pulso/api/results"
	"github.com/Adedunmol/pulso/api/surveys"
	"github.com/Adedunmol/pulso/api/tokens"
	"github.com/Adedunmol/pulso/config"
	"github.com/Adedunmol/pulso/database"
	"github.com/Adedunmol/pulso/queue"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Routes(cfg config.Config, pool *pgxpool.Pool, queue queue.Queue, cache results.Cache) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/check", func(w http.ResponseWriter, r *http.Request) {
		jsonutil.WriteJSONResponse(w, jsonutil.Response{Status: "success", Message: "hello from pulso"}, http.StatusOK)
	})

	tokenService := tokens.NewTokenService(cfg.SecretKey)
	queries := database.New(pool)
	store := surveys.NewSurveyStore(pool, database.NewDBTransactor(pool))

	auth.SetupRoutes(r, queue, queries, tokenService)

	surveysRouter := chi.NewRouter()
	surveys.SetupRoutes(surveysRouter, store, queue, cache, tokenService, cfg.PublicURL)
	results.SetupRoutes(surveysRouter, store, cache, tokenService, cfg.PublicURL, cfg.Results.PollInterval)
	r.Mount("/surveys", surveysRouter)

	return r
}
