package results

import (
	"net/http"
	"time"

	"github.com/Adedunmol/pulso/api/middlewares"
	"github.com/Adedunmol/pulso/api/tokens"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// SetupRoutes registers the results endpoints on the router mounted at
// /surveys.
func SetupRoutes(surveysRouter chi.Router, store Store, cache Cache, tokenService tokens.TokenService, publicURL string, pollInterval time.Duration) {

	handler := Handler{
		Store:        store,
		Cache:        cache,
		PublicURL:    publicURL,
		PollInterval: pollInterval,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	surveysRouter.Get("/{surveyID}/share.png", handler.ShareHandler)

	surveysRouter.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokenService))

		r.Route("/{surveyID}/results", func(r chi.Router) {
			r.Get("/", handler.GetResultsHandler)
			r.Get("/export", handler.ExportResultsHandler)
			r.Get("/report", handler.ReportResultsHandler)
			r.Get("/live", handler.LiveResultsHandler)
		})
	})
}
