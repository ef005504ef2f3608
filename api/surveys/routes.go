package surveys

import (
	"github.com/Adedunmol/pulso/api/middlewares"
	"github.com/Adedunmol/pulso/api/tokens"
	"github.com/Adedunmol/pulso/queue"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the survey endpoints on surveysRouter, which is
// expected to be mounted at /surveys.
func SetupRoutes(surveysRouter chi.Router, store Store, queue queue.Queue, cache ResultsCache, tokenService tokens.TokenService, publicURL string) {

	handler := Handler{
		Store:     store,
		Queue:     queue,
		Cache:     cache,
		PublicURL: publicURL,
	}

	// Public routes (no authentication required)
	surveysRouter.Group(func(r chi.Router) {
		r.Get("/published", handler.ListPublishedSurveysHandler)
		r.Get("/{surveyID}", handler.GetSurveyHandler)
	})

	// Protected routes (authentication required)
	surveysRouter.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokenService))

		r.Get("/my-surveys", handler.ListUserSurveysHandler)
		r.Get("/my-surveys/{surveyID}", handler.GetUserSurveyHandler)

		// Survey management
		r.Post("/", handler.CreateSurveyHandler)
		r.Put("/{surveyID}", handler.UpdateSurveyHandler)
		r.Delete("/{surveyID}", handler.DeleteSurveyHandler)
		r.Put("/{surveyID}/publish", handler.PublishSurveyHandler)
		r.Put("/{surveyID}/unpublish", handler.UnpublishSurveyHandler)

		// Question management
		r.Post("/{surveyID}/questions", handler.CreateQuestionHandler)
		r.Put("/{surveyID}/questions/{questionID}", handler.UpdateQuestionHandler)
		r.Delete("/{surveyID}/questions/{questionID}", handler.DeleteQuestionHandler)

		// Responses
		r.Post("/{surveyID}/responses", handler.SubmitResponseHandler)
		r.Get("/{surveyID}/responses", handler.ListResponsesHandler)
	})
}
