package surveys

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/Adedunmol/pulso/api/jsonutil"
	"github.com/Adedunmol/pulso/api/middlewares"
	"github.com/Adedunmol/pulso/queue"
	"github.com/Adedunmol/pulso/survey"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ResultsCache drops cached results for a survey once a new response lands.
type ResultsCache interface {
	Invalidate(ctx context.Context, surveyID string) error
}

type SurveyGetter interface {
	GetSurvey(ctx context.Context, surveyID string) (survey.Survey, error)
}

type Handler struct {
	Store     Store
	Queue     queue.Queue
	Cache     ResultsCache
	PublicURL string
	Now       func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// OwnedSurvey loads surveyID and checks that the authenticated caller created
// it. It fails with ErrUnauthorized, ErrNotFound or ErrForbidden.
func OwnedSurvey(ctx context.Context, store SurveyGetter, surveyID string) (survey.Survey, error) {
	claims, ok := middlewares.ClaimsFromContext(ctx)
	if !ok {
		return survey.Survey{}, custom_errors.ErrUnauthorized
	}

	s, err := store.GetSurvey(ctx, surveyID)
	if err != nil {
		return survey.Survey{}, err
	}

	if !s.Owner(claims.UserID) {
		return survey.Survey{}, custom_errors.ErrForbidden
	}
	return s, nil
}

// ==================== Survey Management Handlers ====================

func (h *Handler) ListPublishedSurveysHandler(responseWriter http.ResponseWriter, request *http.Request) {
	limit, offset := pagination(request)

	list, err := h.Store.ListPublishedSurveys(request.Context(), limit, offset)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	now := h.now()
	views := make([]SurveyView, 0, len(list))
	for _, s := range list {
		views = append(views, NewSurveyView(s, now))
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "surveys retrieved successfully",
		Data:    views,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) GetSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	s, err := h.Store.GetSurvey(request.Context(), chi.URLParam(request, "surveyID"))
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	if !s.IsPublished {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrNotFound)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey retrieved successfully",
		Data:    NewSurveyView(s, h.now()),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// GetUserSurveyHandler returns one of the caller's surveys whether or not it
// is published.
func (h *Handler) GetUserSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	s, err := OwnedSurvey(request.Context(), h.Store, chi.URLParam(request, "surveyID"))
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey retrieved successfully",
		Data:    NewSurveyView(s, h.now()),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) ListUserSurveysHandler(responseWriter http.ResponseWriter, request *http.Request) {
	claims, ok := middlewares.ClaimsFromContext(request.Context())
	if !ok {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrUnauthorized)
		return
	}

	list, err := h.Store.ListSurveysByOwner(request.Context(), claims.UserID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	now := h.now()
	views := make([]SurveyView, 0, len(list))
	for _, s := range list {
		views = append(views, NewSurveyView(s, now))
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "surveys retrieved successfully",
		Data:    views,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) CreateSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	claims, ok := middlewares.ClaimsFromContext(request.Context())
	if !ok {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrUnauthorized)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[CreateSurveyBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	s, err := h.Store.CreateSurvey(request.Context(), claims.UserID, data)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey created successfully",
		Data:    NewSurveyView(s, h.now()),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) UpdateSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	if _, err := OwnedSurvey(ctx, h.Store, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[UpdateSurveyBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	s, err := h.Store.UpdateSurvey(ctx, surveyID, data)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey updated successfully",
		Data:    NewSurveyView(s, h.now()),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	if _, err := OwnedSurvey(ctx, h.Store, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	if err := h.Store.DeleteSurvey(ctx, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	h.invalidate(ctx, surveyID)

	response := jsonutil.Response{Status: "success", Message: "survey deleted successfully"}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// PublishSurveyHandler opens the survey for responses. A duration other than
// none fixes expires_at relative to now.
func (h *Handler) PublishSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	current, err := OwnedSurvey(ctx, h.Store, surveyID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	if len(current.Questions) == 0 {
		response := jsonutil.Response{Status: "error", Message: "a survey needs at least one question to be published"}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[PublishSurveyBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	unit := survey.DurationUnit(data.DurationUnit)
	expiresAt, err := survey.ComputeExpiresAt(h.now(), data.DurationValue, unit)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	value := data.DurationValue
	if expiresAt == nil {
		value = nil
	}

	s, err := h.Store.PublishSurvey(ctx, surveyID, value, unit, expiresAt)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey published successfully",
		Data:    NewSurveyView(s, h.now()),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) UnpublishSurveyHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	if _, err := OwnedSurvey(ctx, h.Store, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	s, err := h.Store.UnpublishSurvey(ctx, surveyID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "survey unpublished successfully",
		Data:    NewSurveyView(s, h.now()),
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Question Management Handlers ====================

func (h *Handler) CreateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	if _, err := OwnedSurvey(ctx, h.Store, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	q, ok := decodeQuestion(responseWriter, request, surveyID)
	if !ok {
		return
	}

	created, err := h.Store.CreateQuestion(ctx, q)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "question created successfully",
		Data:    created,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) UpdateQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")
	questionID := chi.URLParam(request, "questionID")

	s, err := OwnedSurvey(ctx, h.Store, surveyID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	if !hasQuestion(s, questionID) {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrNotFound)
		return
	}

	q, ok := decodeQuestion(responseWriter, request, surveyID)
	if !ok {
		return
	}

	updated, err := h.Store.UpdateQuestion(ctx, questionID, q)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	h.invalidate(ctx, surveyID)

	response := jsonutil.Response{
		Status:  "success",
		Message: "question updated successfully",
		Data:    updated,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

func (h *Handler) DeleteQuestionHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")
	questionID := chi.URLParam(request, "questionID")

	s, err := OwnedSurvey(ctx, h.Store, surveyID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	if !hasQuestion(s, questionID) {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrNotFound)
		return
	}

	if err := h.Store.DeleteQuestion(ctx, questionID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}
	h.invalidate(ctx, surveyID)

	response := jsonutil.Response{Status: "success", Message: "question deleted successfully"}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Response Handlers ====================

// SubmitResponseHandler stores the caller's answers. Each respondent answers
// a survey once, and only while it is published and not expired.
func (h *Handler) SubmitResponseHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	claims, ok := middlewares.ClaimsFromContext(ctx)
	if !ok {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrUnauthorized)
		return
	}

	s, err := h.Store.GetSurvey(ctx, surveyID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	if !s.IsPublished {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrSurveyNotPublished)
		return
	}
	if survey.IsExpiredAt(s.ExpiresAt, h.now()) {
		jsonutil.WriteErrorResponse(responseWriter, custom_errors.ErrSurveyExpired)
		return
	}

	data, err := jsonutil.UnmarshalJsonResponse[SubmitResponseBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	answers := data.toAnswers()
	if err := survey.ValidateAnswers(s, answers); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return
	}

	saved, err := h.Store.SubmitResponse(ctx, survey.Response{
		SurveyID:     s.ID,
		RespondentID: claims.Email,
		Answers:      answers,
	})
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	h.invalidate(ctx, s.ID)
	h.notifyOwner(ctx, s, claims.Email)

	response := jsonutil.Response{
		Status:  "success",
		Message: "response submitted successfully",
		Data:    saved,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusCreated)
}

func (h *Handler) ListResponsesHandler(responseWriter http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	surveyID := chi.URLParam(request, "surveyID")

	if _, err := OwnedSurvey(ctx, h.Store, surveyID); err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	responses, err := h.Store.FetchResponses(ctx, surveyID)
	if err != nil {
		jsonutil.WriteErrorResponse(responseWriter, err)
		return
	}

	response := jsonutil.Response{
		Status:  "success",
		Message: "responses retrieved successfully",
		Data:    responses,
	}
	jsonutil.WriteJSONResponse(responseWriter, response, http.StatusOK)
}

// ==================== Helpers ====================

func (h *Handler) invalidate(ctx context.Context, surveyID string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Invalidate(ctx, surveyID); err != nil {
		log.Printf("error invalidating cached results for survey %s: %s", surveyID, err)
	}
}

func (h *Handler) notifyOwner(ctx context.Context, s survey.Survey, respondent string) {
	if h.Queue == nil {
		return
	}

	ownerEmail, err := h.Store.OwnerEmail(ctx, s.CreatedBy)
	if err != nil {
		log.Printf("error getting owner of survey %s: %s", s.ID, err)
		return
	}

	total, err := h.Store.CountResponses(ctx, s.ID)
	if err != nil {
		log.Printf("error counting responses of survey %s: %s", s.ID, err)
	}

	err = h.Queue.Enqueue(&queue.ResponseReceivedPayload{
		SurveyID:       s.ID,
		SurveyTitle:    s.Title,
		OwnerEmail:     ownerEmail,
		Respondent:     respondent,
		TotalResponses: total,
		ResultsURL:     fmt.Sprintf("%s/surveys/%s/results", h.PublicURL, s.ID),
	})
	if err != nil {
		log.Printf("error enqueuing response notification: %s", err)
	}
}

func decodeQuestion(responseWriter http.ResponseWriter, request *http.Request, surveyID string) (survey.Question, bool) {
	data, err := jsonutil.UnmarshalJsonResponse[QuestionBody](request)
	if err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return survey.Question{}, false
	}

	q := data.toQuestion(surveyID)
	if err := survey.ValidateQuestion(q); err != nil {
		response := jsonutil.Response{Status: "error", Message: err.Error()}
		jsonutil.WriteJSONResponse(responseWriter, response, http.StatusBadRequest)
		return survey.Question{}, false
	}

	return q, true
}

func hasQuestion(s survey.Survey, questionID string) bool {
	for _, q := range s.Questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

func pagination(request *http.Request) (int, int) {
	q := request.URL.Query()

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
