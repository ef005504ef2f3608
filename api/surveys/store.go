package surveys

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/Adedunmol/pulso/database"
	"github.com/Adedunmol/pulso/survey"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type Store interface {
	// Survey Management
	CreateSurvey(ctx context.Context, ownerID string, body CreateSurveyBody) (survey.Survey, error)
	GetSurvey(ctx context.Context, surveyID string) (survey.Survey, error)
	ListSurveysByOwner(ctx context.Context, ownerID string) ([]survey.Survey, error)
	ListPublishedSurveys(ctx context.Context, limit, offset int) ([]survey.Survey, error)
	UpdateSurvey(ctx context.Context, surveyID string, body UpdateSurveyBody) (survey.Survey, error)
	DeleteSurvey(ctx context.Context, surveyID string) error
	PublishSurvey(ctx context.Context, surveyID string, value *int, unit survey.DurationUnit, expiresAt *time.Time) (survey.Survey, error)
	UnpublishSurvey(ctx context.Context, surveyID string) (survey.Survey, error)

	// Question Management
	CreateQuestion(ctx context.Context, q survey.Question) (survey.Question, error)
	UpdateQuestion(ctx context.Context, questionID string, q survey.Question) (survey.Question, error)
	DeleteQuestion(ctx context.Context, questionID string) error

	// Responses
	SubmitResponse(ctx context.Context, r survey.Response) (survey.Response, error)
	FetchSurvey(ctx context.Context, surveyID string) (survey.Survey, error)
	FetchResponses(ctx context.Context, surveyID string) ([]survey.Response, error)
	CountResponses(ctx context.Context, surveyID string) (int64, error)

	OwnerEmail(ctx context.Context, ownerID string) (string, error)
}

const UniqueViolationCode = "23505"

type Repository struct {
	db         database.DBTX
	transactor database.Transactor
}

func NewSurveyStore(db database.DBTX, transactor database.Transactor) *Repository {
	return &Repository{db: db, transactor: transactor}
}

// queries binds to the transaction carried by ctx, if any.
func (r *Repository) queries(ctx context.Context) *database.Queries {
	return database.New(database.Executor(ctx, r.db))
}

// ==================== Survey Management ====================

func (r *Repository) CreateSurvey(ctx context.Context, ownerID string, body CreateSurveyBody) (survey.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	owner, err := parseID(ownerID)
	if err != nil {
		return survey.Survey{}, custom_errors.ErrUnauthorized
	}

	row, err := r.queries(ctx).CreateSurvey(ctx, database.CreateSurveyParams{
		ID:          uuid.New(),
		Title:       body.Title,
		Description: body.Description,
		CreatedBy:   owner,
	})
	if err != nil {
		return survey.Survey{}, fmt.Errorf("error creating survey: %w", err)
	}

	return toSurvey(row, nil)
}

func (r *Repository) GetSurvey(ctx context.Context, surveyID string) (survey.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(surveyID)
	if err != nil {
		return survey.Survey{}, custom_errors.ErrNotFound
	}

	q := r.queries(ctx)

	row, err := q.GetSurvey(ctx, id)
	if err != nil {
		return survey.Survey{}, notFound("error getting survey", err)
	}

	questions, err := q.ListQuestionsBySurvey(ctx, id)
	if err != nil {
		return survey.Survey{}, fmt.Errorf("error getting survey questions: %w", err)
	}

	return toSurvey(row, questions)
}

func (r *Repository) ListSurveysByOwner(ctx context.Context, ownerID string) ([]survey.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	owner, err := parseID(ownerID)
	if err != nil {
		return []survey.Survey{}, nil
	}

	rows, err := r.queries(ctx).ListSurveysByCreator(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing surveys: %w", err)
	}

	return toSurveys(rows)
}

func (r *Repository) ListPublishedSurveys(ctx context.Context, limit, offset int) ([]survey.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.queries(ctx).ListPublishedSurveys(ctx, database.ListPublishedSurveysParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("error listing published surveys: %w", err)
	}

	return toSurveys(rows)
}

func (r *Repository) UpdateSurvey(ctx context.Context, surveyID string, body UpdateSurveyBody) (survey.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(surveyID)
	if err != nil {
		return survey.Survey{}, custom_errors.ErrNotFound
	}

	row, err := r.queries(ctx).UpdateSurvey(ctx, database.UpdateSurveyParams{
		ID:          id,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		return survey.Survey{}, notFound("error updating survey", err)
	}

	return toSurvey(row, nil)
}

func (r *Repository) DeleteSurvey(ctx context.Context, surveyID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(surveyID)
	if err != nil {
		return custom_errors.ErrNotFound
	}

	deleted, err := r.queries(ctx).DeleteSurvey(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting survey: %w", err)
	}
	if deleted == 0 {
		return custom_errors.ErrNotFound
	}

	return nil
}

func (r *Repository) PublishSurvey(ctx context.Context, surveyID string, value *int, unit survey.DurationUnit, expiresAt *time.Time) (survey.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(surveyID)
	if err != nil {
		return survey.Survey{}, custom_errors.ErrNotFound
	}

	if unit == "" {
		unit = survey.DurationNone
	}

	params := database.PublishSurveyParams{
		ID:           id,
		DurationUnit: string(unit),
	}
	if value != nil {
		params.DurationValue = pgtype.Int4{Int32: int32(*value), Valid: true}
	}
	if expiresAt != nil {
		params.ExpiresAt = pgtype.Timestamptz{Time: *expiresAt, Valid: true}
	}

	row, err := r.queries(ctx).PublishSurvey(ctx, params)
	if err != nil {
		return survey.Survey{}, notFound("error publishing survey", err)
	}

	return toSurvey(row, nil)
}

func (r *Repository) UnpublishSurvey(ctx context.Context, surveyID string) (survey.Survey, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(surveyID)
	if err != nil {
		return survey.Survey{}, custom_errors.ErrNotFound
	}

	row, err := r.queries(ctx).UnpublishSurvey(ctx, id)
	if err != nil {
		return survey.Survey{}, notFound("error unpublishing survey", err)
	}

	return toSurvey(row, nil)
}

// ==================== Question Management ====================

// CreateQuestion inserts q unless the survey already holds the maximum number
// of questions. The count and the insert share a transaction.
func (r *Repository) CreateQuestion(ctx context.Context, q survey.Question) (survey.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	surveyID, err := parseID(q.SurveyID)
	if err != nil {
		return survey.Question{}, custom_errors.ErrNotFound
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return survey.Question{}, fmt.Errorf("error marshaling options: %w", err)
	}

	var created database.Question
	err = r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		queries := r.queries(ctx)

		count, err := queries.CountQuestionsBySurvey(ctx, surveyID)
		if err != nil {
			return fmt.Errorf("error counting questions: %w", err)
		}
		if count >= survey.MaxQuestionsPerSurvey {
			return custom_errors.ErrTooManyQuestions
		}

		created, err = queries.CreateQuestion(ctx, database.CreateQuestionParams{
			ID:         uuid.New(),
			SurveyID:   surveyID,
			Title:      q.Title,
			Type:       survey.StorageToken(q.Type),
			Options:    options,
			Required:   q.Required,
			OrderIndex: int32(q.Order),
			ImageUrl:   pgtype.Text{String: q.ImageURL, Valid: q.ImageURL != ""},
		})
		if err != nil {
			return fmt.Errorf("error creating question: %w", err)
		}
		return nil
	})
	if err != nil {
		return survey.Question{}, err
	}

	return toQuestion(created)
}

func (r *Repository) UpdateQuestion(ctx context.Context, questionID string, q survey.Question) (survey.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(questionID)
	if err != nil {
		return survey.Question{}, custom_errors.ErrNotFound
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return survey.Question{}, fmt.Errorf("error marshaling options: %w", err)
	}

	row, err := r.queries(ctx).UpdateQuestion(ctx, database.UpdateQuestionParams{
		ID:         id,
		Title:      q.Title,
		Type:       survey.StorageToken(q.Type),
		Options:    options,
		Required:   q.Required,
		OrderIndex: int32(q.Order),
		ImageUrl:   pgtype.Text{String: q.ImageURL, Valid: q.ImageURL != ""},
	})
	if err != nil {
		return survey.Question{}, notFound("error updating question", err)
	}

	return toQuestion(row)
}

func (r *Repository) DeleteQuestion(ctx context.Context, questionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(questionID)
	if err != nil {
		return custom_errors.ErrNotFound
	}

	deleted, err := r.queries(ctx).DeleteQuestion(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if deleted == 0 {
		return custom_errors.ErrNotFound
	}

	return nil
}

// ==================== Responses ====================

func (r *Repository) SubmitResponse(ctx context.Context, resp survey.Response) (survey.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	surveyID, err := parseID(resp.SurveyID)
	if err != nil {
		return survey.Response{}, custom_errors.ErrNotFound
	}

	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return survey.Response{}, fmt.Errorf("error marshaling answers: %w", err)
	}

	row, err := r.queries(ctx).CreateResponse(ctx, database.CreateResponseParams{
		ID:         uuid.New(),
		SurveyID:   surveyID,
		Respondent: resp.RespondentID,
		Answers:    answers,
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolationCode {
			return survey.Response{}, custom_errors.ErrAlreadyResponded
		}
		return survey.Response{}, fmt.Errorf("error saving response: %w", err)
	}

	return toResponse(row)
}

// FetchSurvey and FetchResponses make the repository a results source.
func (r *Repository) FetchSurvey(ctx context.Context, surveyID string) (survey.Survey, error) {
	return r.GetSurvey(ctx, surveyID)
}

func (r *Repository) FetchResponses(ctx context.Context, surveyID string) ([]survey.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(surveyID)
	if err != nil {
		return nil, custom_errors.ErrNotFound
	}

	rows, err := r.queries(ctx).ListResponsesBySurvey(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting responses: %w", err)
	}

	out := make([]survey.Response, 0, len(rows))
	for _, row := range rows {
		resp, err := toResponse(row)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (r *Repository) CountResponses(ctx context.Context, surveyID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(surveyID)
	if err != nil {
		return 0, custom_errors.ErrNotFound
	}

	count, err := r.queries(ctx).CountResponsesBySurvey(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("error counting responses: %w", err)
	}
	return count, nil
}

func (r *Repository) OwnerEmail(ctx context.Context, ownerID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := parseID(ownerID)
	if err != nil {
		return "", custom_errors.ErrNotFound
	}

	user, err := r.queries(ctx).GetUserByID(ctx, id)
	if err != nil {
		return "", notFound("error getting survey owner", err)
	}
	return user.Email, nil
}

// ==================== Mapping ====================

func parseID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return custom_errors.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toSurveys(rows []database.Survey) ([]survey.Survey, error) {
	out := make([]survey.Survey, 0, len(rows))
	for _, row := range rows {
		s, err := toSurvey(row, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func toSurvey(row database.Survey, questions []database.Question) (survey.Survey, error) {
	s := survey.Survey{
		ID:           row.ID.String(),
		Title:        row.Title,
		Description:  row.Description,
		CreatedBy:    row.CreatedBy.String(),
		IsPublished:  row.IsPublished,
		DurationUnit: survey.DurationUnit(row.DurationUnit),
		ExpiresAt:    timePtr(row.ExpiresAt),
		Questions:    make([]survey.Question, 0, len(questions)),
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
	if row.DurationValue.Valid {
		v := int(row.DurationValue.Int32)
		s.DurationValue = &v
	}

	for _, qrow := range questions {
		q, err := toQuestion(qrow)
		if err != nil {
			return survey.Survey{}, err
		}
		s.Questions = append(s.Questions, q)
	}
	return s, nil
}

func toQuestion(row database.Question) (survey.Question, error) {
	options := []string{}
	if len(row.Options) > 0 {
		if err := json.Unmarshal(row.Options, &options); err != nil {
			return survey.Question{}, fmt.Errorf("error decoding options of question %s: %w", row.ID, err)
		}
	}

	return survey.Question{
		ID:       row.ID.String(),
		SurveyID: row.SurveyID.String(),
		Title:    row.Title,
		Type:     survey.NormalizeType(row.Type),
		Options:  options,
		Required: row.Required,
		Order:    int(row.OrderIndex),
		ImageURL: row.ImageUrl.String,
	}, nil
}

func toResponse(row database.Response) (survey.Response, error) {
	answers := []survey.Answer{}
	if len(row.Answers) > 0 {
		if err := json.Unmarshal(row.Answers, &answers); err != nil {
			return survey.Response{}, fmt.Errorf("error decoding answers of response %s: %w", row.ID, err)
		}
	}

	return survey.Response{
		ID:           row.ID.String(),
		SurveyID:     row.SurveyID.String(),
		RespondentID: row.Respondent,
		Answers:      answers,
		CompletedAt:  row.CompletedAt.Time,
	}, nil
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
