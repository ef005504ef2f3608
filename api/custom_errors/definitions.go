package custom_errors

import "errors"

var (
	ErrConflict           = errors.New("record already exists")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("invalid credentials")
	ErrForbidden          = errors.New("permission denied")
	ErrInternalServer     = errors.New("internal server error")
	ErrSurveyExpired      = errors.New("survey has expired")
	ErrSurveyNotPublished = errors.New("survey is not published")
	ErrAlreadyResponded   = errors.New("you have already responded to this survey")
	ErrTooManyQuestions   = errors.New("survey has reached the maximum number of questions")
)
