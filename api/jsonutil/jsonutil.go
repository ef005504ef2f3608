package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const maxBodyBytes = 1 << 20

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	// report json field names instead of struct field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func WriteJSONResponse(responseWriter http.ResponseWriter, data any, statusCode int) {
	responseWriter.Header().Set("Content-Type", "application/json")
	responseWriter.WriteHeader(statusCode)

	if err := json.NewEncoder(responseWriter).Encode(data); err != nil {
		log.Printf("error encoding response: %s", err)
	}
}

// UnmarshalJsonResponse decodes the request body into T and validates it
// against T's validate tags.
func UnmarshalJsonResponse[T any](request *http.Request) (T, error) {
	var data T

	if request.Body == nil {
		return data, errors.New("request body is empty")
	}

	decoder := json.NewDecoder(io.LimitReader(request.Body, maxBodyBytes))
	if err := decoder.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return data, errors.New("request body is empty")
		}
		return data, fmt.Errorf("error decoding request body: %w", err)
	}

	if err := validate.Struct(data); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return data, nil
		}
		return data, validationMessage(err)
	}

	return data, nil
}

func validationMessage(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required", "notblank":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "eqfield":
			messages = append(messages, fmt.Sprintf("%s must match %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}

// WriteErrorResponse writes err with the status its sentinel maps to.
// Unmapped errors are logged and hidden behind a generic message.
func WriteErrorResponse(responseWriter http.ResponseWriter, err error) {
	status := custom_errors.StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %s", err)
		message = custom_errors.ErrInternalServer.Error()
	}

	WriteJSONResponse(responseWriter, Response{Status: "error", Message: message}, status)
}
