package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/Adedunmol/pulso/api/jsonutil"
	"github.com/Adedunmol/pulso/client"
	"github.com/Adedunmol/pulso/results"
	"github.com/Adedunmol/pulso/survey"
	"github.com/go-chi/chi/v5"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/surveys/my-surveys/{surveyID}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			jsonutil.WriteErrorResponse(w, custom_errors.ErrUnauthorized)
			return
		}
		switch chi.URLParam(r, "surveyID") {
		case "survey-1":
			jsonutil.WriteJSONResponse(w, jsonutil.Response{
				Status: "success",
				Data: survey.Survey{
					ID:        "survey-1",
					Title:     "Café",
					Questions: []survey.Question{{ID: "q1", Title: "Color", Type: survey.Checkbox}},
				},
			}, http.StatusOK)
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		default:
			jsonutil.WriteErrorResponse(w, custom_errors.ErrNotFound)
		}
	})
	r.Get("/surveys/{surveyID}/responses", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "surveyID") == "locked" {
			jsonutil.WriteErrorResponse(w, custom_errors.ErrForbidden)
			return
		}
		jsonutil.WriteJSONResponse(w, jsonutil.Response{
			Status: "success",
			Data: []survey.Response{
				{ID: "r1", RespondentID: "a@example.com", Answers: []survey.Answer{{QuestionID: "q1", Value: []string{"x", "y"}}}},
			},
		}, http.StatusOK)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestFetchSurvey(t *testing.T) {
	server := newServer(t)
	c := client.New(server.URL+"/", "secret", nil)

	t.Run("decodes the envelope", func(t *testing.T) {
		s, err := c.FetchSurvey(context.Background(), "survey-1")
		if err != nil {
			t.Fatalf("FetchSurvey: %v", err)
		}
		if s.Title != "Café" || len(s.Questions) != 1 || s.Questions[0].Type != survey.Checkbox {
			t.Errorf("survey = %+v", s)
		}
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		_, err := c.FetchSurvey(context.Background(), "missing")
		if !errors.Is(err, custom_errors.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("non json failure", func(t *testing.T) {
		_, err := c.FetchSurvey(context.Background(), "broken")
		var fe *results.FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("err = %v, want *results.FetchError", err)
		}
		if fe.Status != http.StatusBadGateway || fe.Message != "" {
			t.Errorf("fetch error = %+v", fe)
		}
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := client.New(server.URL, "wrong", nil).FetchSurvey(context.Background(), "survey-1")
		if got := results.ErrorMessage(err); got != custom_errors.ErrUnauthorized.Error() {
			t.Errorf("message = %q, want %q", got, custom_errors.ErrUnauthorized.Error())
		}
	})
}

func TestFetchResponses(t *testing.T) {
	server := newServer(t)
	c := client.New(server.URL, "secret", nil)

	responses, err := c.FetchResponses(context.Background(), "survey-1")
	if err != nil {
		t.Fatalf("FetchResponses: %v", err)
	}
	if len(responses) != 1 || len(responses[0].Answers[0].Value) != 2 {
		t.Errorf("responses = %+v", responses)
	}

	_, err = c.FetchResponses(context.Background(), "locked")
	if got := results.ErrorMessage(err); got != custom_errors.ErrForbidden.Error() {
		t.Errorf("message = %q, want %q", got, custom_errors.ErrForbidden.Error())
	}
}

func TestClientAsSessionSource(t *testing.T) {
	server := newServer(t)
	session := results.NewSession(client.New(server.URL, "secret", nil))
	defer session.Close()

	if err := session.Load(context.Background(), "survey-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := session.Snapshot()
	if snap.State != results.Ready || len(snap.Results) != 1 || snap.Results[0].TotalResponses != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
}
