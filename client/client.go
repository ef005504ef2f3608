// Package client reads surveys and their responses from a running Pulso API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Adedunmol/pulso/api/custom_errors"
	"github.com/Adedunmol/pulso/results"
	"github.com/Adedunmol/pulso/survey"
)

const defaultTimeout = 15 * time.Second

// envelope mirrors jsonutil.Response with the data left raw.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client is a results.Source over HTTP. It authenticates as the survey owner
// with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *Client) FetchSurvey(ctx context.Context, surveyID string) (survey.Survey, error) {
	var s survey.Survey
	if err := c.get(ctx, "fetch survey", "/surveys/my-surveys/"+surveyID, &s); err != nil {
		return survey.Survey{}, err
	}
	return s, nil
}

func (c *Client) FetchResponses(ctx context.Context, surveyID string) ([]survey.Response, error) {
	responses := []survey.Response{}
	if err := c.get(ctx, "fetch responses", "/surveys/"+surveyID+"/responses", &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// get decodes the data field of the envelope at path into out. A 404 maps to
// custom_errors.ErrNotFound and every other failure to a *results.FetchError.
func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &results.FetchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &results.FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &results.FetchError{Op: op, Status: resp.StatusCode, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode == http.StatusNotFound {
		return &results.FetchError{Op: op, Status: resp.StatusCode, Message: env.Message, Err: custom_errors.ErrNotFound}
	}
	if resp.StatusCode != http.StatusOK {
		return &results.FetchError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: env.Message,
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	if decodeErr != nil {
		return &results.FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("error decoding response: %w", decodeErr)}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &results.FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("error decoding %s: %w", op, err)}
	}
	return nil
}
