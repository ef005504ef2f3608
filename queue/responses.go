package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	mail "github.com/Adedunmol/pulso/api/email"
	"github.com/hibiken/asynq"
)

const TypeResponseReceived = "survey:response_received"

// ResponseReceivedPayload tells a survey owner that someone answered.
type ResponseReceivedPayload struct {
	SurveyID       string
	SurveyTitle    string
	OwnerEmail     string
	Respondent     string
	TotalResponses int64
	ResultsURL     string
}

func (p *ResponseReceivedPayload) Process() (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal response received payload: %w", err)
	}

	return asynq.NewTask(TypeResponseReceived, payload, asynq.MaxRetry(3)), nil
}

func (p *ResponseReceivedPayload) ProcessorName() string {
	return "response_received"
}

func (w *Worker) HandleResponseReceivedTask(ctx context.Context, t *asynq.Task) error {
	var payload ResponseReceivedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("error decoding response received payload: %w", asynq.SkipRetry)
	}

	if payload.OwnerEmail == "" {
		log.Printf("no owner email for survey %s, skipping notification", payload.SurveyID)
		return nil
	}

	err := w.mailer.SendTemplateEmail(mail.Email{
		Subject:  fmt.Sprintf("Nueva respuesta: %s", payload.SurveyTitle),
		ToAddr:   payload.OwnerEmail,
		Template: "response_received",
		Vars:     payload,
	})
	if err != nil {
		err = fmt.Errorf("error notifying owner of survey %s: %w", payload.SurveyID, err)
		log.Println(err)
		return err
	}

	log.Printf("notified owner of survey %s about a new response", payload.SurveyID)
	return nil
}
