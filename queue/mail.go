package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	mail "github.com/Adedunmol/pulso/api/email"
	"github.com/hibiken/asynq"
)

const TypeEmailDelivery = "mail:deliver"

type EmailDeliveryPayload struct {
	Name     string
	Template string
	Subject  string
	Email    string
	Data     any
}

func (e *EmailDeliveryPayload) Process() (*asynq.Task, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal email delivery payload: %w", err)
	}

	return asynq.NewTask(TypeEmailDelivery, payload, asynq.MaxRetry(3)), nil
}

func (e *EmailDeliveryPayload) ProcessorName() string {
	return e.Name
}

func (w *Worker) HandleEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload EmailDeliveryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("error decoding email delivery payload: %w", asynq.SkipRetry)
	}
	log.Printf("sending mail to user: %s", payload.Email)

	emailData := mail.Email{
		Subject:  payload.Subject,
		ToAddr:   payload.Email,
		Template: payload.Template,
		Vars:     payload.Data,
	}

	if err := w.mailer.SendTemplateEmail(emailData); err != nil {
		err = fmt.Errorf("error sending email to user: %w", err)
		log.Println(err)
		return err
	}

	log.Printf("email has been sent successfully: %s", payload.Email)
	return nil
}
