package mailer

import (
	"encoding/json"
	"fmt"

	"travelapi/src/config"
	"travelapi/src/lib"
	"travelapi/src/types"
)

// Transport delivers a serialized email message to the queue. The
// default routes to Kafka in local env and SQS otherwise; tests swap
// it out with NewTransport.
type Transport func(queue string, body string) error

var transport Transport

func NewTransport(t Transport) {
	transport = t
}

func defaultTransport(queue string, body string) error {
	if config.Get().APIEnv == "local" {
		var payload types.JSONB
		if err := json.Unmarshal([]byte(body), &payload); err != nil {
			return err
		}
		if err := lib.KafkaProduceMessage("emails", queue, payload); err != nil {
			return fmt.Errorf("error sending message to queue: %s", err.Error())
		}
		return nil
	}
	if err := lib.SQSProduceMessage(queue, body); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}

// NewMailerMessage enqueues an email for background delivery. The
// request returns before anything is sent; delivery failures stay in
// the worker.
func NewMailerMessage(input *lib.SendMailInput) error {
	cfg := config.Get()
	emailBody := &types.JSONB{
		"from":      input.From,
		"from-name": input.FromName,
		"to":        input.To,
		"body":      input.Body,
		"html":      input.Html,
		"subject":   input.Subject,
	}
	body, err := json.Marshal(&emailBody)
	if err != nil {
		return err
	}
	t := transport
	if t == nil {
		t = defaultTransport
	}
	return t(cfg.EmailQueue, string(body))
}
