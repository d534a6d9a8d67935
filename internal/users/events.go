package users

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/cockroachdb/errors"
)

// EventType names a user change.
type EventType string

const (
	EventCreated EventType = "user.created"
	EventUpdated EventType = "user.updated"
	EventDeleted EventType = "user.deleted"
)

// Event describes one change. The password is never part of it.
type Event struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"userId"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Events publishes user changes.
type Events interface {
	Publish(ctx context.Context, ev Event) error
}

// NopEvents drops every event.
type NopEvents struct{}

func (NopEvents) Publish(context.Context, Event) error { return nil }

// SQSAPI is the part of the SQS client the publisher uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, opts ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSEvents sends every event as a JSON message to a queue.
type SQSEvents struct {
	client   SQSAPI
	queueURL string
}

// NewSQSEvents creates a publisher for the queue.
func NewSQSEvents(client SQSAPI, queueURL string) *SQSEvents {
	return &SQSEvents{client: client, queueURL: queueURL}
}

func (p *SQSEvents) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "failed to encode event")
	}

	if _, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {DataType: aws.String("String"), StringValue: aws.String(string(ev.Type))},
		},
	}); err != nil {
		return errors.Wrapf(err, "failed to send %s event", ev.Type)
	}

	return nil
}
