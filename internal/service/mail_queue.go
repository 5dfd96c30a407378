package service

import (
	"context"
	"encoding/json"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// MailTopicName is the in-process queue topic for outgoing email.
const MailTopicName = "commerce.mail"

// IMailQueue decouples commerce flows from SMTP latency. Enqueue never
// blocks on delivery; the worker drains the queue.
type IMailQueue interface {
	Enqueue(ctx context.Context, msg dto.EmailMessage)
}

type mailQueue struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewMailQueue(pubSub *gochannel.GoChannel, log logger.ILogger) IMailQueue {
	return &mailQueue{
		pubSub: pubSub,
		logger: log,
	}
}

func (q *mailQueue) Enqueue(ctx context.Context, msg dto.EmailMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		q.logger.Error("MAIL_QUEUE", "Failed to marshal email message", map[string]interface{}{"error": err.Error()})
		return
	}

	wmMsg := message.NewMessage(watermill.NewUUID(), payload)
	if err := q.pubSub.Publish(MailTopicName, wmMsg); err != nil {
		// Mail is best effort; commerce state is already committed.
		q.logger.Error("MAIL_QUEUE", "Failed to enqueue email", map[string]interface{}{
			"kind":  msg.Kind,
			"error": err.Error(),
		})
	}
}
