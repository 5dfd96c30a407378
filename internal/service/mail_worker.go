package service

import (
	"context"
	"encoding/json"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IMailWorker interface {
	Consume(ctx context.Context) error
}

type mailWorker struct {
	pubSub *gochannel.GoChannel
	mailer mailer.IEmailService
	logger logger.ILogger
}

func NewMailWorker(pubSub *gochannel.GoChannel, emailService mailer.IEmailService, log logger.ILogger) IMailWorker {
	return &mailWorker{
		pubSub: pubSub,
		mailer: emailService,
		logger: log,
	}
}

func (w *mailWorker) Consume(ctx context.Context) error {
	messages, err := w.pubSub.Subscribe(ctx, MailTopicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			w.processMessage(msg)
		}
	}()

	return nil
}

func (w *mailWorker) processMessage(msg *message.Message) {
	var payload dto.EmailMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		w.logger.Error("MAIL_WORKER", "Failed to unmarshal email message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed, retrying will not help
		return
	}

	var err error
	switch payload.Kind {
	case dto.EmailKindReceipt:
		err = w.mailer.SendReceipt(payload.ToEmail, payload.CourseTitle, payload.ReceiptNumber, payload.Amount)
	case dto.EmailKindBankInstructions:
		err = w.mailer.SendBankTransferInstructions(payload.ToEmail, payload.CourseTitle, payload.OrderId,
			payload.BankName, payload.AccountNumber, payload.AccountHolder, payload.Amount, payload.Deadline)
	case dto.EmailKindRefundCompleted:
		err = w.mailer.SendRefundCompleted(payload.ToEmail, payload.CourseTitle, payload.Amount)
	case dto.EmailKindRefundRejected:
		err = w.mailer.SendRefundRejected(payload.ToEmail, payload.CourseTitle, payload.Reason)
	default:
		w.logger.Warn("MAIL_WORKER", "Unknown email kind", map[string]interface{}{"kind": payload.Kind})
		msg.Ack()
		return
	}

	if err != nil {
		w.logger.Error("MAIL_WORKER", "Failed to send email", map[string]interface{}{
			"kind":  payload.Kind,
			"to":    payload.ToEmail,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
