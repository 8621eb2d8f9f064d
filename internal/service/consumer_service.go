package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"socratic-notes-be/internal/dto"
	"socratic-notes-be/internal/entity"
	"socratic-notes-be/internal/repository/contract"
	"socratic-notes-be/pkg/events"
	pktNats "socratic-notes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains dialogue activity messages off the in-process bus,
// writes the audit row and forwards the event to NATS for other systems.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     contract.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory contract.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishDialogueActivityMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Recording dialogue activity %s for NoteId: %s", payload.Kind, payload.NoteId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	activity := entity.DialogueActivity{
		Id:        uuid.New(),
		NoteId:    payload.NoteId,
		SessionId: payload.SessionId,
		Kind:      payload.Kind,
		Payload:   payload.Payload,
		CreatedAt: time.Now(),
	}

	if err := uow.DialogueActivityRepository().Create(ctx, &activity); err != nil {
		log.Printf("[ERROR] Failed to record dialogue activity: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	// Forward to NATS so external consumers (notifications, analytics) see
	// the same event stream. Best effort.
	if cs.eventPublisher != nil {
		evt := events.NewBaseEvent(payload.Kind, map[string]interface{}{
			"note_id":    payload.NoteId,
			"session_id": payload.SessionId,
			"payload":    payload.Payload,
		})
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to forward %s event to NATS: %v", payload.Kind, err)
		}
	}

	log.Printf("[SUCCESS] Dialogue activity recorded: %s for NoteId: %s", payload.Kind, payload.NoteId)
	msg.Ack()
}
