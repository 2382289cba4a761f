package consumers

import (
	"context"
	"log/slog"

	"flightdesk/internal/config"
	"flightdesk/internal/messaging"
	"flightdesk/internal/models"

	"github.com/nats-io/stan.go"
)

const queueGroup = "activity"

type subscriber interface {
	SubscribeQueue(subject, queue string, handler stan.MsgHandler) (stan.Subscription, error)
	Close() error
}

type ConsumerService struct {
	nats     subscriber
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	return &ConsumerService{
		nats:     natsClient,
		handlers: NewHandlers(),
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	for _, subject := range models.ActivitySubjects {
		if _, err := cs.nats.SubscribeQueue(subject, queueGroup, cs.handlers.HandleMsg); err != nil {
			return err
		}
	}

	slog.Info("All consumers started successfully", "subjects", len(models.ActivitySubjects))
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			return err
		}
	}
	return nil
}
