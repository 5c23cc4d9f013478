package event

import (
	"context"

	"github.com/ecodeclub/examctrl/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
)

type StateEventProducer interface {
	Produce(ctx context.Context, evt PackageStateEvent) error
}

func NewStateEventProducer(q mq.MQ) (StateEventProducer, error) {
	return mqx.NewGeneralProducer[PackageStateEvent](q, StateEventTopic)
}
