package kafka

import (
	"context"
	"log/slog"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/internal/core/port"
	"github.com/groveshop/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.OrderEventsProducer = (*OrderPlacedProducer)(nil)

// An OrderPlacedProducer publishes accepted orders, one record per order
// keyed by the order id.
type OrderPlacedProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewOrderPlacedProducer(
	opts ...ProducerOpt,
) (OrderPlacedProducer, error) {
	const op = "NewOrderPlacedProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrderPlacedProducer{}, opErr(err, op)
		}
	}

	opPrefix := "OrderPlacedProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return OrderPlacedProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p OrderPlacedProducer) Close() {
	p.producer.close()
}

func (p OrderPlacedProducer) ProduceOrderPlaced(
	ctx context.Context, v domain.PlacedOrder,
) error {
	const op = "ProduceOrderPlaced"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p OrderPlacedProducer) createRecord(
	v domain.PlacedOrder,
) (kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	return kgo.Record{Key: []byte(s.OrderID), Value: b}, nil
}

func (OrderPlacedProducer) toSchema(
	v domain.PlacedOrder,
) schema.OrderPlacedV1 {
	return orderPlacedToSchemaV1(v)
}

// A producer is used for composition.
//
// Producing records to the broker and closing the underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}
