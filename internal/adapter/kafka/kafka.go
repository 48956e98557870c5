package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/groveshop/storefront/internal/core/domain"
	"github.com/groveshop/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderPlacedToSchemaV1(v domain.PlacedOrder) (s schema.OrderPlacedV1) {
	s.OrderID = v.OrderID
	s.Phone = v.Phone
	s.Email = v.Email
	s.Shipping = v.Shipping
	s.TotalQty = v.Order.TotalQuantity
	s.TotalPrice = v.Order.TotalPrice

	s.Items = make(map[string]schema.OrderItemV1, len(v.Order.Items))
	for name, item := range v.Order.Items {
		s.Items[name] = schema.OrderItemV1{
			Qty:          item.Quantity,
			PricePerUnit: item.UnitPrice,
			Price:        item.LineTotal,
			ImageURL:     item.ImageRef,
		}
	}
	return
}
