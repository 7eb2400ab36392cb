package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/pricecompare/internal/adapter/metrics"
	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/port"
	"github.com/niksmo/pricecompare/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.SearchEventsProducer = (*SearchEventsProducer)(nil)

type SearchEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewSearchEventsProducer(
	opts ...ProducerOpt,
) (SearchEventsProducer, error) {
	const op = "NewSearchEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: too few options", op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return SearchEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return SearchEventsProducer{options.cl, options.encoder}, nil
}

func (p SearchEventsProducer) Close() {
	const op = "SearchEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p SearchEventsProducer) ProduceSearchEvent(
	ctx context.Context, evt domain.SearchEvent,
) error {
	const op = "SearchEventsProducer.ProduceSearchEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		metrics.SearchEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.produce(ctx, r); err != nil {
		metrics.SearchEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.SearchEventsTotal.WithLabelValues("ok").Inc()
	return nil
}

func (p SearchEventsProducer) createRecord(
	evt domain.SearchEvent,
) (*kgo.Record, error) {
	const op = "SearchEventsProducer.createRecord"

	s := p.toSchema(evt)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &kgo.Record{Key: []byte(normalizeQuery(s.Query)), Value: v}, nil
}

func (p SearchEventsProducer) produce(
	ctx context.Context, r *kgo.Record,
) error {
	const op = "SearchEventsProducer.produce"
	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p SearchEventsProducer) toSchema(
	evt domain.SearchEvent,
) (s schema.SearchEventV1) {
	s.ID = evt.ID
	s.Query = evt.Query
	s.TotalResults = int64(evt.TotalResults)
	s.ExecutionTimeMS = evt.ExecutionTime.Milliseconds()
	s.PlatformsUsed = evt.PlatformsUsed
	if s.PlatformsUsed == nil {
		s.PlatformsUsed = []string{}
	}
	s.Timestamp = evt.Timestamp
	return s
}
