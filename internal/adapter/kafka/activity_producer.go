package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	defaultBufferSize = 256
	maxBatchSize      = 64
	flushTimeout      = 3 * time.Second
)

var _ port.ActivityProducer = (*ActivityProducer)(nil)

// An ActivityProducer publishes [domain.ActivityEvent] values in the
// background. Record never blocks: events are dropped when the buffer is full.
type ActivityProducer struct {
	cl       ProducerClient
	encoder  Encoder
	events   chan domain.ActivityEvent
	policy   retry.Policy
	opPrefix string

	closeOnce sync.Once
}

func NewActivityProducer(opts ...ProducerOpt) (*ActivityProducer, error) {
	const op = "NewActivityProducer"

	options := producerOpts{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, opErr(err, op)
		}
	}
	if options.cl == nil || options.encoder == nil {
		return nil, opErr(ErrTooFewOpts, op)
	}

	return &ActivityProducer{
		cl:      options.cl,
		encoder: options.encoder,
		events:  make(chan domain.ActivityEvent, options.bufferSize),
		policy: retry.Policy{
			MaxAttempts: 3,
			Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
			ShouldRetry: isRetriable,
		},
		opPrefix: "ActivityProducer",
	}, nil
}

func (p *ActivityProducer) Record(evt domain.ActivityEvent) {
	const op = "Record"

	select {
	case p.events <- evt:
	default:
		slog.Warn("activity buffer is full, event dropped",
			"op", makeOp(p.opPrefix, op),
			"kind", evt.Kind,
			"sessionID", evt.SessionID,
		)
	}
}

// Run delivers buffered events until ctx is done, then flushes what is left.
func (p *ActivityProducer) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "Run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	log.Info("producer is running")
	for {
		select {
		case <-ctx.Done():
			p.flush(nil)
			log.Info("producer is stopped")
			return
		case evt := <-p.events:
			batch := p.collect(evt)
			if ctx.Err() == nil {
				err := p.produce(ctx, batch)
				if err == nil {
					continue
				}
				if ctx.Err() == nil {
					log.Error("failed to produce activity",
						"err", err, "nEvents", len(batch))
					continue
				}
			}
			// undelivered because of shutdown
			p.flush(batch)
			log.Info("producer is stopped")
			return
		}
	}
}

func (p *ActivityProducer) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	p.closeOnce.Do(func() {
		log.Info("closing producer...")
		p.cl.Close()
		log.Info("producer is closed")
	})
}

func (p *ActivityProducer) collect(first domain.ActivityEvent) []domain.ActivityEvent {
	batch := []domain.ActivityEvent{first}
	for len(batch) < maxBatchSize {
		select {
		case evt := <-p.events:
			batch = append(batch, evt)
		default:
			return batch
		}
	}
	return batch
}

// flush delivers pending and whatever is still buffered within flushTimeout.
func (p *ActivityProducer) flush(pending []domain.ActivityEvent) {
	const op = "flush"
	log := slog.With("op", makeOp(p.opPrefix, op))

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	batch := pending
	for {
		if len(batch) != 0 {
			if err := p.produce(ctx, batch); err != nil {
				log.Error("failed to flush activity",
					"err", err, "nEvents", len(batch))
				return
			}
		}
		select {
		case evt := <-p.events:
			batch = p.collect(evt)
		default:
			return
		}
	}
}

func (p *ActivityProducer) produce(
	ctx context.Context, evts []domain.ActivityEvent,
) error {
	const op = "produce"

	rs, err := p.createRecords(evts)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	err = retry.Do(ctx, p.policy, func() error {
		return p.cl.ProduceSync(ctx, rs...).FirstErr()
	})
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p *ActivityProducer) createRecords(
	evts []domain.ActivityEvent,
) ([]*kgo.Record, error) {
	const op = "createRecords"

	rs := make([]*kgo.Record, 0, len(evts))
	for _, evt := range evts {
		s := activityToSchemaV1(evt)
		b, err := p.encoder.Encode(s)
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		rs = append(rs, &kgo.Record{Key: []byte(s.SessionID), Value: b})
	}
	return rs, nil
}

func activityToSchemaV1(v domain.ActivityEvent) (s schema.ActivityV1) {
	s.ID = v.ID.String()
	s.SessionID = v.SessionID.String()
	s.Kind = string(v.Kind)
	s.ProductID = v.ProductID
	s.Color = v.Color
	s.Quantity = v.Quantity
	s.Query = v.Query
	s.Selected = v.Selected
	s.OccurredAt = v.OccurredAt
	return
}

func isRetriable(err error) bool {
	return kerr.IsRetriable(err) || errors.Is(err, kgo.ErrRecordTimeout)
}
