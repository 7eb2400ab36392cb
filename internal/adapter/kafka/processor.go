package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/pricecompare/internal/core/port"
	"github.com/niksmo/pricecompare/pkg/schema"
)

var _ port.PopularSearchesProcessor = (*PopularSearchesProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A PopularSearchesProcessor counts search events per normalized query
// in its group table.
type PopularSearchesProcessor struct {
	opPrefix string
	proc     processor
}

func NewPopularSearchesProc(
	seedBrokers []string,
	searchEventsStream string,
	group string,
	searchEventSerde Serde,
) (*PopularSearchesProcessor, error) {
	const op = "NewPopularSearchesProc"

	p := PopularSearchesProcessor{opPrefix: "PopularSearchesProcessor"}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(
			goka.Stream(searchEventsStream),
			newSearchEventCodec(searchEventSerde),
			p.processFn,
		),
		goka.Persist(queryCountCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *PopularSearchesProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *PopularSearchesProcessor) Close() {
	p.proc.close()
}

func (p *PopularSearchesProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op), "query", ctx.Key())

	if _, ok := msg.(schema.SearchEventV1); !ok {
		log.Warn("unexpected message type")
		return
	}

	if ctx.Key() == "" {
		return
	}

	c := incrementCount(ctx.Value())
	ctx.SetValue(c)
	log.Debug("search counted", "count", c)
}

func incrementCount(current any) queryCount {
	c, _ := current.(queryCount)
	return c + 1
}
