package kafka

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/pricecompare/internal/core/domain"
	"github.com/niksmo/pricecompare/internal/core/port"
)

var _ port.PopularSearchesView = (*PopularSearchesView)(nil)

// A PopularSearchesView reads the group table of [PopularSearchesProcessor].
type PopularSearchesView struct {
	gv *goka.View
}

func NewPopularSearchesView(
	seedBrokers []string, group string,
) (*PopularSearchesView, error) {
	const op = "NewPopularSearchesView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		queryCountCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &PopularSearchesView{gv}, nil
}

// Run starts the view recovery in background. Queries fail with
// [ErrViewNotReady] until the table is recovered.
func (v *PopularSearchesView) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	defer wg.Done()
	go v.run(ctx, stopFn)
}

func (v *PopularSearchesView) run(
	ctx context.Context, stopFn context.CancelFunc,
) {
	const op = "PopularSearchesView.run"
	log := slog.With("op", op)

	defer stopFn()

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
		return
	}
	log.Info("stopped")
}

func (v *PopularSearchesView) TopQueries(
	ctx context.Context, limit int,
) ([]domain.QueryCount, error) {
	const op = "PopularSearchesView.TopQueries"

	if err := ctx.Err(); err != nil {
		return nil, opErr(err, op)
	}

	if !v.gv.Recovered() {
		return nil, opErr(ErrViewNotReady, op)
	}

	it, err := v.gv.Iterator()
	if err != nil {
		return nil, opErr(err, op)
	}
	defer it.Release()

	var qs []domain.QueryCount
	for it.Next() {
		val, err := it.Value()
		if err != nil {
			return nil, opErr(err, op)
		}
		c, ok := val.(queryCount)
		if !ok {
			continue
		}
		qs = append(qs, domain.QueryCount{Query: it.Key(), Count: int64(c)})
	}
	if err := it.Err(); err != nil {
		return nil, opErr(err, op)
	}

	return rankQueries(qs, limit), nil
}

// rankQueries orders by count desc, then query asc, and cuts to limit.
func rankQueries(qs []domain.QueryCount, limit int) []domain.QueryCount {
	qs = slices.Clone(qs)
	slices.SortFunc(qs, func(a, b domain.QueryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Query, b.Query)
	})
	limit = max(limit, 0)
	return qs[:min(limit, len(qs))]
}
