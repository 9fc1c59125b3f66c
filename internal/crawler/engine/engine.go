package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Processor extracts one item from a page. A nil item with a nil error means
// the page held too little data and is skipped.
type Processor[T any] interface {
	Process(ctx context.Context, url string) (*T, error)
}

// Sink defines how to persist the data.
type Sink[T any] interface {
	Save(ctx context.Context, batch []T) error
}

// Stats summarizes a run.
type Stats struct {
	Candidates int
	Extracted  int
	Skipped    int
	Failed     int
}

// Engine walks a list of URLs one at a time. A failure on one URL is logged
// and never stops the run; pacing is left to the processor's fetcher.
type Engine[T any] struct {
	processor Processor[T]
	sinks     []Sink[T]
	logger    *zap.Logger
}

func NewEngine[T any](proc Processor[T], logger *zap.Logger, sinks ...Sink[T]) *Engine[T] {
	return &Engine[T]{processor: proc, sinks: sinks, logger: logger}
}

// Run processes urls in order, then hands every extracted item to each sink.
// It stops early only when ctx is cancelled, in which case nothing is saved.
func (engine *Engine[T]) Run(ctx context.Context, urls []string) ([]T, Stats, error) {
	stats := Stats{Candidates: len(urls)}
	items := make([]T, 0, len(urls))

	for i, link := range urls {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		log := engine.logger.With(
			zap.Int("index", i+1),
			zap.Int("total", len(urls)),
			zap.String("url", link),
		)
		log.Info("processing")

		item, err := engine.process(ctx, link)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, stats, ctxErr
			}
			stats.Failed++
			log.Warn("page failed", zap.Error(err))
		case item == nil:
			stats.Skipped++
			log.Warn("page skipped: insufficient data")
		default:
			stats.Extracted++
			items = append(items, *item)
			log.Info("page extracted")
		}
	}

	for _, sink := range engine.sinks {
		if err := sink.Save(ctx, items); err != nil {
			return items, stats, err
		}
	}
	return items, stats, nil
}

// process isolates a single page so a panic in parsing counts as a failure.
func (engine *Engine[T]) process(ctx context.Context, link string) (item *T, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, err = nil, fmt.Errorf("panic processing %s: %v", link, r)
		}
	}()
	return engine.processor.Process(ctx, link)
}
