package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type result struct {
	item  *string
	err   error
	panic bool
}

type fakeProcessor struct {
	results map[string]result
	seen    []string
	onCall  func()
}

func (p *fakeProcessor) Process(_ context.Context, url string) (*string, error) {
	p.seen = append(p.seen, url)
	if p.onCall != nil {
		p.onCall()
	}
	r := p.results[url]
	if r.panic {
		panic("boom")
	}
	return r.item, r.err
}

type memorySink struct {
	batches [][]string
	err     error
}

func (s *memorySink) Save(_ context.Context, batch []string) error {
	s.batches = append(s.batches, append(batch[:0:0], batch...))
	return s.err
}

func ptr(s string) *string { return &s }

func TestEngine_IsolatesFailuresAndKeepsOrder(t *testing.T) {
	proc := &fakeProcessor{results: map[string]result{
		"a": {item: ptr("A")},
		"b": {err: errors.New("status 500")},
		"c": {},
		"d": {panic: true},
		"e": {item: ptr("E")},
	}}
	sink := &memorySink{}

	items, stats, err := NewEngine[string](proc, zaptest.NewLogger(t), sink).
		Run(context.Background(), []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "E"}, items)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, proc.seen)
	assert.Equal(t, Stats{Candidates: 5, Extracted: 2, Skipped: 1, Failed: 2}, stats)
	assert.Equal(t, [][]string{{"A", "E"}}, sink.batches)
}

func TestEngine_EmptyInputStillSaves(t *testing.T) {
	sink := &memorySink{}

	items, stats, err := NewEngine[string](&fakeProcessor{}, zaptest.NewLogger(t), sink).
		Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, items)
	assert.Equal(t, Stats{}, stats)
	require.Len(t, sink.batches, 1)
	assert.NotNil(t, sink.batches[0])
}

func TestEngine_SinkErrorIsReturned(t *testing.T) {
	first := &memorySink{err: errors.New("disk full")}
	second := &memorySink{}
	proc := &fakeProcessor{results: map[string]result{"a": {item: ptr("A")}}}

	_, _, err := NewEngine[string](proc, zaptest.NewLogger(t), first, second).
		Run(context.Background(), []string{"a"})
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, second.batches)
}

func TestEngine_CancelStopsWithoutSaving(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	proc := &fakeProcessor{
		results: map[string]result{"a": {item: ptr("A")}, "b": {item: ptr("B")}},
		onCall:  cancel,
	}
	sink := &memorySink{}

	_, _, err := NewEngine[string](proc, zaptest.NewLogger(t), sink).
		Run(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, proc.seen)
	assert.Empty(t, sink.batches)
}
