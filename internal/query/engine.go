// Package query implements the read-only visibility engine: parsing a
// UUID/mask pair, consulting a store.Store, and turning the result into
// a Decision. It never mutates the store it was built with.
package query

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/occlusion-dev/occlusion/internal/model"
	"github.com/occlusion-dev/occlusion/internal/store"
)

// ErrorKind classifies why a query request was rejected.
type ErrorKind string

const (
	KindMalformedUUID  ErrorKind = "malformed_uuid"
	KindMaskOutOfRange ErrorKind = "mask_out_of_range"
)

// QueryError is returned by Check for a request-level problem. Batch
// elements never produce a QueryError for a malformed UUID — that
// degrades to Unknown at the element's position instead.
type QueryError struct {
	Kind ErrorKind
	Msg  string
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// defaultBatchParallelThreshold is the default batch size above which
// CheckBatch splits work across a worker pool instead of running
// sequentially.
const defaultBatchParallelThreshold = 256

// Engine answers visibility queries against a single immutable store
// snapshot. Check/CheckBatch take no lock and allocate nothing beyond
// input parsing, per the store's read-path contract.
type Engine struct {
	store                  store.Store
	loadedStats            model.Stats
	batchParallelThreshold int
}

// New builds an Engine over s, reporting stats as loadedStats.
func New(s store.Store, loadedStats model.Stats, batchParallelThreshold int) *Engine {
	if batchParallelThreshold <= 0 {
		batchParallelThreshold = defaultBatchParallelThreshold
	}
	return &Engine{
		store:                  s,
		loadedStats:            loadedStats,
		batchParallelThreshold: batchParallelThreshold,
	}
}

func validateMask(mask int) (model.Mask, error) {
	if mask < 0 || mask > 255 {
		return 0, &QueryError{Kind: KindMaskOutOfRange, Msg: fmt.Sprintf("mask %d out of range [0,255]", mask)}
	}
	return model.Mask(mask), nil
}

// Check parses uuidText and returns the Decision for it against mask.
func (e *Engine) Check(uuidText string, mask int) (model.Decision, error) {
	m, err := validateMask(mask)
	if err != nil {
		return model.Unknown, err
	}

	id, err := uuid.Parse(uuidText)
	if err != nil {
		return model.Unknown, &QueryError{Kind: KindMalformedUUID, Msg: err.Error()}
	}

	level, found := e.store.GetLevel(id)
	return model.DecisionFor(level, found, m), nil
}

// CheckBatch validates mask once, then resolves every element of
// uuidTexts independently: a malformed element yields Unknown at its
// position rather than failing the whole batch. Result ordering always
// matches input ordering, sequential or parallel.
func (e *Engine) CheckBatch(uuidTexts []string, mask int) ([]model.Decision, error) {
	m, err := validateMask(mask)
	if err != nil {
		return nil, err
	}

	results := make([]model.Decision, len(uuidTexts))

	if len(uuidTexts) <= e.batchParallelThreshold {
		for i, text := range uuidTexts {
			results[i] = e.checkOne(text, m)
		}
		return results, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	indices := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = e.checkOne(uuidTexts[i], m)
			}
		}()
	}
	for i := range uuidTexts {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results, nil
}

func (e *Engine) checkOne(text string, mask model.Mask) model.Decision {
	id, err := uuid.Parse(text)
	if err != nil {
		return model.Unknown
	}
	level, found := e.store.GetLevel(id)
	return model.DecisionFor(level, found, mask)
}

// Stats returns the snapshot captured at load time; never recomputed.
func (e *Engine) Stats() model.Stats {
	return e.loadedStats
}
