// Package snapshot holds the process-wide immutable binding to the
// loaded query engine. It is written exactly once, before the HTTP
// server begins accepting connections, and never replaced or mutated
// afterward — there is no reload path.
package snapshot

import (
	"errors"
	"sync/atomic"

	"github.com/occlusion-dev/occlusion/internal/query"
)

// ErrNotPublished is returned by Get before Publish has been called.
var ErrNotPublished = errors.New("snapshot: no engine published yet")

// Holder is a process-wide, publish-once binding to a query.Engine.
// The zero value is unpublished. Publish must be called before the
// HTTP server starts routing requests; Get is safe for any number of
// concurrent readers thereafter.
type Holder struct {
	ptr atomic.Pointer[query.Engine]
}

// New returns an unpublished Holder.
func New() *Holder {
	return &Holder{}
}

// Publish binds e as the process-wide engine. Calling Publish more than
// once is a programming error in this service (there is no reload
// path) but is not itself unsafe: the last write wins under the same
// atomic-pointer semantics as any other publish.
func (h *Holder) Publish(e *query.Engine) {
	h.ptr.Store(e)
}

// Get returns the published engine, or ErrNotPublished if Publish has
// not yet been called. Callers obtain a shared, non-owning handle —
// the returned engine is never mutated after publication.
func (h *Holder) Get() (*query.Engine, error) {
	e := h.ptr.Load()
	if e == nil {
		return nil, ErrNotPublished
	}
	return e, nil
}

// MustGet panics if no engine has been published. Intended for code
// paths that only run after startup has completed publication, such as
// HTTP handlers registered after Publish.
func (h *Holder) MustGet() *query.Engine {
	e, err := h.Get()
	if err != nil {
		panic(err)
	}
	return e
}
