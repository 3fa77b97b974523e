// Package loader streams (UUID, level) records from a local file or an
// http(s) URL, resolves duplicate UUIDs with last-write-wins, and
// hands the fully deduplicated set to a store.Build call. A load is
// all-or-nothing: any row-level parse error aborts before a store is
// ever constructed.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/occlusion-dev/occlusion/internal/codec"
	"github.com/occlusion-dev/occlusion/internal/model"
	"github.com/occlusion-dev/occlusion/internal/store"
)

// ErrorKind classifies why a load failed: the source could not be
// opened or read, its header was wrong, or a data row failed to parse.
type ErrorKind string

const (
	KindSourceUnreachable ErrorKind = "source_unreachable"
	KindSourceIOFailed    ErrorKind = "source_io_failed"
	KindMalformedHeader   ErrorKind = "malformed_header"
	KindParseError        ErrorKind = "parse_error"
)

// LoadError is the fatal error a failed load surfaces to its caller.
// The caller is expected to abort startup with exit code 1.
type LoadError struct {
	Kind ErrorKind
	Row  uint64 // only meaningful for KindParseError
	Err  error
}

func (e *LoadError) Error() string {
	if e.Kind == KindParseError {
		return fmt.Sprintf("load failed at row %d: %s", e.Row, e.Err)
	}
	return fmt.Sprintf("load failed (%s): %s", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ProgressFunc is called periodically during a load with the number of
// data rows parsed so far. Advisory only; the loader never blocks on it.
type ProgressFunc func(rowsParsed uint64)

// Options configures a single load.
type Options struct {
	Backend       store.Kind
	ProgressEvery uint64 // 0 disables progress reporting
	OnProgress    ProgressFunc
}

// Result is what a successful load produces: the built store plus the
// Stats snapshot computed while building it.
type Result struct {
	Store store.Store
	Stats model.Stats
}

// Load streams entries from source (a filesystem path, or an
// "http://"/"https://" URL) and builds the configured backend.
//
// The load is all-or-nothing: a single malformed row aborts with a
// LoadError before any store is constructed. Duplicate UUIDs are
// resolved last-write-wins by accumulating into an ordered map here,
// before the chosen backend's constructor ever sees the data — so no
// backend needs its own duplicate-detection path.
func Load(source string, opts Options) (*Result, error) {
	reader, closeFn, err := open(source)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	entries, err := readEntries(reader, opts)
	if err != nil {
		return nil, err
	}

	backend, err := store.Build(opts.Backend, entries)
	if err != nil {
		return nil, &LoadError{Kind: KindSourceIOFailed, Err: err}
	}

	stats := model.Stats{
		TotalEntries:  backend.Len(),
		PerLevelCount: backend.LevelHistogram(),
		LoadSource:    source,
		LoadedAt:      time.Now(),
	}

	return &Result{Store: backend, Stats: stats}, nil
}

func open(source string) (io.Reader, func(), error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source) //nolint:gosec // source is an operator-supplied config value, not user input
		if err != nil {
			return nil, nil, &LoadError{Kind: KindSourceUnreachable, Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, &LoadError{
				Kind: KindSourceUnreachable,
				Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
			}
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, nil, &LoadError{Kind: KindSourceUnreachable, Err: err}
	}
	return f, func() { f.Close() }, nil
}

// readEntries drives the codec line by line, applying last-write-wins
// deduplication via an insertion-order-tracked map so the outcome is
// deterministic even though the eventual backend may be a hash table.
func readEntries(r io.Reader, opts Options) ([]model.Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, &LoadError{Kind: KindSourceIOFailed, Err: err}
		}
		return nil, &LoadError{Kind: KindMalformedHeader, Err: errors.New("empty input, expected header")}
	}
	if !codec.IsHeader(scanner.Text()) {
		return nil, &LoadError{
			Kind: KindMalformedHeader,
			Err:  fmt.Errorf("expected header %q, got %q", codec.ExpectedHeader, scanner.Text()),
		}
	}

	order := make([]uuid16, 0)
	byID := make(map[uuid16]model.Entry)

	var row uint64 = 1 // header is row 1
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, err := codec.ParseRecord(row, line)
		if err != nil {
			var pe *codec.ParseError
			if errors.As(err, &pe) {
				return nil, &LoadError{Kind: KindParseError, Row: pe.Row, Err: pe}
			}
			return nil, &LoadError{Kind: KindParseError, Row: row, Err: err}
		}

		key := uuid16(entry.UUID)
		if _, seen := byID[key]; !seen {
			order = append(order, key)
		}
		byID[key] = entry // last write wins

		if opts.OnProgress != nil && opts.ProgressEvery > 0 && (row-1)%opts.ProgressEvery == 0 {
			opts.OnProgress(row - 1)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Kind: KindSourceIOFailed, Err: err}
	}

	entries := make([]model.Entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, byID[key])
	}
	return entries, nil
}

// uuid16 is model.Entry's UUID used as a plain comparable map key; kept
// distinct from uuid.UUID here only to avoid importing google/uuid into
// this file just for the type name.
type uuid16 = [16]byte
