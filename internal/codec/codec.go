// Package codec parses a single CSV record into a model.Entry.
//
// It is deliberately narrow: it knows nothing about files, streams, or
// HTTP — it turns two trimmed text fields into an Entry or a
// ParseError. The loader drives it one row at a time.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/occlusion-dev/occlusion/internal/model"
)

// ErrorKind classifies why a row failed to parse.
type ErrorKind string

const (
	KindMalformedUUID     ErrorKind = "malformed_uuid"
	KindLevelOutOfRange   ErrorKind = "level_out_of_range"
	KindLevelNotInteger   ErrorKind = "level_not_integer"
	KindWrongFieldCount   ErrorKind = "wrong_field_count"
)

// ParseError reports the row and reason a CSV record failed to parse.
type ParseError struct {
	Row  uint64
	Kind ErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Kind, e.Msg)
}

// ExpectedHeader is the literal (case-insensitive) header every CSV
// source must begin with.
const ExpectedHeader = "uuid,visibility_level"

// IsHeader reports whether line is the expected header, ignoring case
// and surrounding whitespace.
func IsHeader(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), ExpectedHeader)
}

// ParseRecord parses one non-header, non-empty CSV line into an Entry.
// row is the 1-based line number, used only for error reporting.
func ParseRecord(row uint64, line string) (model.Entry, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return model.Entry{}, &ParseError{
			Row:  row,
			Kind: KindWrongFieldCount,
			Msg:  fmt.Sprintf("expected 2 fields, got %d", len(fields)),
		}
	}

	uuidText := strings.TrimSpace(fields[0])
	levelText := strings.TrimSpace(fields[1])

	id, err := uuid.Parse(uuidText)
	if err != nil {
		return model.Entry{}, &ParseError{
			Row:  row,
			Kind: KindMalformedUUID,
			Msg:  err.Error(),
		}
	}

	level, err := strconv.ParseUint(levelText, 10, 64)
	if err != nil {
		return model.Entry{}, &ParseError{
			Row:  row,
			Kind: KindLevelNotInteger,
			Msg:  err.Error(),
		}
	}
	if level > 255 {
		return model.Entry{}, &ParseError{
			Row:  row,
			Kind: KindLevelOutOfRange,
			Msg:  fmt.Sprintf("level %d out of range [0,255]", level),
		}
	}

	return model.Entry{UUID: id, Level: uint8(level)}, nil
}
