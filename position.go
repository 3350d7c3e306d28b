package landmarks

import (
	"math"
	"strings"
)

// Position is a byte offset into a source document.
type Position int

// NPOS represents "not found" or "incomplete". Any value at or past the end
// of the source satisfies this contract; math.MaxInt is the canonical
// choice so comparisons like pos >= len(source) stay trivially true.
const NPOS Position = math.MaxInt

// Range is a half-open byte interval [Start, End) into a source document.
// A Range is immutable once constructed.
type Range struct {
	Start Position
	End   Position
}

// NewRange constructs a Range. If both ends are complete (neither is NPOS)
// and Start > End, NewRange panics: that combination is a programmer error,
// not a document-level fault, and the failure semantics in spec.md §4.5
// require it to fail deterministically rather than degrade silently.
func NewRange(start, end Position) Range {
	if start != NPOS && end != NPOS && start > end {
		panic("landmarks: invalid range: start > end")
	}
	return Range{Start: start, End: end}
}

// IsComplete reports whether End was actually found (not NPOS).
func (r Range) IsComplete() bool {
	return r.End != NPOS
}

// IsEmpty reports whether the range spans zero bytes, or was never
// resolved in the first place.
func (r Range) IsEmpty() bool {
	return r.Start == r.End || r.Start == NPOS
}

// GetText returns the substring of source spanned by r. An incomplete End
// is treated as len(source); a Start beyond the source yields "".
func (r Range) GetText(source string) string {
	length := Position(len(source))

	start := r.Start
	if start == NPOS || start > length {
		return ""
	}

	end := r.End
	if end == NPOS || end > length {
		end = length
	}
	if start > end {
		return ""
	}

	return source[start:end]
}

const cdataOpen = "<![CDATA["
const cdataClose = "]]>"

// GetDecodedText returns the entity-decoded text of r. decode is supplied
// by the caller: entity encode/decode tables are an external collaborator
// outside the tokenizer's scope (spec.md §1), so the core never imports
// one itself. If r's text looks like a CDATA section (starts with
// "<![CDATA[" and ends with "]]>"), the fences are stripped before
// decode is invoked.
func (r Range) GetDecodedText(source string, decode func(string) string) string {
	text := r.GetText(source)
	if strings.HasPrefix(text, cdataOpen) && strings.HasSuffix(text, cdataClose) && len(text) >= len(cdataOpen)+len(cdataClose) {
		text = text[len(cdataOpen) : len(text)-len(cdataClose)]
	}
	if decode == nil {
		return text
	}
	return decode(text)
}
