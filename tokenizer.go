package landmarks

import (
	"fmt"
	"strings"
)

// tokenizer is the outer driver: it walks source left-to-right, classifies
// each opener, dispatches to the matching sub-scanner, and maintains the
// open-element stack. A tokenizer is created fresh for every Parse call
// and is never reused or shared.
type tokenizer struct {
	source  string
	policy  Policy
	handler Handler
	stack   []TagID
}

// Parse scans source once, dispatching typed events to handler as decided
// by policy. It returns a non-nil error only when a Handler method
// returned Break, or a handler panicked with an error value. Parse
// recovers that panic and returns the panicked error wrapped with a
// "landmarks:" prefix; for Break that error is ErrStopParsing. Any other panic
// (e.g. the contract violation NewRange raises) is a programmer error and
// propagates uncaught.
func Parse(source string, policy Policy, handler Handler) (err error) {
	t := &tokenizer{source: source, policy: policy, handler: handler}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = fmt.Errorf("landmarks: %w", e)
			return
		}
		panic(r)
	}()

	t.run()
	return nil
}

// dispatch stops the parse by panicking with ErrStopParsing when a
// Handler method returns Break. The panic is recovered only at the Parse
// boundary, so no further events are delivered after it (spec.md §4.5).
func (t *tokenizer) dispatch(cf ControlFlow) {
	if cf == Break {
		panic(ErrStopParsing)
	}
}

func (t *tokenizer) run() {
	source := t.source
	length := Position(len(source))
	anchor := Position(0)
	pos := Position(0)

	for {
		lt := indexByteFrom(source, pos, '<')
		if lt == NPOS {
			if anchor < length {
				t.dispatch(t.handler.Text(source, Text{All: NewRange(anchor, length)}))
			}
			t.finish()
			return
		}

		switch {
		case hasPrefixAt(source, lt, "</"):
			t.flushText(anchor, lt)
			newPos, truncated := t.scanEndTag(lt)
			if truncated {
				t.finish()
				return
			}
			pos, anchor = newPos, newPos

		case hasPrefixAt(source, lt, "<!--"):
			t.flushText(anchor, lt)
			end := t.scanClosed(lt, "-->", func(r Range) {
				t.dispatch(t.handler.Comment(source, Comment{All: r}))
			})
			pos, anchor = end, end

		case hasPrefixAt(source, lt, "<![CDATA["):
			t.flushText(anchor, lt)
			end := t.scanClosed(lt, "]]>", func(r Range) {
				t.dispatch(t.handler.CData(source, CData{All: r}))
			})
			pos, anchor = end, end

		case hasPrefixAt(source, lt, "<?"):
			t.flushText(anchor, lt)
			end := t.scanClosed(lt, "?>", func(r Range) {
				t.dispatch(t.handler.Processing(source, Processing{All: r}))
			})
			pos, anchor = end, end

		case hasPrefixAt(source, lt, "<!"):
			t.flushText(anchor, lt)
			end := t.scanClosed(lt, ">", func(r Range) {
				t.dispatch(t.handler.Declaration(source, Declaration{All: r}))
			})
			pos, anchor = end, end

		default: // "<" start-tag candidate
			nameStart := t.policy.GetElementNameStart(source, lt+1)
			if nameStart == NPOS {
				// No valid name here: fold this "<" into the pending text
				// run by advancing pos without flushing and without
				// touching anchor.
				pos = lt + 1
				continue
			}

			t.flushText(anchor, lt)
			end, opaqueRewind, truncated := t.scanStartTag(lt, nameStart)
			if truncated {
				t.finish()
				return
			}
			anchor = end
			pos = end
			if opaqueRewind != NPOS {
				pos = opaqueRewind
			}
		}
	}
}

// flushText emits the pending [anchor, lt) run as a Text event, once an
// opener at lt is actually about to be consumed. Called from every
// consuming branch of run's switch, but not from the fold branch, so a "<"
// with no legal name never splits a text run in two (spec.md §8 scenario 8).
func (t *tokenizer) flushText(anchor, lt Position) {
	if lt > anchor {
		t.dispatch(t.handler.Text(t.source, Text{All: NewRange(anchor, lt)}))
	}
}

// finish closes the tail of autoclose-by-parent elements still open at
// end of input and emits the terminal EndOfInput event.
func (t *tokenizer) finish() {
	source := t.source
	t.closeAutocloseByParentTail()
	t.dispatch(t.handler.EndOfInput(source, EndOfInput{OpenElements: append([]TagID(nil), t.stack...)}))
}

// scanClosed scans a comment, CDATA section, processing instruction, or
// declaration. The closer search starts at the opener itself (start), not
// after it, so that degenerate inputs like "<!-->" terminate as a single
// comment (spec.md §4.4).
func (t *tokenizer) scanClosed(start Position, closer string, emit func(Range)) Position {
	source := t.source
	idx := indexFrom(source, start, closer)
	if idx == NPOS {
		emit(NewRange(start, NPOS))
		return Position(len(source))
	}
	end := idx + Position(len(closer))
	emit(NewRange(start, end))
	return end
}

// scanStartTag scans a start tag beginning at ltPos, whose name begins at
// nameStart. It returns the position just past the tag's ">", a rewind
// position for opaque-element scanning (NPOS if the element is not
// opaque, or did not open at all), and whether the source was truncated
// before the tag could complete.
func (t *tokenizer) scanStartTag(ltPos, nameStart Position) (pos Position, opaqueRewind Position, truncated bool) {
	source := t.source

	nameEnd := findElementNameEnd(source, t.policy, nameStart)
	if nameEnd == NPOS {
		tag := StartTag{TagPrefix: TagPrefix{
			TagID: UnknownTagID,
			Name:  NewRange(nameStart, NPOS),
			All:   NewRange(ltPos, NPOS),
		}}
		t.dispatch(t.handler.StartTagPrefix(source, tag))
		t.dispatch(t.handler.StartTag(source, tag))
		return NPOS, NPOS, true
	}

	tagID := t.policy.GetTagID(source[nameStart:nameEnd])

	t.closeAutocloseBySibling(tagID, nameEnd)

	prefix := StartTag{TagPrefix: TagPrefix{
		TagID: tagID,
		Name:  NewRange(nameStart, nameEnd),
		All:   NewRange(ltPos, nameEnd),
	}}
	t.dispatch(t.handler.StartTagPrefix(source, prefix))

	endPos, marker := scanAttributes(source, t.policy, nameEnd, func(attr Attribute) {
		t.dispatch(t.handler.StartTagAttribute(source, attr))
	})

	selfClosingPolicy := SelfClosingAllowed
	switch {
	case t.policy.IsVoidElement(tagID):
		selfClosingPolicy = SelfClosingRequired
	case t.policy.IsContentElement(tagID):
		selfClosingPolicy = SelfClosingProhibited
	}

	selfClosingMarker := SelfClosingMarkerAbsent
	if marker {
		selfClosingMarker = SelfClosingMarkerPresent
	}

	tag := StartTag{
		TagPrefix: TagPrefix{
			TagID: tagID,
			Name:  NewRange(nameStart, nameEnd),
			All:   NewRange(ltPos, endPos),
		},
		SelfClosingPolicy: selfClosingPolicy,
		SelfClosingMarker: selfClosingMarker,
	}
	t.dispatch(t.handler.StartTag(source, tag))

	if endPos == NPOS {
		return NPOS, NPOS, true
	}

	opaqueRewind = NPOS
	if !tag.IsSelfClosing() {
		t.stack = append(t.stack, tagID)
		if t.policy.IsOpaqueElement(tagID) {
			opaqueRewind = t.scanOpaqueContent(tagID, endPos)
		}
	}

	return endPos, opaqueRewind, false
}

// scanOpaqueContent scans past an opaque element's raw body without
// parsing markup, looking for a matching end tag by name only. It returns
// the position just before that end tag's "</" (or the end of source if
// no match is found), so the caller's next main-loop iteration emits the
// buffered body as Text and then the end tag through the ordinary
// end-tag path.
func (t *tokenizer) scanOpaqueContent(tagID TagID, pos Position) Position {
	source := t.source
	length := Position(len(source))

	search := pos
	for {
		idx := indexFrom(source, search, "</")
		if idx == NPOS {
			return length
		}

		nameStart := idx + 2
		nameEnd := findElementNameEnd(source, t.policy, nameStart)
		// nameStart <= nameEnd always holds here by construction; this is
		// a defensive check reproducing the source's own defensive
		// clamp, kept per DESIGN.md's Open Question 2 even though it is
		// unreachable under the stated contract.
		if nameEnd != NPOS && nameStart <= nameEnd {
			candidateID := t.policy.GetTagID(source[nameStart:nameEnd])
			if t.policy.IsSameElement(candidateID, tagID) {
				return idx
			}
		}

		search = idx + 2
	}
}

// scanEndTag scans an end tag beginning at ltPos. It returns the position
// just past the tag's ">" and whether the source was truncated before the
// tag could complete.
func (t *tokenizer) scanEndTag(ltPos Position) (pos Position, truncated bool) {
	source := t.source
	nameStart := ltPos + 2

	nameEnd := findElementNameEnd(source, t.policy, nameStart)
	var tagID TagID
	if nameEnd == NPOS {
		tagID = UnknownTagID
	} else {
		tagID = t.policy.GetTagID(source[nameStart:nameEnd])
	}

	state := t.resolveEndTag(&tagID, nameStart)

	tag := EndTag{
		TagPrefix: TagPrefix{
			TagID: tagID,
			Name:  NewRange(nameStart, nameEnd),
			All:   NewRange(ltPos, nameEnd),
		},
		State: state,
	}
	t.dispatch(t.handler.EndTagPrefix(source, tag))

	if nameEnd == NPOS {
		tag.All = NewRange(ltPos, NPOS)
		t.dispatch(t.handler.EndTag(source, tag))
		return NPOS, true
	}

	endPos, _ := scanAttributes(source, t.policy, nameEnd, func(attr Attribute) {
		t.dispatch(t.handler.EndTagAttribute(source, attr))
	})

	tag.All = NewRange(ltPos, endPos)
	t.dispatch(t.handler.EndTag(source, tag))

	if endPos == NPOS {
		return NPOS, true
	}
	return endPos, false
}

// resolveEndTag updates the open-element stack for an end tag whose name
// resolved to *tagID (replacing it in place if a wildcard end tag adopts
// the top-of-stack id), and returns the resulting EndTagState.
func (t *tokenizer) resolveEndTag(tagID *TagID, pos Position) EndTagState {
	if len(t.stack) == 0 {
		return Unmatched
	}

	effectiveID := *tagID
	if t.policy.IsWildcardEndTag(effectiveID) {
		effectiveID = t.stack[len(t.stack)-1]
	}
	*tagID = effectiveID

	top := t.stack[len(t.stack)-1]
	if t.policy.IsSameElement(effectiveID, top) {
		t.stack = t.stack[:len(t.stack)-1]
		return Matched
	}

	landmark := t.policy.IsAutoclosingEndTag(effectiveID)
	popState := AutoclosedByParent
	if landmark {
		popState = AutoclosedByAncestor
	}

	foundAt := -1
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.policy.IsSameElement(t.stack[i], effectiveID) {
			foundAt = i
			break
		}
		if !landmark && !t.policy.IsAutocloseByParent(t.stack[i]) {
			// Neither a landmark sweep nor an autoclose-by-parent
			// element: stop without closing anything (spec.md §9,
			// Open Question 1).
			break
		}
	}

	if foundAt < 0 {
		return Unmatched
	}

	for len(t.stack) > foundAt+1 {
		t.popSynthesized(pos, popState)
	}
	t.stack = t.stack[:foundAt]
	return Matched
}

// closeAutocloseBySibling finds the topmost open element that the policy
// says a start tag for newID implicitly closes, and pops it together with
// every element above it, synthesizing an AutoclosedBySibling EndTag
// event for each popped element.
func (t *tokenizer) closeAutocloseBySibling(newID TagID, pos Position) {
	depth := -1
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.policy.IsAutoclosingSibling(t.stack[i], newID) {
			depth = i
			break
		}
	}
	if depth < 0 {
		return
	}
	for len(t.stack) > depth {
		t.popSynthesized(pos, AutoclosedBySibling)
	}
}

// closeAutocloseByParentTail pops the tail of the open-element stack that
// is still open at end of input, as long as the policy says each element
// auto-closes with its parent.
func (t *tokenizer) closeAutocloseByParentTail() {
	pos := Position(len(t.source))
	for len(t.stack) > 0 && t.policy.IsAutocloseByParent(t.stack[len(t.stack)-1]) {
		t.popSynthesized(pos, AutoclosedByParent)
	}
}

// popSynthesized pops the top of the open-element stack and emits a
// synthesized EndTagPrefix/EndTag pair for it, with an empty name range
// at pos, as spec.md §4.4 requires for every autoclose kind.
func (t *tokenizer) popSynthesized(pos Position, state EndTagState) {
	source := t.source
	top := len(t.stack) - 1
	id := t.stack[top]
	t.stack = t.stack[:top]

	tag := EndTag{
		TagPrefix: TagPrefix{
			TagID: id,
			Name:  NewRange(pos, pos),
			All:   NewRange(pos, pos),
		},
		State: state,
	}
	t.dispatch(t.handler.EndTagPrefix(source, tag))
	t.dispatch(t.handler.EndTag(source, tag))
}

func indexByteFrom(source string, from Position, b byte) Position {
	idx := strings.IndexByte(source[from:], b)
	if idx < 0 {
		return NPOS
	}
	return from + Position(idx)
}

func indexFrom(source string, from Position, sub string) Position {
	idx := strings.Index(source[from:], sub)
	if idx < 0 {
		return NPOS
	}
	return from + Position(idx)
}

func hasPrefixAt(source string, pos Position, prefix string) bool {
	end := int(pos) + len(prefix)
	if end > len(source) {
		return false
	}
	return source[pos:end] == prefix
}
