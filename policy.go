package landmarks

import "strings"

// Policy parameterizes the tokenizer: it classifies tag ids and answers
// every variability question the driver itself has no opinion about. A
// Policy is pure and read-only; a single instance may be shared across
// concurrent Parse calls (spec.md §5), but a Parse invocation is not
// reentrant.
type Policy interface {
	// IsSpace reports whether b is treated as ASCII whitespace.
	IsSpace(b byte) bool

	// GetElementNameStart returns pos if source[pos] begins a legal
	// element name, or NPOS otherwise. A policy may skip leading
	// whitespace here; doing so turns "< foo>" into a start tag.
	GetElementNameStart(source string, pos Position) Position

	// GetTagID maps a raw source name to a TagID, typically by
	// lowercasing (HTML-like) or keeping it verbatim (XML-like). This is
	// the only case-folding point in the tokenizer.
	GetTagID(name string) TagID

	// IsSameElement reports id equality, which may be case-insensitive
	// even when names are preserved verbatim.
	IsSameElement(a, b TagID) bool

	// IsVoidElement reports whether a start tag for id is implicitly
	// self-closing.
	IsVoidElement(id TagID) bool

	// IsContentElement reports whether a self-closing marker on id is
	// ignored; the tag always opens.
	IsContentElement(id TagID) bool

	// IsOpaqueElement reports whether id's body should be scanned as raw
	// bytes up to its matching end tag, without further markup parsing.
	IsOpaqueElement(id TagID) bool

	// IsAutoclosingSibling reports whether seeing a start tag for newID
	// while openID is on the stack closes openID.
	IsAutoclosingSibling(openID, newID TagID) bool

	// IsAutocloseByParent reports whether id auto-closes when its parent
	// closes, or at end of input.
	IsAutocloseByParent(id TagID) bool

	// IsWildcardEndTag reports whether this end tag adopts the
	// top-of-stack id instead of being looked up by name.
	IsWildcardEndTag(id TagID) bool

	// IsAutoclosingEndTag (a "landmark" end tag) reports whether matching
	// it closes every open descendant, not just the immediate child.
	IsAutoclosingEndTag(id TagID) bool
}

func isASCIISpace(b byte) bool {
	switch b {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	default:
		return false
	}
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIILetterOrUnderscore(b byte) bool {
	return isASCIILetter(b) || b == '_'
}

// xmlPolicy is a usable, non-authoritative default Policy for XML-like
// documents: case-sensitive ids, no void/opaque/autoclose behavior. The
// authoritative XML and HTML5 policy datasets are out of this module's
// scope (spec.md §1, §6); this is a convenience, not a conformance claim.
type xmlPolicy struct{}

// XMLPolicy is the package's built-in XML-like Policy.
var XMLPolicy Policy = xmlPolicy{}

func (xmlPolicy) IsSpace(b byte) bool { return isASCIISpace(b) }

func (xmlPolicy) GetElementNameStart(source string, pos Position) Position {
	if int(pos) >= len(source) {
		return NPOS
	}
	if isASCIILetterOrUnderscore(source[pos]) {
		return pos
	}
	return NPOS
}

func (xmlPolicy) GetTagID(name string) TagID {
	if name == "" {
		return UnknownTagID
	}
	return TagID(name)
}

func (xmlPolicy) IsSameElement(a, b TagID) bool { return a == b }
func (xmlPolicy) IsVoidElement(TagID) bool { return false }
func (xmlPolicy) IsContentElement(TagID) bool { return false }
func (xmlPolicy) IsOpaqueElement(TagID) bool { return false }
func (xmlPolicy) IsAutoclosingSibling(TagID, TagID) bool { return false }
func (xmlPolicy) IsAutocloseByParent(TagID) bool { return false }
func (xmlPolicy) IsWildcardEndTag(TagID) bool { return false }
func (xmlPolicy) IsAutoclosingEndTag(TagID) bool { return false }

// htmlPolicy is a usable, non-authoritative default Policy modeled on the
// HTML5 element classification spec.md §6 enumerates: case-insensitive
// ids, a void-element set, an opaque-element set, and the "implied end
// tags" autoclose rules for paragraph- and table-shaped content.
type htmlPolicy struct{}

// HTMLPolicy is the package's built-in HTML5-like Policy.
var HTMLPolicy Policy = htmlPolicy{}

var htmlVoidElements = map[TagID]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

var htmlOpaqueElements = map[TagID]struct{}{
	"script": {}, "style": {},
}

var htmlAutocloseByParent = map[TagID]struct{}{
	"p": {}, "li": {}, "dt": {}, "dd": {}, "option": {}, "optgroup": {},
	"thead": {}, "tbody": {}, "tfoot": {}, "tr": {}, "td": {}, "th": {},
	"rb": {}, "rt": {}, "rtc": {}, "rp": {}, "colgroup": {}, "caption": {},
}

// htmlBlockLevelOpeners backs the HTML5 "a <p> is closed by the next
// block-level opener" adoption-agency shortcut.
var htmlBlockLevelOpeners = map[TagID]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "details": {},
	"div": {}, "dl": {}, "fieldset": {}, "figcaption": {}, "figure": {},
	"footer": {}, "form": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"header": {}, "hr": {}, "main": {}, "menu": {}, "nav": {}, "ol": {}, "p": {},
	"pre": {}, "section": {}, "table": {}, "ul": {},
}

func (htmlPolicy) IsSpace(b byte) bool { return isASCIISpace(b) }

func (htmlPolicy) GetElementNameStart(source string, pos Position) Position {
	if int(pos) >= len(source) {
		return NPOS
	}
	if isASCIILetter(source[pos]) {
		return pos
	}
	return NPOS
}

func (htmlPolicy) GetTagID(name string) TagID {
	if name == "" {
		return UnknownTagID
	}
	return TagID(strings.ToLower(name))
}

func (htmlPolicy) IsSameElement(a, b TagID) bool { return a == b }

func (htmlPolicy) IsVoidElement(id TagID) bool {
	_, ok := htmlVoidElements[id]
	return ok
}

func (htmlPolicy) IsContentElement(TagID) bool { return false }

func (htmlPolicy) IsOpaqueElement(id TagID) bool {
	_, ok := htmlOpaqueElements[id]
	return ok
}

func (htmlPolicy) IsAutoclosingSibling(openID, newID TagID) bool {
	switch {
	case openID == "li" && newID == "li":
		return true
	case (openID == "dd" || openID == "dt") && (newID == "dd" || newID == "dt"):
		return true
	case openID == "option" && (newID == "option" || newID == "optgroup"):
		return true
	case openID == "tr" && newID == "tr":
		return true
	case (openID == "td" || openID == "th") && (newID == "td" || newID == "th" || newID == "tr"):
		return true
	case (openID == "thead" || openID == "tbody" || openID == "tfoot") &&
		(newID == "thead" || newID == "tbody" || newID == "tfoot"):
		return true
	case (openID == "rb" || openID == "rt" || openID == "rtc" || openID == "rp") &&
		(newID == "rb" || newID == "rt" || newID == "rtc" || newID == "rp"):
		return true
	case openID == "p":
		_, ok := htmlBlockLevelOpeners[newID]
		return ok
	default:
		return false
	}
}

func (htmlPolicy) IsAutocloseByParent(id TagID) bool {
	_, ok := htmlAutocloseByParent[id]
	return ok
}

func (htmlPolicy) IsWildcardEndTag(TagID) bool { return false }
func (htmlPolicy) IsAutoclosingEndTag(TagID) bool { return false }
