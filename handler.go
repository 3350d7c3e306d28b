package landmarks

import "errors"

// ErrStopParsing is the sentinel Parse returns (wrapped) when a Handler
// requests early exit, either by returning Break from a method or by
// panicking with ErrStopParsing itself. A handler that panics with any
// other error value gets that error back from Parse, wrapped, instead.
// spec.md §9 permits both an explicit
// return-based signal and the source's own throw-a-sentinel idiom; this
// module offers both.
var ErrStopParsing = errors.New("landmarks: parse stopped by handler")

// ControlFlow lets a Handler method request that Parse stop immediately
// after the method returns.
type ControlFlow int

const (
	Continue ControlFlow = iota
	Break
)

// Handler receives the synchronous stream of events a Parse call emits.
// Every method is handed the source document and its event payload; the
// returned ControlFlow determines whether parsing continues. Methods are
// called on the same goroutine as Parse, in the order spec.md §5
// describes, and must not retain doc or any Range beyond the call (ranges
// are cheap value types meant to be resolved against doc immediately).
type Handler interface {
	Text(doc string, event Text) ControlFlow
	Comment(doc string, event Comment) ControlFlow
	CData(doc string, event CData) ControlFlow
	Processing(doc string, event Processing) ControlFlow
	Declaration(doc string, event Declaration) ControlFlow
	StartTagPrefix(doc string, event StartTag) ControlFlow
	StartTagAttribute(doc string, event Attribute) ControlFlow
	StartTag(doc string, event StartTag) ControlFlow
	EndTagPrefix(doc string, event EndTag) ControlFlow
	EndTagAttribute(doc string, event Attribute) ControlFlow
	EndTag(doc string, event EndTag) ControlFlow
	EndOfInput(doc string, event EndOfInput) ControlFlow
}

// BaseHandler implements Handler with no-op methods that always continue.
// Applications embed it and override only the methods they care about.
type BaseHandler struct{}

func (BaseHandler) Text(string, Text) ControlFlow                   { return Continue }
func (BaseHandler) Comment(string, Comment) ControlFlow             { return Continue }
func (BaseHandler) CData(string, CData) ControlFlow                 { return Continue }
func (BaseHandler) Processing(string, Processing) ControlFlow       { return Continue }
func (BaseHandler) Declaration(string, Declaration) ControlFlow     { return Continue }
func (BaseHandler) StartTagPrefix(string, StartTag) ControlFlow     { return Continue }
func (BaseHandler) StartTagAttribute(string, Attribute) ControlFlow { return Continue }
func (BaseHandler) StartTag(string, StartTag) ControlFlow           { return Continue }
func (BaseHandler) EndTagPrefix(string, EndTag) ControlFlow         { return Continue }
func (BaseHandler) EndTagAttribute(string, Attribute) ControlFlow   { return Continue }
func (BaseHandler) EndTag(string, EndTag) ControlFlow               { return Continue }
func (BaseHandler) EndOfInput(string, EndOfInput) ControlFlow       { return Continue }
