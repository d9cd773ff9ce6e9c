// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package kdl

import (
	"fmt"
	"io"
	"iter"

	"github.com/creachadair/kdl/internal/store"
	"github.com/creachadair/kdl/lex"
	"go4.org/mem"
)

// A TokenSource supplies lexical tokens to a Parser. The *lex.Lexer type
// implements this interface.
type TokenSource interface {
	// Next returns the next token, or io.EOF when no tokens remain. Any other
	// error is reported by the parser as a syntax error at the returned token.
	Next() (lex.Token, error)
}

// Positioner is an optional interface that a TokenSource may implement to
// resolve byte offsets into line and column positions. If the source of a
// Parser implements this interface, syntax errors include line and column
// locations.
type Positioner interface {
	LineCol(offset int) lex.LineCol
}

// Limits bound the storage used by a Parser. A zero field means the
// corresponding storage is unbounded and grows as needed.
type Limits struct {
	// The maximum number of pending nodes on each close stack. Exceeding it
	// reports ErrNestingTooDeep.
	MaxDepth int

	// The maximum number of properties, and of values, in a single node.
	// Exceeding it reports ErrTooManyEntries.
	MaxEntries int
}

// Parser is a streaming parser for KDL. Each call to Next consumes enough
// input to produce one Event.
//
// The parser tracks open nodes on two stacks: one for nodes that will be
// closed by a terminator (";", newline, or end of input), and one for nodes
// that will be closed by the "}" of their child block. Every NodeOpen event
// is matched by exactly one close event, in LIFO order.
type Parser struct {
	src TokenSource
	lim Limits

	tok  lex.Token // lookahead, if full
	full bool
	end  int // end offset of the last token consumed

	open  store.Stack[pending] // nodes awaiting a terminator
	block store.Stack[pending] // nodes awaiting "}"
}

// pending is an entry on a close stack.
type pending struct {
	name  String
	depth int // number of open blocks when the node was opened
}

// NewParser constructs a new Parser that reads the KDL document in text.
func NewParser(text string) *Parser { return NewParserWithSource(lex.New(mem.S(text))) }

// NewParserBytes constructs a new Parser that reads the KDL document in text.
// The caller must not modify text while the parser or its events are in use.
func NewParserBytes(text []byte) *Parser { return NewParserWithSource(lex.New(mem.B(text))) }

// NewParserWithSource constructs a new Parser that consumes tokens from src.
func NewParserWithSource(src TokenSource) *Parser {
	p := &Parser{src: src}
	p.SetLimits(Limits{})
	return p
}

// SetLimits configures the storage limits of p. It must be called before the
// first call to Next; it discards any pending nodes.
func (p *Parser) SetLimits(lim Limits) {
	p.lim = lim
	p.open = store.NewStack[pending](lim.MaxDepth)
	p.block = store.NewStack[pending](lim.MaxDepth)
}

// Depth reports the number of nodes that have been opened and not yet closed.
func (p *Parser) Depth() int { return p.open.Len() + p.block.Len() }

func (p *Parser) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		if err, ok := serr.(*SyntaxError); ok {
			*errp = err
			return
		}
		panic(serr)
	}
}

// Next returns the next event from the input. It returns io.EOF when the
// input has been fully consumed and every open node has been closed. Any
// other error has concrete type *SyntaxError.
//
// Errors are not recovered: the parser does not resynchronize. A caller may
// continue to call Next after an error, but the position of the parser is not
// guaranteed to be at the start of a node, and on most paths the offending
// token has not been consumed.
func (p *Parser) Next() (_ Event, err error) {
	defer p.recoverParseError(&err)

	for {
		tok, ok := p.peek()
		if !ok {
			return p.endOfInput()
		}
		switch tok.Kind {
		case lex.BlockClose:
			// A "}" may also end the last node in the block it closes. If so,
			// close that node first and leave the "}" for the next call.
			if top, ok := p.open.Top(); ok && top.depth == p.block.Len() {
				p.open.Pop()
				return closeEvent(NodeClose, top, tok.Span), nil
			}
			p.advance()
			top, ok := p.block.Pop()
			if !ok {
				p.syntaxError(tok.Span, ErrMismatchedNodeClosing)
			}
			return closeEvent(BracketedNodeClose, top, tok.Span), nil

		case lex.Semicolon:
			p.advance()
			top, ok := p.open.Pop()
			if !ok {
				p.syntaxError(tok.Span, ErrMismatchedNodeClosing)
			}
			return closeEvent(NodeClose, top, tok.Span), nil

		case lex.Newline:
			// Newlines are optional separators: a newline with no node to
			// close is not an error, unlike ";" and "}".
			p.advance()
			if top, ok := p.open.Pop(); ok {
				return closeEvent(NodeClose, top, tok.Span), nil
			}

		case lex.SlashDash:
			p.advance()
			p.skipNode()

		default:
			return p.openNode(), nil
		}
	}
}

// All returns a sequence of the remaining events from p. The sequence ends
// at the end of the input, or after the first error.
func (p *Parser) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := p.Next()
			if err == io.EOF {
				return
			} else if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// endOfInput closes the remaining terminated nodes, one per call.
func (p *Parser) endOfInput() (Event, error) {
	at := lex.Span{Pos: p.end, End: p.end}
	if top, ok := p.open.Pop(); ok {
		return closeEvent(NodeClose, top, at), nil
	}
	if top, ok := p.block.Pop(); ok {
		p.syntaxError(at, fmt.Errorf("%w: unclosed block for node %q", ErrMismatchedNodeClosing, top.name))
	}
	return Event{}, io.EOF
}

// openNode parses a node and records it on the appropriate close stack.
func (p *Parser) openNode() Event {
	ev := p.parseNode(false)
	stk := p.open
	if ev.HasChildren {
		stk = p.block
	}
	if err := stk.Push(pending{name: ev.Name, depth: p.block.Len()}); err != nil {
		p.syntaxError(ev.Span, ErrNestingTooDeep)
	}
	return ev
}

// skipNode parses and discards a node, including its child block and a
// following ";" if there is one.
func (p *Parser) skipNode() {
	if ev := p.parseNode(true); ev.HasChildren {
		p.skipBlock()
	}
	p.skipIf(lex.Semicolon)
}

// parseNode parses a node name and its contents, up to and including the "{"
// of its child block, or up to but not including its terminator.
// If discard is true the node is being elided, and its entries are checked
// for syntax but not recorded.
func (p *Parser) parseNode(discard bool) Event {
	tok, ok := p.peek()
	if !ok {
		p.syntaxError(p.endSpan(), ErrNotANode)
	} else if tok.Kind != lex.Ident && !tok.Kind.IsString() {
		p.syntaxError(tok.Span, ErrNotANode)
	}
	p.advance()

	ev := Event{Kind: NodeOpen, Name: stringOf(tok), Span: tok.Span}
	props := store.NewSeq[Property](p.lim.MaxEntries)
	values := store.NewSeq[TypedValue](p.lim.MaxEntries)
	var elide bool // whether "/-" applies to the next item

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}
		switch tok.Kind {
		case lex.BlockOpen:
			p.advance()
			if elide {
				p.skipBlock()
				elide = false
				continue
			}
			p.skipIf(lex.Newline)
			ev.HasChildren = true

		case lex.Backslash:
			p.advance()
			p.skipIf(lex.Newline)
			continue

		case lex.Newline, lex.Semicolon, lex.BlockClose:
			// The node ends here; the terminator is left for Next.

		case lex.Ident, lex.PlainString, lex.EscapedString:
			p.advance()
			if next, ok := p.peek(); ok && next.Kind == lex.Equals {
				p.advance()
				prop := Property{Key: stringOf(tok), Value: p.parseValue(tok, ErrIncompleteProperty)}
				if !elide && !discard {
					p.checkEntries(props.Add(prop), tok.Span)
				}
			} else if tok.Kind != lex.Ident && !elide && !discard {
				// A bare identifier not followed by "=" contributes nothing.
				p.checkEntries(values.Add(TypedValue{Value: Str(stringOf(tok))}), tok.Span)
			}
			elide = false
			continue

		case lex.TypeAnnot, lex.Integer, lex.Float, lex.True, lex.False, lex.Null:
			tv := p.parseValue(tok, ErrNotANode)
			if !elide && !discard {
				p.checkEntries(values.Add(tv), tok.Span)
			}
			elide = false
			continue

		case lex.SlashDash:
			p.advance()
			elide = true
			continue

		default:
			p.syntaxError(tok.Span, ErrNotANode)
		}
		break
	}
	ev.Props = props.Slice()
	ev.Values = values.Slice()
	return ev
}

// parseValue consumes a value token, optionally preceded by a type
// annotation. If no value is present, it reports missing; prev is the token
// before the expected value.
func (p *Parser) parseValue(prev lex.Token, missing error) TypedValue {
	var tv TypedValue
	tok, ok := p.peek()
	if ok && tok.Kind == lex.TypeAnnot {
		p.advance()
		tv.Type = tok.Text
		missing, prev = ErrTypeDescriptorWithNoValue, tok
		tok, ok = p.peek()
	}
	if !ok {
		p.syntaxError(prev.Span, missing)
	} else if !tok.Kind.IsValue() {
		p.syntaxError(tok.Span, missing)
	}
	p.advance()
	tv.Value = valueOf(tok)
	return tv
}

// skipBlock discards tokens up to and including the "}" that matches a "{"
// already consumed. Nested blocks are skipped entirely.
func (p *Parser) skipBlock() {
	for depth := 1; depth > 0; {
		tok, ok := p.peek()
		if !ok {
			p.syntaxError(p.endSpan(), fmt.Errorf("%w: unclosed block", ErrMismatchedNodeClosing))
		}
		p.advance()
		switch tok.Kind {
		case lex.BlockOpen:
			depth++
		case lex.BlockClose:
			depth--
		}
	}
}

// peek returns the next token without consuming it. It reports false at the
// end of input.
func (p *Parser) peek() (lex.Token, bool) {
	if !p.full {
		tok, err := p.src.Next()
		if err == io.EOF {
			return lex.Token{}, false
		} else if err != nil {
			p.end = tok.Span.End
			p.syntaxError(tok.Span, err)
		}
		p.tok, p.full = tok, true
	}
	return p.tok, true
}

// advance consumes the lookahead token.
func (p *Parser) advance() {
	p.full = false
	p.end = p.tok.Span.End
}

// skipIf consumes the next token if it has the given kind.
func (p *Parser) skipIf(kind lex.Kind) {
	if tok, ok := p.peek(); ok && tok.Kind == kind {
		p.advance()
	}
}

func (p *Parser) endSpan() lex.Span { return lex.Span{Pos: p.end, End: p.end} }

func (p *Parser) checkEntries(err error, span lex.Span) {
	if err != nil {
		p.syntaxError(span, ErrTooManyEntries)
	}
}

func (p *Parser) syntaxError(span lex.Span, err error) {
	serr := &SyntaxError{Span: span, Err: err}
	if pos, ok := p.src.(Positioner); ok {
		serr.Location = pos.LineCol(span.Pos)
	}
	panic(serr)
}

func closeEvent(kind EventKind, node pending, span lex.Span) Event {
	return Event{Kind: kind, Name: node.name, Span: span}
}

// stringOf converts a string or identifier token to a String.
func stringOf(tok lex.Token) String {
	if tok.Kind == lex.EscapedString {
		return Escaped(tok.Text)
	}
	return Escapeless(tok.Text)
}

// valueOf converts a value token to a Value.
// Precondition: tok.Kind.IsValue().
func valueOf(tok lex.Token) Value {
	switch tok.Kind {
	case lex.Integer:
		return Int(tok.Int64())
	case lex.Float:
		return Float(tok.Float64())
	case lex.True:
		return Bool(true)
	case lex.False:
		return Bool(false)
	case lex.Null:
		return Null()
	default:
		return Str(stringOf(tok))
	}
}
