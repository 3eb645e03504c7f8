package parser

// State is a snapshot of every mutable cursor of a Parser and its Lexer.
// Restoring it truncates the append-only lists of the source unit back to
// the recorded lengths, which undoes a speculative parse.
type State struct {
	index int
	line  int
	mode  LexerMode
	token Token
	prev  Token

	lineStarts    int
	comments      int
	diagnostics   int
	invalidated   bool
	locations     int
	delimiters    int
	functionFlags int
	topFlags      functionFlags
	included      int
}

func (p *Parser) Snapshot() State {
	l := p.lexer
	s := p.source
	st := State{
		index:         l.index,
		line:          l.line,
		mode:          l.mode,
		token:         l.token,
		prev:          l.prev,
		lineStarts:    len(s.lineStarts),
		comments:      len(s.Comments),
		diagnostics:   len(s.Diagnostics),
		invalidated:   s.invalidated,
		locations:     len(p.locations),
		delimiters:    len(p.delimiters),
		functionFlags: len(p.functionFlags),
		included:      len(s.Included),
	}
	if n := len(p.functionFlags); n > 0 {
		st.topFlags = p.functionFlags[n-1]
	}
	return st
}

func (p *Parser) Restore(st State) {
	l := p.lexer
	s := p.source
	l.index = st.index
	l.line = st.line
	l.mode = st.mode
	l.token = st.token
	l.prev = st.prev
	s.lineStarts = s.lineStarts[:st.lineStarts]
	s.Comments = s.Comments[:st.comments]
	s.Diagnostics = s.Diagnostics[:st.diagnostics]
	s.invalidated = st.invalidated
	s.Included = s.Included[:st.included]
	p.locations = p.locations[:st.locations]
	p.delimiters = p.delimiters[:st.delimiters]
	p.functionFlags = p.functionFlags[:st.functionFlags]
	if n := len(p.functionFlags); n > 0 {
		p.functionFlags[n-1] = st.topFlags
	}
}

// stackDepths records only the parser stacks; recovery boundaries unwind to
// it without moving the lexer.
type stackDepths struct {
	locations     int
	delimiters    int
	functionFlags int
}

func (p *Parser) depths() stackDepths {
	return stackDepths{
		locations:     len(p.locations),
		delimiters:    len(p.delimiters),
		functionFlags: len(p.functionFlags),
	}
}

func (p *Parser) unwind(d stackDepths) {
	p.locations = p.locations[:d.locations]
	p.delimiters = p.delimiters[:d.delimiters]
	p.functionFlags = p.functionFlags[:d.functionFlags]
}
