package parser

// Frame is the structural construct that directly encloses the directives
// being parsed.
type Frame int

const (
	FrameProgram Frame = iota
	FramePackage
	FrameClass
	FrameInterface
	FrameEnum
	FrameConstructorBlock
	FrameBlock
)

func (f Frame) String() string {
	switch f {
	case FrameProgram:
		return "program"
	case FramePackage:
		return "package"
	case FrameClass:
		return "class"
	case FrameInterface:
		return "interface"
	case FrameEnum:
		return "enum"
	case FrameConstructorBlock:
		return "constructor"
	}
	return "block"
}

type labelTarget struct {
	// loop is set when the label directly encloses an iteration statement.
	loop Statement
}

// parseContext is passed by value and never modified in place; every
// transition returns a copy. The label table is copied on write.
type parseContext struct {
	frame          Frame
	inFunction     bool
	className      string
	labels         map[string]labelTarget
	breakTarget    Statement
	continueTarget Statement
	pending        []string
}

func newProgramContext() parseContext {
	return parseContext{frame: FrameProgram}
}

// withFrame enters a package, class, interface or enum body. Label and
// jump targets do not cross it.
func (c parseContext) withFrame(frame Frame, className string) parseContext {
	return parseContext{frame: frame, className: className}
}

// withFunction enters a function body.
func (c parseContext) withFunction(constructor bool) parseContext {
	frame := FrameBlock
	if constructor {
		frame = FrameConstructorBlock
	}
	return parseContext{frame: frame, inFunction: true, className: c.className}
}

// withBlock enters a nested statement block or statement body.
func (c parseContext) withBlock() parseContext {
	n := c
	if n.frame != FrameConstructorBlock {
		n.frame = FrameBlock
	}
	n.pending = nil
	return n
}

// withoutPending is used for statements that cannot take a pending label.
func (c parseContext) withoutPending() parseContext {
	if c.pending == nil {
		return c
	}
	n := c
	n.pending = nil
	return n
}

func (c parseContext) withLabel(name string) parseContext {
	n := c
	n.labels = make(map[string]labelTarget, len(c.labels)+1)
	for k, v := range c.labels {
		n.labels[k] = v
	}
	n.labels[name] = labelTarget{}
	n.pending = append(append([]string(nil), c.pending...), name)
	return n
}

// withLoop makes loop the target of unlabeled break and continue and binds
// every pending label to it.
func (c parseContext) withLoop(loop Statement) parseContext {
	n := c.withBlock()
	n.breakTarget = loop
	n.continueTarget = loop
	if len(c.pending) > 0 {
		n.labels = make(map[string]labelTarget, len(c.labels))
		for k, v := range c.labels {
			n.labels[k] = v
		}
		for _, name := range c.pending {
			t := n.labels[name]
			t.loop = loop
			n.labels[name] = t
		}
	}
	return n
}

func (c parseContext) withSwitch(stmt Statement) parseContext {
	n := c.withBlock()
	n.breakTarget = stmt
	return n
}

func (c parseContext) label(name string) (labelTarget, bool) {
	t, ok := c.labels[name]
	return t, ok
}

// allowsStatic reports whether static members may be declared here.
func (c parseContext) allowsStatic() bool {
	return c.frame == FrameClass || c.frame == FrameEnum
}

// atTopLevel reports whether type definitions may appear here.
func (c parseContext) atTopLevel() bool {
	return c.frame == FrameProgram || c.frame == FramePackage
}
