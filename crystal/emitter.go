package crystal

import (
	"strings"

	"github.com/teranos/tscr/errors"
)

// Emitter accumulates output lines at an indentation depth.
// Depth never goes below zero and every OpenBlock is paired with a CloseBlock.
type Emitter struct {
	lines []string
	depth int
	unit  string
}

// NewEmitter returns an emitter that indents by width spaces per level.
func NewEmitter(width int) *Emitter {
	return &Emitter{unit: strings.Repeat(" ", width)}
}

// Depth returns the current nesting level.
func (e *Emitter) Depth() int {
	return e.depth
}

// IndentAt returns the indentation prefix for the given depth.
func (e *Emitter) IndentAt(depth int) string {
	return strings.Repeat(e.unit, depth)
}

// WriteLine appends text at the current depth. Continuation lines of a
// multi-line text must already carry their absolute indentation.
func (e *Emitter) WriteLine(text string) {
	first, rest, multi := strings.Cut(text, "\n")
	e.lines = append(e.lines, e.IndentAt(e.depth)+first)
	if multi {
		e.lines = append(e.lines, strings.Split(rest, "\n")...)
	}
}

// Blank appends an empty line.
func (e *Emitter) Blank() {
	e.lines = append(e.lines, "")
}

func (e *Emitter) Push() {
	e.depth++
}

func (e *Emitter) Pop() {
	if e.depth == 0 {
		panic(errors.AssertionFailedf("emitter depth underflow"))
	}
	e.depth--
}

// OpenBlock writes a block header and indents what follows.
func (e *Emitter) OpenBlock(header string) {
	e.WriteLine(header)
	e.Push()
}

// CloseBlock dedents and writes the block terminator.
func (e *Emitter) CloseBlock() {
	e.Pop()
	e.WriteLine("end")
}

// String joins the accumulated lines without a trailing newline.
func (e *Emitter) String() string {
	return strings.Join(e.lines, "\n")
}
