package progrock

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
	"go.trai.ch/polyvenv/internal/ui/output"
	"go.trai.ch/polyvenv/internal/ui/style"
)

// maxFailureLines bounds the output replayed below a failed vertex.
const maxFailureLines = 15

type vertexStatus int

const (
	statusRunning vertexStatus = iota
	statusCompleted
	statusCached
	statusFailed
)

type vertexState struct {
	name    string
	status  vertexStatus
	output  []string
	partial string
}

// Printer is a progrock.Writer that prints one line per finished vertex.
// A failed vertex is followed by the tail of its output.
type Printer struct {
	mu       sync.Mutex
	out      *termenv.Output
	vertices map[string]*vertexState
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		out:      output.New(w),
		vertices: make(map[string]*vertexState),
	}
}

// WriteStatus processes one tape update.
func (p *Printer) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, log := range update.Logs {
		if state, ok := p.vertices[log.Vertex]; ok {
			state.appendOutput(log.Data)
		}
	}

	for _, v := range update.Vertexes {
		state, ok := p.vertices[v.Id]
		if !ok {
			state = &vertexState{name: v.Name, status: statusRunning}
			p.vertices[v.Id] = state
		}
		if state.status != statusRunning || v.Completed == nil {
			continue
		}

		switch {
		case v.Error != nil:
			state.status = statusFailed
		case v.Cached:
			state.status = statusCached
		default:
			state.status = statusCompleted
		}

		if err := p.printVertex(state); err != nil {
			return err
		}
	}

	return nil
}

// Close implements progrock.Writer.
func (p *Printer) Close() error {
	return nil
}

func (p *Printer) printVertex(state *vertexState) error {
	var icon string
	var color termenv.Color
	switch state.status {
	case statusFailed:
		icon, color = style.Cross, termenv.RGBColor(string(style.Red))
	case statusCached:
		icon, color = style.Tilde, termenv.RGBColor(string(style.Slate))
	default:
		icon, color = style.Check, termenv.RGBColor(string(style.Green))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.out.String(icon).Foreground(color), state.name)

	if state.status == statusFailed {
		lines := state.output
		if state.partial != "" {
			lines = append(lines, state.partial)
		}
		if len(lines) > maxFailureLines {
			lines = lines[len(lines)-maxFailureLines:]
		}
		muted := termenv.RGBColor(string(style.Slate))
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", p.out.String(line).Foreground(muted))
		}
	}

	_, err := p.out.WriteString(b.String())
	return err
}

func (s *vertexState) appendOutput(data []byte) {
	text := s.partial + strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	s.partial = lines[len(lines)-1]
	s.output = append(s.output, lines[:len(lines)-1]...)
	if len(s.output) > maxFailureLines {
		s.output = s.output[len(s.output)-maxFailureLines:]
	}
}
