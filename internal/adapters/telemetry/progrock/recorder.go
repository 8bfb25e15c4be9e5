// Package progrock records pipeline stages on a progrock tape.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/polyvenv/internal/core/ports"
)

// Recorder implements ports.Telemetry using the vito/progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu   sync.Mutex
	runs map[string]int
}

// New creates a new Recorder on an in-memory tape.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:    w,
		rec:  progrock.NewRecorder(w),
		runs: make(map[string]int),
	}
}

// Record starts a vertex named after the unit of work.
// Repeated names (a watch loop provisioning again) get distinct digests.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.mu.Lock()
	r.runs[name]++
	seq := r.runs[name]
	r.mu.Unlock()

	d := digest.FromString(fmt.Sprintf("%s#%d", name, seq))
	vertex := &Vertex{vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
