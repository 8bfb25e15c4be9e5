package progrock_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	rec "go.trai.ch/polyvenv/internal/adapters/telemetry/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func ptr(s string) *string { return &s }

func TestPrinter_PrintsFinishedVertices(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	printer := rec.NewPrinter(&buf)
	now := timestamppb.New(time.Now())

	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "enumerate runtimes"},
			{Id: "2", Name: "bind managed environment"},
		},
	}))
	assert.Empty(t, buf.String())

	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "enumerate runtimes", Completed: now},
			{Id: "2", Name: "bind managed environment", Completed: now, Cached: true},
		},
	}))

	assert.Equal(t, "✓ enumerate runtimes\n~ bind managed environment\n", buf.String())

	// Repeated completions are printed once.
	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "1", Name: "enumerate runtimes", Completed: now}},
	}))
	assert.Equal(t, "✓ enumerate runtimes\n~ bind managed environment\n", buf.String())
}

func TestPrinter_FailedVertexReplaysOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	printer := rec.NewPrinter(&buf)

	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "s", Name: "synchronize packages"}},
	}))
	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Logs: []*progrock.VertexLog{
			{Vertex: "s", Data: []byte("Collecting b==2.0\r\nERROR: No matching distribution")},
			{Vertex: "unknown", Data: []byte("ignored\n")},
		},
	}))
	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{
			Id:        "s",
			Name:      "synchronize packages",
			Completed: timestamppb.New(time.Now()),
			Error:     ptr("dependency synchronization failed"),
		}},
	}))

	assert.Equal(t,
		"✗ synchronize packages\n  Collecting b==2.0\n  ERROR: No matching distribution\n",
		buf.String(),
	)
}

func TestPrinter_FailureOutputIsBounded(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	printer := rec.NewPrinter(&buf)

	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "s", Name: "s"}},
	}))

	var data bytes.Buffer
	for range 40 {
		data.WriteString("line\n")
	}
	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Logs: []*progrock.VertexLog{{Vertex: "s", Data: data.Bytes()}},
	}))
	require.NoError(t, printer.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "s", Name: "s", Completed: timestamppb.Now(), Error: ptr("boom")}},
	}))

	assert.Equal(t, 16, bytes.Count(buf.Bytes(), []byte("\n")))
}
