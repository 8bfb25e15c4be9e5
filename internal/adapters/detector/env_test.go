package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/polyvenv/internal/adapters/detector"
)

func probe(tty bool, env map[string]string) detector.Probe {
	return detector.Probe{
		IsTerminal: func(int) bool { return tty },
		Getenv:     func(key string) string { return env[key] },
		Fd:         2,
	}
}

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name string
		tty  bool
		env  map[string]string
		want detector.OutputMode
	}{
		{name: "terminal", tty: true, want: detector.ModePretty},
		{name: "pipe outside ci", tty: false, want: detector.ModePretty},
		{name: "ci pipe", tty: false, env: map[string]string{"CI": "true"}, want: detector.ModeJSON},
		{name: "ci numeric", tty: false, env: map[string]string{"CI": "1"}, want: detector.ModeJSON},
		{name: "ci terminal", tty: true, env: map[string]string{"CI": "true"}, want: detector.ModePretty},
		{name: "ci disabled", tty: false, env: map[string]string{"CI": "false"}, want: detector.ModePretty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.DetectEnvironment(probe(tt.tty, tt.env)))
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		flag string
		auto detector.OutputMode
		want detector.OutputMode
	}{
		{flag: "", auto: detector.ModeJSON, want: detector.ModeJSON},
		{flag: "auto", auto: detector.ModePretty, want: detector.ModePretty},
		{flag: "pretty", auto: detector.ModeJSON, want: detector.ModePretty},
		{flag: "json", auto: detector.ModePretty, want: detector.ModeJSON},
		{flag: "bogus", auto: detector.ModePretty, want: detector.ModePretty},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveMode(tt.auto, tt.flag))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "pretty", detector.ModePretty.String())
	assert.Equal(t, "json", detector.ModeJSON.String())
}
