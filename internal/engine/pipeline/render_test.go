package pipeline_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/engine/pipeline"
)

func sampleDescriptor() domain.ActivationDescriptor {
	return domain.ActivationDescriptor{
		Variables: map[string]string{
			"HOME":               "/home/dev",
			"PATH":               "/work/project/.venv/bin:/usr/bin",
			"QUOTED":             "it's here",
			domain.VirtualEnvVar: "/work/project/.venv",
		},
		Unset:      []string{"PYTHONHOME", "PYTHONPATH"},
		Executable: "/work/project/.venv/bin/python",
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		shell  string
		golden string
	}{
		{shell: "sh", golden: "activate_sh"},
		{shell: "bash", golden: "activate_sh"},
		{shell: "zsh", golden: "activate_sh"},
		{shell: "fish", golden: "activate_fish"},
		{shell: "json", golden: "activate_json"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := pipeline.Render(sampleDescriptor(), tt.shell)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.golden, []byte(out))
		})
	}
}

func TestRender_JSONWithoutUnset(t *testing.T) {
	d := sampleDescriptor()
	d.Unset = nil

	out, err := pipeline.Render(d, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"unset": []`)
}

func TestRender_UnknownShell(t *testing.T) {
	_, err := pipeline.Render(sampleDescriptor(), "powershell")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownShell)
}

func TestCheckShell(t *testing.T) {
	for _, shell := range []string{"", "sh", "bash", "zsh", "fish", "json"} {
		require.NoError(t, pipeline.CheckShell(shell), shell)
	}
	assert.ErrorIs(t, pipeline.CheckShell("tcsh"), domain.ErrUnknownShell)
}
