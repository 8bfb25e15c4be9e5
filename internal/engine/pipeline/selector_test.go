package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports/mocks"
	"go.trai.ch/polyvenv/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const (
	projectRoot = "/work/project"
	venvPath    = "/work/project/.venv"
)

func TestSelector_AlreadyBound(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockEnvironmentManager(ctrl)
	manager.EXPECT().Bound(gomock.Any(), venvPath).
		Return(&domain.Binding{Interpreter: runtime312.ExecutablePath, Version: "3.12.4"}, nil)

	state := domain.NewEnvironmentState(nil)
	handle, err := pipeline.NewSelector(manager).Select(context.Background(), state, runtime312, projectRoot, venvPath, false)
	require.NoError(t, err)

	assert.Equal(t, domain.ManagedEnvironmentHandle{
		ProjectRoot: projectRoot,
		Path:        venvPath,
		Interpreter: runtime312.ExecutablePath,
		Runtime:     "3.12",
	}, handle)

	v, _ := state.Get(domain.VirtualEnvVar)
	assert.Equal(t, venvPath, v)
	assert.Equal(t, "3.12", state.Owner(domain.VirtualEnvVar))
}

func TestSelector_BindsWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockEnvironmentManager(ctrl)

	state := domain.NewEnvironmentState([]string{"PATH=/usr/bin"})

	gomock.InOrder(
		manager.EXPECT().Bound(gomock.Any(), venvPath).Return(nil, nil),
		manager.EXPECT().Bind(gomock.Any(), venvPath, runtime312, []string{"PATH=/usr/bin"}).Return(nil),
	)

	handle, err := pipeline.NewSelector(manager).Select(context.Background(), state, runtime312, projectRoot, venvPath, false)
	require.NoError(t, err)
	assert.False(t, handle.Rebound)
	assert.True(t, state.Has(domain.VirtualEnvVar))
}

func TestSelector_ConflictWithoutForce(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockEnvironmentManager(ctrl)
	manager.EXPECT().Bound(gomock.Any(), venvPath).
		Return(&domain.Binding{Interpreter: runtime311.ExecutablePath}, nil)

	state := domain.NewEnvironmentState(nil)
	_, err := pipeline.NewSelector(manager).Select(context.Background(), state, runtime312, projectRoot, venvPath, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBindingConflict)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, runtime311.ExecutablePath, zErr.Metadata()["bound"])
	assert.Equal(t, runtime312.ExecutablePath, zErr.Metadata()["requested"])

	assert.False(t, state.Has(domain.VirtualEnvVar))
}

func TestSelector_ForceRebinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockEnvironmentManager(ctrl)

	gomock.InOrder(
		manager.EXPECT().Bound(gomock.Any(), venvPath).
			Return(&domain.Binding{Interpreter: runtime311.ExecutablePath}, nil),
		manager.EXPECT().Discard(gomock.Any(), venvPath).Return(nil),
		manager.EXPECT().Bind(gomock.Any(), venvPath, runtime312, gomock.Any()).Return(nil),
	)

	handle, err := pipeline.NewSelector(manager).Select(
		context.Background(), domain.NewEnvironmentState(nil), runtime312, projectRoot, venvPath, true)
	require.NoError(t, err)
	assert.True(t, handle.Rebound)
	assert.Equal(t, runtime312.ExecutablePath, handle.Interpreter)
}

func TestSelector_ErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")

	t.Run("bound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		manager := mocks.NewMockEnvironmentManager(ctrl)
		manager.EXPECT().Bound(gomock.Any(), venvPath).Return(nil, boom)

		_, err := pipeline.NewSelector(manager).Select(
			context.Background(), domain.NewEnvironmentState(nil), runtime312, projectRoot, venvPath, false)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("discard", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		manager := mocks.NewMockEnvironmentManager(ctrl)
		manager.EXPECT().Bound(gomock.Any(), venvPath).
			Return(&domain.Binding{Interpreter: runtime311.ExecutablePath}, nil)
		manager.EXPECT().Discard(gomock.Any(), venvPath).Return(boom)

		_, err := pipeline.NewSelector(manager).Select(
			context.Background(), domain.NewEnvironmentState(nil), runtime312, projectRoot, venvPath, true)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("bind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		manager := mocks.NewMockEnvironmentManager(ctrl)
		manager.EXPECT().Bound(gomock.Any(), venvPath).Return(nil, nil)
		manager.EXPECT().Bind(gomock.Any(), venvPath, runtime312, gomock.Any()).Return(boom)

		state := domain.NewEnvironmentState(nil)
		_, err := pipeline.NewSelector(manager).Select(context.Background(), state, runtime312, projectRoot, venvPath, false)
		assert.ErrorIs(t, err, boom)
		assert.False(t, state.Has(domain.VirtualEnvVar))
	})
}
