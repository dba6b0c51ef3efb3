package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/Carmen-Shannon/oxy-graph/engine/device/recorder"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScene_RequiresDevice(t *testing.T) {
	assert.Panics(t, func() { NewScene("nil", nil) })
}

func TestScene_DrawUsesCameraProjection(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)
	sn.AddChild(NewColorNode(red, WithChildren(newSquare(t, rec, sn, "sq"))))
	cam := camera.NewOrthoCamera(800, 600)

	s := NewScene("shapes", rec, WithActive(true), WithRoot(sn), WithCamera(cam))
	require.NoError(t, s.Draw())

	draws := rec.Draws()
	require.Len(t, draws, 1)
	pv, ok := draws[0].Matrix(sn.Handles().Get(shader.SlotProjectionView))
	require.True(t, ok)
	assert.True(t, pv.ApproxEqual(cam.ProjectionView(), 1e-6))

	stats := s.Stats()
	assert.Equal(t, 3, stats.Nodes)
	assert.Equal(t, 1, stats.DrawCalls)
	assert.Equal(t, 6, stats.Vertices)
	assert.NoError(t, s.DeviceError())
}

func TestScene_FixedProjectionView(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)
	sn.AddChild(newSquare(t, rec, sn, "sq"))
	pv := common.Ortho2D(-1, 1, -1, 1)

	s := NewScene("fixed", rec, WithRoot(sn), WithProjectionView(pv))
	require.NoError(t, s.Draw())
	assert.True(t, s.ProjectionView().ApproxEqual(pv, 1e-6))

	got, ok := rec.Draws()[0].Matrix(sn.Handles().Get(shader.SlotProjectionView))
	require.True(t, ok)
	assert.True(t, got.ApproxEqual(pv, 1e-6))
}

func TestScene_UnbalancedStackReported(t *testing.T) {
	rec := recorder.New()
	s := NewScene("leaky", rec, WithRoot(newLeakyNode(2, false)))

	err := s.Draw()
	require.ErrorIs(t, err, ErrUnbalancedTransformStack)
	assert.Contains(t, err.Error(), "depth 2")

	// The next frame starts from an empty stack.
	s.SetRoot(NewSceneNode())
	assert.NoError(t, s.Draw())
}

func TestScene_LeakedBlendDisabled(t *testing.T) {
	rec := recorder.New()
	s := NewScene("blend", rec, WithRoot(newLeakyNode(0, true)))

	require.NoError(t, s.Draw())
	assert.False(t, rec.Blending())
	assert.Len(t, rec.CallsOf("DisableBlend"), 1)
}

func TestScene_DeviceErrorRecorded(t *testing.T) {
	rec := recorder.New()
	s := NewScene("errors", rec, WithRoot(NewSceneNode()))
	boom := errors.New("boom")
	rec.PushError(boom)

	require.NoError(t, s.Draw())
	assert.ErrorIs(t, s.DeviceError(), boom)

	require.NoError(t, s.Draw())
	assert.NoError(t, s.DeviceError())
}

func TestScene_SetRootReturnsPrevious(t *testing.T) {
	rec := recorder.New()
	first := NewSceneNode(WithName("first"))
	s := NewScene("roots", rec, WithRoot(first))

	prev := s.SetRoot(NewSceneNode(WithName("second")))
	assert.Same(t, first, prev)
	assert.Equal(t, "second", s.Root().Name())
}

func TestScene_Accessors(t *testing.T) {
	rec := recorder.New()
	s := NewScene("a", rec)
	assert.False(t, s.Active())
	assert.Nil(t, s.Root())
	assert.Nil(t, s.Camera())
	assert.Same(t, rec, s.Device())
	assert.NoError(t, s.Draw())

	s.SetName("b")
	s.SetActive(true)
	cam := camera.NewPerspectiveCamera()
	s.SetCamera(cam)
	assert.Equal(t, "b", s.Name())
	assert.True(t, s.Active())
	assert.Same(t, cam, s.Camera())
}

func TestScene_CloseReleasesOnce(t *testing.T) {
	rec := recorder.New()
	sn := newShader(t, rec, shader.FlatColor)
	sn.AddChild(newSquare(t, rec, sn, "sq"))
	s := NewScene("closing", rec, WithRoot(sn))

	s.Close()
	s.Close()
	assert.Empty(t, rec.LiveBuffers())
	assert.Len(t, rec.CallsOf("DeleteProgram"), 1)

	rec.Reset()
	require.NoError(t, s.Draw())
	assert.Empty(t, rec.Draws())
}
