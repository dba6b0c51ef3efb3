package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/Carmen-Shannon/oxy-graph/engine/config"
	"github.com/Carmen-Shannon/oxy-graph/engine/device/recorder"
	"github.com/Carmen-Shannon/oxy-graph/engine/scene"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
	"github.com/Carmen-Shannon/oxy-graph/engine/shapes"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareScene builds an active scene drawing one colored square.
func squareScene(t *testing.T, rec *recorder.Recorder, name string) (scene.Scene, scene.ShaderNode) {
	t.Helper()
	sn, err := scene.NewShaderNodeFromSource(rec, shader.FlatColor)
	require.NoError(t, err)
	sq, err := scene.NewRegularNGonNode(rec, sn.Handles(), shapes.NGonSpec{Sides: 4, Radius: 1})
	require.NoError(t, err)
	color := scene.NewColorNode(common.Color4{R: 1, A: 1})
	color.AddChild(sq)
	sn.AddChild(color)
	return scene.NewScene(name, rec, scene.WithActive(true), scene.WithRoot(sn)), sn
}

// failingScene wraps a real scene and reports err from every Draw.
type failingScene struct {
	scene.Scene
	err   error
	draws int
}

func (s *failingScene) Draw() error {
	s.draws++
	return s.err
}

func TestFrame_RequiresSurfaceAndDevice(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.Frame(), ErrNotConfigured)
	assert.ErrorIs(t, e.Run(), ErrNotConfigured)
}

func TestRun_DrawsScenesInKeyOrder(t *testing.T) {
	rec := recorder.New()
	surface := window.NewHeadless(200, 100, 5)
	back, backShader := squareScene(t, rec, "back")
	front, frontShader := squareScene(t, rec, "front")
	hidden, _ := squareScene(t, rec, "hidden")
	hidden.SetActive(false)

	e := NewEngine(
		WithSurface(surface),
		WithDevice(rec),
		WithDrawRate(1000),
		WithScene(10, front),
		WithScene(-1, back),
		WithScene(5, hidden),
	)
	require.NoError(t, e.Run())

	assert.Equal(t, uint64(5), e.Frames())
	assert.Equal(t, 5, surface.Frames())
	assert.Len(t, rec.CallsOf("Clear"), 5)
	assert.NotEmpty(t, rec.CallsOf("Viewport"))

	draws := rec.Draws()
	require.Len(t, draws, 10)
	for i := 0; i < len(draws); i += 2 {
		assert.Equal(t, backShader.Program().Handle(), draws[i].Program)
		assert.Equal(t, frontShader.Program().Handle(), draws[i+1].Program)
	}

	stats := e.LastStats()
	assert.Equal(t, 2, stats.DrawCalls)
	assert.Equal(t, 12, stats.Vertices)
}

func TestFrame_CallbackOrder(t *testing.T) {
	rec := recorder.New()
	s, _ := squareScene(t, rec, "s")
	e := NewEngine(WithSurface(window.NewHeadless(10, 10, 0)), WithDevice(rec), WithScene(0, s))

	var order []string
	e.SetTickCallback(func(float32) {
		order = append(order, "tick")
		assert.Empty(t, rec.CallsOf("Draw"))
	})
	e.SetRenderCallback(func(float32) {
		order = append(order, "render")
		assert.Len(t, rec.CallsOf("Draw"), 1)
	})

	require.NoError(t, e.Frame())
	assert.Equal(t, []string{"tick", "render"}, order)
}

func TestRun_QuitStopsLoop(t *testing.T) {
	rec := recorder.New()
	e := NewEngine(WithSurface(window.NewHeadless(10, 10, 0)), WithDevice(rec), WithDrawRate(1000))

	ticks := 0
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks == 3 {
			e.Quit()
			e.Quit()
		}
	})
	require.NoError(t, e.Run())
	assert.Equal(t, 3, ticks)
	assert.Equal(t, uint64(3), e.Frames())
}

func TestResize_UpdatesViewportAndCameras(t *testing.T) {
	rec := recorder.New()
	surface := window.NewHeadless(100, 100, 0)
	s, _ := squareScene(t, rec, "s")
	cam := camera.NewOrthoCamera(1, 1)
	s.SetCamera(cam)

	e := NewEngine(WithSurface(surface), WithDevice(rec))
	e.AddScene(0, s)
	_, right, _, _ := cam.Bounds()
	assert.InDelta(t, 5, right, 1e-6)

	surface.Resize(200, 100)
	assert.Len(t, rec.CallsOf("Viewport"), 1)
	_, right, _, top := cam.Bounds()
	assert.InDelta(t, 10, right, 1e-5)
	assert.InDelta(t, 5, top, 1e-6)
}

func TestClose_ReleasesScenesAndSurface(t *testing.T) {
	rec := recorder.New()
	surface := window.NewHeadless(10, 10, 0)
	s, _ := squareScene(t, rec, "s")
	e := NewEngine(WithSurface(surface), WithDevice(rec), WithScene(0, s))

	require.NoError(t, e.Close())
	assert.Empty(t, rec.LiveBuffers())
	assert.False(t, surface.IsRunning())
	assert.NoError(t, e.Close())
}

func TestSceneRegistry(t *testing.T) {
	rec := recorder.New()
	s, _ := squareScene(t, rec, "s")
	e := NewEngine()
	e.AddScene(3, s)

	assert.Same(t, s, e.Scene(3))
	assert.Nil(t, e.Scene(4))

	scenes := e.Scenes()
	delete(scenes, 3)
	assert.NotNil(t, e.Scene(3))

	e.RemoveScene(3)
	assert.Empty(t, e.Scenes())
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.DrawsPerSecond = 45
	cfg.Render.ClearColor = common.Color4{R: 0.5, A: 1}
	cfg.Render.Profiling = true

	e := NewEngine(WithConfig(cfg)).(*engine)
	assert.Equal(t, 45, e.DrawRate())
	assert.Equal(t, cfg.Render.ClearColor, e.clearColor)
	assert.True(t, e.profilingEnabled)

	e.DisableProfiler()
	assert.False(t, e.profilingEnabled)
	e.SetDrawRate(0)
	assert.Equal(t, DefaultDrawRate, e.DrawRate())
}

func TestRun_DrawRateChangeAppliesToPacing(t *testing.T) {
	rec := recorder.New()
	e := NewEngine(WithSurface(window.NewHeadless(10, 10, 6)), WithDevice(rec), WithDrawRate(4))
	e.SetTickCallback(func(float32) { e.SetDrawRate(1000) })

	start := time.Now()
	require.NoError(t, e.Run())
	elapsed := time.Since(start)

	assert.Equal(t, uint64(6), e.Frames())
	assert.Equal(t, 1000, e.DrawRate())
	// Six frames at the original 4 per second would take 1.5s.
	assert.Less(t, elapsed, 750*time.Millisecond)
}

func TestRun_StopsOnUnbalancedTransformStack(t *testing.T) {
	rec := recorder.New()
	inner, _ := squareScene(t, rec, "leaky")
	leaky := &failingScene{
		Scene: inner,
		err:   fmt.Errorf("%w: scene %q finished at depth 1", scene.ErrUnbalancedTransformStack, "leaky"),
	}
	e := NewEngine(WithSurface(window.NewHeadless(10, 10, 5)), WithDevice(rec), WithDrawRate(1000), WithScene(0, leaky))

	err := e.Run()
	require.ErrorIs(t, err, scene.ErrUnbalancedTransformStack)
	assert.Equal(t, 1, leaky.draws)
	assert.Equal(t, uint64(1), e.Frames())
}

func TestRun_ContinuesPastOtherFrameErrors(t *testing.T) {
	rec := recorder.New()
	inner, _ := squareScene(t, rec, "flaky")
	flaky := &failingScene{Scene: inner, err: errors.New("transient")}
	e := NewEngine(WithSurface(window.NewHeadless(10, 10, 3)), WithDevice(rec), WithDrawRate(1000), WithScene(0, flaky))

	require.NoError(t, e.Run())
	assert.Equal(t, 3, flaky.draws)
	assert.Equal(t, uint64(3), e.Frames())
}
