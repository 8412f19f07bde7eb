package blend

import (
	"testing"

	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectorAt(t *testing.T, reg *registry.Registry, name string, x, z float64) *registry.Projector {
	t.Helper()
	_, err := reg.CreateNamed(name)
	require.NoError(t, err)
	p, _ := reg.Get(name)
	p.Position = model.Vec3{X: x, Z: z}
	p.Aspect = model.AspectRatio{W: 2, H: 1} // 2m x 1m images
	return p
}

func TestCompute_Overlapping(t *testing.T) {
	reg := registry.New()
	a := projectorAt(t, reg, "A", 0, 0)
	b := projectorAt(t, reg, "B", 1.5, 0)

	r, ok, err := Compute(a, b)
	require.NoError(t, err)
	require.True(t, ok)

	assert.InDelta(t, 0.5, r.Left, 1e-9)
	assert.InDelta(t, 1.0, r.Right, 1e-9)
	assert.InDelta(t, -0.5, r.Bottom, 1e-9)
	assert.InDelta(t, 0.5, r.Top, 1e-9)
	assert.InDelta(t, 0.5, r.Width(), 1e-9)
	assert.InDelta(t, 0.5, r.Area, 1e-9)
}

func TestCompute_Disjoint(t *testing.T) {
	reg := registry.New()
	a := projectorAt(t, reg, "A", 0, 0)
	b := projectorAt(t, reg, "B", 5, 0)

	_, ok, err := Compute(a, b)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompute_SharedEdge(t *testing.T) {
	reg := registry.New()
	a := projectorAt(t, reg, "A", 0, 0)
	b := projectorAt(t, reg, "B", 2, 0)

	r, ok, err := Compute(a, b)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 0, r.Area, 1e-12)
	assert.InDelta(t, 0, r.Width(), 1e-12)
}

func TestFootprint(t *testing.T) {
	reg := registry.New()
	a := projectorAt(t, reg, "A", 1, 2)
	assert.InDelta(t, 2.0, Footprint(a).AsGeometry().Area(), 1e-9)
}

func TestFactor(t *testing.T) {
	assert.Equal(t, 1.0, Factor(-1, 0, 1))
	assert.Equal(t, 0.0, Factor(2, 0, 1))
	assert.InDelta(t, 0.5, Factor(0.5, 0, 1), 1e-12)
	assert.InDelta(t, 0.8535533905932737, Factor(0.25, 0, 1), 1e-12)
}
