package collection

import (
	"slices"
	"testing"

	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, projectors ...string) (*Store, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	for _, name := range projectors {
		_, err := reg.CreateNamed(name)
		require.NoError(t, err)
	}
	return New(reg), reg
}

func members(t *testing.T, s *Store, id string) []string {
	t.Helper()
	seq, err := s.Members(id)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestCreate(t *testing.T) {
	s, reg := newTestStore(t, "A", "B", "C")

	id, err := s.Create("Wall1", "A", "C")
	require.NoError(t, err)
	assert.Equal(t, "Wall1", id)

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "Wall1", active)
	assert.Equal(t, []string{"A", "C"}, members(t, s, "Wall1"))

	b, _ := reg.Get("B")
	assert.Empty(t, b.Collection)
}

func TestCreate_DuplicateName(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Create("Wall1")
	require.NoError(t, err)

	_, err = s.Create("Wall1")
	assert.ErrorIs(t, err, model.ErrDuplicateName)
	assert.Equal(t, 1, s.Len())

	_, err = s.Create("")
	assert.ErrorIs(t, err, model.ErrInvalidName)
}

func TestCreate_UnknownMemberChangesNothing(t *testing.T) {
	s, reg := newTestStore(t, "A")

	_, err := s.Create("Wall1", "A", "ghost")
	require.ErrorIs(t, err, model.ErrNotFound)

	assert.False(t, s.Has("Wall1"))
	a, _ := reg.Get("A")
	assert.Empty(t, a.Collection)
}

func TestDelete_CascadesMembership(t *testing.T) {
	s, reg := newTestStore(t, "A", "B", "C")
	_, _ = s.Create("Wall1", "A", "B")
	_, _ = s.Create("Wall2", "C")

	require.NoError(t, s.Delete("Wall1"))

	assert.Equal(t, []string{"Wall2"}, s.Names())
	for _, name := range []string{"A", "B"} {
		p, _ := reg.Get(name)
		assert.Empty(t, p.Collection, name)
	}
	c, _ := reg.Get("C")
	assert.Equal(t, "Wall2", c.Collection)

	_, err := s.Members("Wall1")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, s.Delete("Wall1"), model.ErrNotFound)
}

func TestDelete_ClampsActiveIndex(t *testing.T) {
	s, _ := newTestStore(t)
	_, _ = s.Create("One")
	_, _ = s.Create("Two")
	_, _ = s.Create("Three")
	assert.Equal(t, 2, s.ActiveIndex())

	require.NoError(t, s.Delete("Three"))
	assert.Equal(t, 1, s.ActiveIndex())

	require.NoError(t, s.SetActive(0))
	require.NoError(t, s.Delete("Two"))
	assert.Equal(t, 0, s.ActiveIndex())

	require.NoError(t, s.Delete("One"))
	assert.Equal(t, 0, s.ActiveIndex())
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestSetActive(t *testing.T) {
	s, _ := newTestStore(t)
	assert.ErrorIs(t, s.SetActive(0), model.ErrIndexOutOfRange)

	_, _ = s.Create("One")
	_, _ = s.Create("Two")
	require.NoError(t, s.SetActive(0))
	assert.ErrorIs(t, s.SetActive(2), model.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SetActive(-1), model.ErrIndexOutOfRange)
	assert.Equal(t, 0, s.ActiveIndex())
}

func TestMembers_DerivedFromRegistry(t *testing.T) {
	s, reg := newTestStore(t, "A", "B")
	_, _ = s.Create("Wall1")

	seq, err := s.Members("Wall1")
	require.NoError(t, err)
	assert.Empty(t, slices.Collect(seq))

	require.NoError(t, s.Assign("B", "Wall1"))
	assert.Equal(t, []string{"B"}, slices.Collect(seq), "same sequence reflects the new member")

	require.NoError(t, reg.Remove("B"))
	assert.Empty(t, slices.Collect(seq))
}

func TestAssign_Validates(t *testing.T) {
	s, reg := newTestStore(t, "A")
	_, _ = s.Create("Wall1")

	assert.ErrorIs(t, s.Assign("A", "Nope"), model.ErrNotFound)
	assert.ErrorIs(t, s.Assign("Ghost", "Wall1"), model.ErrNotFound)
	a, _ := reg.Get("A")
	assert.Empty(t, a.Collection)

	require.NoError(t, s.Assign("A", "Wall1"))
	assert.Equal(t, "Wall1", a.Collection)

	require.NoError(t, s.Unassign("A"))
	assert.Empty(t, a.Collection)
	assert.ErrorIs(t, s.Unassign("Ghost"), model.ErrNotFound)
}

func TestAssignToActive(t *testing.T) {
	s, _ := newTestStore(t, "A", "B")
	_, err := s.AssignToActive("A")
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)

	_, _ = s.Create("One")
	_, _ = s.Create("Two")
	require.NoError(t, s.SetActive(0))

	id, err := s.AssignToActive("A", "B")
	require.NoError(t, err)
	assert.Equal(t, "One", id)
	assert.Equal(t, []string{"A", "B"}, members(t, s, "One"))

	_, err = s.AssignToActive("A", "Ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProjectors(t *testing.T) {
	s, _ := newTestStore(t, "A", "B")
	_, _ = s.Create("Wall1", "B")

	ps, err := s.Projectors("Wall1")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "B", ps[0].Name)

	_, err = s.Projectors("Nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRestore(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Restore([]string{"A", "B"}, 1))
	active, _ := s.Active()
	assert.Equal(t, "B", active)

	assert.ErrorIs(t, s.Restore([]string{"A", "A"}, 0), model.ErrDuplicateName)
	assert.ErrorIs(t, s.Restore([]string{"A"}, 3), model.ErrIndexOutOfRange)
	assert.Equal(t, []string{"A", "B"}, s.Names())

	require.NoError(t, s.Restore(nil, 5))
	assert.Equal(t, 0, s.ActiveIndex())
}
