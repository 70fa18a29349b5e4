package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	for _, s := range []string{"default", "link-hover", "button-hover", "text-input"} {
		v, err := ParseVariant(s)
		require.NoError(t, err)
		assert.Equal(t, Variant(s), v)
	}
	v, err := ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, Default, v)

	_, err = ParseVariant("spinning")
	assert.Error(t, err)
}

func TestAppearance(t *testing.T) {
	assert.Zero(t, Default.Appearance().RingOpacity)
	assert.Equal(t, 1.0, LinkHover.Appearance().RingScale)
	assert.Less(t, LinkHover.Appearance().DotScale, Default.Appearance().DotScale)
}

func TestStateNotifiesReaders(t *testing.T) {
	s := NewState()
	var seen []Variant
	unsub := s.Reader().Subscribe(func(v Variant) { seen = append(seen, v) })
	defer unsub()

	s.Set(LinkHover)
	s.Set(LinkHover)
	s.Set(Default)
	assert.Equal(t, []Variant{LinkHover, Default}, seen)
	assert.Equal(t, Default, s.Reader().Get())
}

func TestFollowerConverges(t *testing.T) {
	f := NewFollower(FollowSpring)
	f.Jump(0, 0)

	maxX := 0.0
	for i := 0; i < 60; i++ {
		f.Step(200, -100, 1.0/60)
		if f.X > maxX {
			maxX = f.X
		}
	}
	assert.True(t, f.Settled(200, -100, 0.5), "at (%v, %v)", f.X, f.Y)
	assert.Less(t, maxX, 210.0, "overshoot")
}

func TestFollowerIgnoresBadInput(t *testing.T) {
	f := NewFollower(Spring{})
	f.Jump(5, 5)
	f.Step(100, 100, 1)
	assert.Equal(t, 5.0, f.X)

	f = NewFollower(FollowSpring)
	f.Jump(5, 5)
	f.Step(100, 100, 0)
	assert.Equal(t, 5.0, f.X)
}
