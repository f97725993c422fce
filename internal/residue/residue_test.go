package residue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("upper and lower case letters agree", func(t *testing.T) {
		for _, l := range []byte("ACDEFGHIKLMNPQRSTVWY") {
			upper, err := Resolve(l)
			require.NoError(t, err)
			lower, err := Resolve(l + ('a' - 'A'))
			require.NoError(t, err)
			assert.Equal(t, upper, lower)
			assert.True(t, upper.Valid())
		}
	})

	t.Run("gap equivalents", func(t *testing.T) {
		for _, g := range []byte("-.*~_ ") {
			c, err := Resolve(g)
			require.NoError(t, err)
			assert.Equal(t, Gap, c)
			assert.False(t, c.Valid())
		}
	})

	t.Run("invalid letter", func(t *testing.T) {
		_, err := Resolve('1')
		require.Error(t, err)
	})
}

func TestLetterRoundTrip(t *testing.T) {
	for i := 0; i < Count; i++ {
		c := Code(i)
		l := Letter(c)
		back, err := Resolve(l)
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
	assert.Equal(t, byte('-'), Letter(Gap))
}

func TestIsHydrophilic(t *testing.T) {
	d, err := Resolve('D')
	require.NoError(t, err)
	assert.True(t, d.IsHydrophilic())

	f, err := Resolve('F')
	require.NoError(t, err)
	assert.False(t, f.IsHydrophilic())
}
