package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
)

func TestOpaque_MatchesID(t *testing.T) {
	c := zeroKeyCipher(t)

	for _, raw := range testIDs {
		id := domain.New[user](raw, c)
		o := domain.NewOpaque(userTag, raw, c)

		assert.Equal(t, id.String(), o.String())
		assert.Equal(t, id.Block(), o.Block())
		assert.Equal(t, o, id.Opaque())
	}
}

func TestOpaque_RoundTrip(t *testing.T) {
	c := zeroKeyCipher(t)
	token := domain.NewOpaque(accountTag, -5, c).String()

	o, err := domain.ParseOpaque(accountTag, token)
	require.NoError(t, err)
	assert.Equal(t, accountTag, o.Tag())

	raw, err := o.Raw(c)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), raw)
}

func TestOpaque_WrongTag(t *testing.T) {
	c := zeroKeyCipher(t)
	token := domain.NewOpaque(accountTag, 5, c).String()

	o, err := domain.ParseOpaque(userTag, token)
	require.NoError(t, err)

	_, err = o.Raw(c)
	assert.ErrorIs(t, err, domain.ErrWrongTag)
}

func TestParseOpaque_Error(t *testing.T) {
	_, err := domain.ParseOpaque(userTag, "a b")
	assert.ErrorIs(t, err, domain.ErrUnknownCharacter)
}

func TestFromOpaque(t *testing.T) {
	c := zeroKeyCipher(t)
	o := domain.NewOpaque(userTag, 11, c)

	t.Run("Success", func(t *testing.T) {
		id, err := domain.FromOpaque[user](o)
		require.NoError(t, err)

		raw, err := id.Raw(c)
		require.NoError(t, err)
		assert.Equal(t, int64(11), raw)
	})

	t.Run("Success_SharedTag", func(t *testing.T) {
		_, err := domain.FromOpaque[member](o)
		assert.NoError(t, err)
	})

	t.Run("Error_WrongTag", func(t *testing.T) {
		id, err := domain.FromOpaque[account](o)
		assert.ErrorIs(t, err, domain.ErrWrongTag)
		assert.True(t, id.IsZero())
	})
}

func TestOpaque_GoString(t *testing.T) {
	o := domain.NewOpaque(userTag, 1, zeroKeyCipher(t))
	assert.Equal(t, "Opaque[user]("+o.String()+")", fmt.Sprintf("%#v", o))
}
