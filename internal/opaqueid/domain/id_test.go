package domain_test

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/opaqueid/internal/opaqueid/domain"
	"github.com/allisson/opaqueid/internal/opaqueid/service"
)

var (
	userTag    = domain.MustTag("user")
	accountTag = domain.MustTag("account")
)

type user struct{}

func (user) Tag() domain.Tag { return userTag }

type account struct{}

func (account) Tag() domain.Tag { return accountTag }

// member shares its tag with user.
type member struct{}

func (member) Tag() domain.Tag { return userTag }

func newCipher(t testing.TB, key []byte) domain.BlockCipher {
	t.Helper()
	c, err := service.NewAES128(key)
	require.NoError(t, err)
	return c
}

func zeroKeyCipher(t testing.TB) domain.BlockCipher {
	return newCipher(t, make([]byte, domain.KeySize))
}

var testIDs = []int64{0, 1, -1, 42, math.MinInt64, math.MaxInt64 / 2, math.MaxInt64}

func TestID_KnownToken(t *testing.T) {
	c := zeroKeyCipher(t)

	id := domain.New[domain.Untagged](0, c)
	assert.Equal(t, "cnmmbMYhGEJFLspNZAVRyeb", id.String())

	raw, err := id.Raw(c)
	require.NoError(t, err)
	assert.Equal(t, int64(0), raw)
}

func TestID_RoundTrip(t *testing.T) {
	c := zeroKeyCipher(t)

	for _, raw := range testIDs {
		t.Run(fmt.Sprintf("Success_%d", raw), func(t *testing.T) {
			token := domain.New[user](raw, c).String()

			parsed, err := domain.Parse[user](token)
			require.NoError(t, err)

			got, err := parsed.Raw(c)
			require.NoError(t, err)
			assert.Equal(t, raw, got)
		})
	}
}

func TestID_Deterministic(t *testing.T) {
	c := zeroKeyCipher(t)
	assert.Equal(t, domain.New[user](42, c), domain.New[user](42, c))
	assert.Equal(t, domain.New[user](42, c).String(), domain.New[user](42, c).String())
}

func TestID_TagIsolation(t *testing.T) {
	c := zeroKeyCipher(t)

	t.Run("Success_DistinctTokensPerKind", func(t *testing.T) {
		assert.NotEqual(t, domain.New[user](42, c).String(), domain.New[account](42, c).String())
		assert.NotEqual(t, domain.New[user](42, c).String(), domain.New[domain.Untagged](42, c).String())
	})

	t.Run("Error_WrongKind", func(t *testing.T) {
		token := domain.New[user](42, c).String()

		parsed, err := domain.Parse[account](token)
		require.NoError(t, err)

		_, err = parsed.Raw(c)
		assert.ErrorIs(t, err, domain.ErrWrongTag)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		other := newCipher(t, []byte("0123456789abcdef"))
		id := domain.New[user](42, c)

		_, err := id.Raw(other)
		assert.ErrorIs(t, err, domain.ErrWrongTag)
	})
}

func TestParse_Errors(t *testing.T) {
	t.Run("Error_UnknownCharacter", func(t *testing.T) {
		_, err := domain.Parse[user]("abc-def")
		assert.ErrorIs(t, err, domain.ErrUnknownCharacter)
	})

	t.Run("Error_Overflow", func(t *testing.T) {
		_, err := domain.Parse[user]("ZZZZZZZZZZZZZZZZZZZZZZZ")
		assert.ErrorIs(t, err, domain.ErrOverflow)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		id, err := domain.Parse[user]("")
		require.NoError(t, err)
		assert.True(t, id.IsZero())
	})
}

func TestRetag(t *testing.T) {
	c := zeroKeyCipher(t)
	id := domain.New[user](7, c)

	t.Run("Success_SameTag", func(t *testing.T) {
		raw, err := domain.Retag[member](id).Raw(c)
		require.NoError(t, err)
		assert.Equal(t, int64(7), raw)
	})

	t.Run("Error_DifferentTag", func(t *testing.T) {
		_, err := domain.Retag[account](id).Raw(c)
		assert.ErrorIs(t, err, domain.ErrWrongTag)
	})
}

func TestID_IsZero(t *testing.T) {
	var zero domain.ID[user]
	assert.True(t, zero.IsZero())
	assert.False(t, domain.New[user](0, zeroKeyCipher(t)).IsZero())
}

func TestID_FromBlock(t *testing.T) {
	c := zeroKeyCipher(t)
	id := domain.New[user](9, c)
	assert.Equal(t, id, domain.FromBlock[user](id.Block()))
}

func TestID_GoString(t *testing.T) {
	id := domain.New[user](1, zeroKeyCipher(t))
	assert.Equal(t, "ID[user]("+id.String()+")", fmt.Sprintf("%#v", id))
}

func TestID_JSON(t *testing.T) {
	type payload struct {
		ID domain.ID[user] `json:"id"`
	}
	c := zeroKeyCipher(t)
	in := payload{ID: domain.New[user](1234, c)}

	t.Run("Success_RoundTrip", func(t *testing.T) {
		data, err := json.Marshal(in)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"`+in.ID.String()+`"}`, string(data))

		var out payload
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)

		raw, err := out.ID.Raw(c)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), raw)
	})

	t.Run("Error_InvalidToken", func(t *testing.T) {
		var out payload
		err := json.Unmarshal([]byte(`{"id":"not-a-token"}`), &out)
		assert.Error(t, err)
	})
}

func TestID_ConcurrentUse(t *testing.T) {
	c := zeroKeyCipher(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				raw := int64(g*1000 + i)
				parsed, err := domain.Parse[user](domain.New[user](raw, c).String())
				if err != nil {
					errs <- err
					return
				}
				got, err := parsed.Raw(c)
				if err != nil {
					errs <- err
					return
				}
				if got != raw {
					errs <- fmt.Errorf("got %d, want %d", got, raw)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
