package kvstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("get missing returns nil nil", func(t *testing.T) {
		s := newStore(t)
		v, err := s.Get(context.Background(), "absent")
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "users", []byte(`[{"email":"ada@x.com"}]`)))
		v, err := s.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, `[{"email":"ada@x.com"}]`, string(v))
	})

	t.Run("set overwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "ads", []byte("old")))
		require.NoError(t, s.Set(ctx, "ads", []byte("new")))
		v, err := s.Get(ctx, "ads")
		require.NoError(t, err)
		assert.Equal(t, "new", string(v))
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "loggedInUser", []byte(`{}`)))
		require.NoError(t, s.Remove(ctx, "loggedInUser"))
		require.NoError(t, s.Remove(ctx, "loggedInUser"))

		v, err := s.Get(ctx, "loggedInUser")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("update sees nil for missing key", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var seen []byte
		called := false
		require.NoError(t, s.Update(ctx, "ads", func(cur []byte) ([]byte, error) {
			called = true
			seen = cur
			return []byte("[]"), nil
		}))
		assert.True(t, called)
		assert.Nil(t, seen)

		v, err := s.Get(ctx, "ads")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(v))
	})

	t.Run("update error leaves value", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		boom := errors.New("boom")

		require.NoError(t, s.Set(ctx, "users", []byte("keep")))
		err := s.Update(ctx, "users", func(cur []byte) ([]byte, error) {
			assert.Equal(t, "keep", string(cur))
			return []byte("lost"), boom
		})
		require.ErrorIs(t, err, boom)

		v, err := s.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, "keep", string(v))
	})

	t.Run("json helpers round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		type rec struct {
			Email string `json:"email"`
		}

		var got []rec
		found, err := LoadJSON(ctx, s, "users", &got)
		require.NoError(t, err)
		assert.False(t, found)

		require.NoError(t, SaveJSON(ctx, s, "users", []rec{{Email: "a@x.com"}}))

		list, err := UpdateJSON(ctx, s, "users", func(v *[]rec) error {
			*v = append(*v, rec{Email: "b@x.com"})
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []rec{{Email: "a@x.com"}, {Email: "b@x.com"}}, list)

		found, err = LoadJSON(ctx, s, "users", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, list, got)
	})

	t.Run("concurrent updates do not lose writes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const n = 20

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := UpdateJSON(ctx, s, "ads", func(v *[]int) error {
					*v = append(*v, i)
					return nil
				})
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		var got []int
		_, err := LoadJSON(ctx, s, "ads", &got)
		require.NoError(t, err)
		assert.Len(t, got, n)
	})
}
