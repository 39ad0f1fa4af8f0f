package securestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "floor.session")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "floor.session", `{"access_token":"x"}`))
	v, err := m.Get(ctx, "floor.session")
	require.NoError(t, err)
	assert.Equal(t, `{"access_token":"x"}`, v)

	require.NoError(t, m.Delete(ctx, "floor.session"))
	require.NoError(t, m.Delete(ctx, "floor.session"))
	_, err = m.Get(ctx, "floor.session")
	assert.ErrorIs(t, err, ErrNotFound)
}
