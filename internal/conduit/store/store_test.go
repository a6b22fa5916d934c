package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/conduit/internal/conduit/store"
	"github.com/stretchr/testify/require"
)

func TestConflictError(t *testing.T) {
	err := fmt.Errorf("create user: %w", &store.ConflictError{Field: "email"})

	require.ErrorIs(t, err, store.ErrAlreadyExists)
	field, ok := store.ConflictField(err)
	require.True(t, ok)
	require.Equal(t, "email", field)
	require.Equal(t, "create user: store: already exists: email", err.Error())

	_, ok = store.ConflictField(errors.New("boom"))
	require.False(t, ok)
}
