package memory

import (
	"alcyxob/fitgpt/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRepository_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()

	_, err := repo.Get(ctx, repository.KeySettings)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Set(ctx, repository.KeySettings, []byte(`{"darkMode":true}`)))
	got, err := repo.Get(ctx, repository.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":true}`, string(got))

	// Last write wins.
	require.NoError(t, repo.Set(ctx, repository.KeySettings, []byte(`{"darkMode":false}`)))
	got, err = repo.Get(ctx, repository.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":false}`, string(got))

	require.NoError(t, repo.Remove(ctx, repository.KeySettings))
	require.NoError(t, repo.Remove(ctx, repository.KeySettings), "removing twice is fine")
	_, err = repo.Get(ctx, repository.KeySettings)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStateRepository_CopiesValues(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()

	value := []byte(`[1]`)
	require.NoError(t, repo.Set(ctx, repository.KeyWorkoutLogs, value))
	value[1] = '2'

	got, err := repo.Get(ctx, repository.KeyWorkoutLogs)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	got[1] = '3'
	again, err := repo.Get(ctx, repository.KeyWorkoutLogs)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(again))
}

func TestStateRepository_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository()

	for _, key := range repository.AllKeys {
		require.NoError(t, repo.Set(ctx, key, []byte(`"`+string(key)+`"`)))
	}
	require.NoError(t, repo.Remove(ctx, repository.KeyWorkoutPlan))

	for _, key := range repository.AllKeys {
		got, err := repo.Get(ctx, key)
		if key == repository.KeyWorkoutPlan {
			assert.ErrorIs(t, err, repository.ErrNotFound)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, `"`+string(key)+`"`, string(got))
	}
}
