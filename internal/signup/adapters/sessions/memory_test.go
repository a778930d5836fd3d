package sessions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "signupflow/internal/signup/adapters/sessions"
	"signupflow/internal/signup/domain/entities"
	"signupflow/internal/signup/ports/sessions"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("создание и чтение", func(t *testing.T) {
		store := adapters.NewMemoryStore(time.Minute, time.Minute)
		state := entities.WizardState{Step: entities.StepCredentials}
		state.Snapshot.Email = "a@b.c"

		id, err := store.Create(ctx, state)
		require.NoError(t, err)
		assert.Len(t, id, 36)

		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "a@b.c", got.Snapshot.Email)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("уникальные идентификаторы", func(t *testing.T) {
		store := adapters.NewMemoryStore(time.Minute, time.Minute)
		first, err := store.Create(ctx, entities.WizardState{})
		require.NoError(t, err)
		second, err := store.Create(ctx, entities.WizardState{})
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("сохранение", func(t *testing.T) {
		store := adapters.NewMemoryStore(time.Minute, time.Minute)
		id, err := store.Create(ctx, entities.WizardState{Step: entities.StepCredentials})
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, id, entities.WizardState{Step: entities.StepPersonal}))

		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, entities.StepPersonal, got.Step)
	})

	t.Run("сохранение в отсутствующую сессию", func(t *testing.T) {
		store := adapters.NewMemoryStore(time.Minute, time.Minute)
		err := store.Save(ctx, "missing", entities.WizardState{})
		require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	})

	t.Run("удаление", func(t *testing.T) {
		store := adapters.NewMemoryStore(time.Minute, time.Minute)
		id, err := store.Create(ctx, entities.WizardState{})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, id))
		require.NoError(t, store.Delete(ctx, id))

		_, err = store.Get(ctx, id)
		require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	})

	t.Run("истечение срока", func(t *testing.T) {
		store := adapters.NewMemoryStore(20*time.Millisecond, time.Hour)
		id, err := store.Create(ctx, entities.WizardState{})
		require.NoError(t, err)

		time.Sleep(40 * time.Millisecond)

		_, err = store.Get(ctx, id)
		require.ErrorIs(t, err, sessions.ErrSessionNotFound)
	})

	t.Run("уведомление об удалении", func(t *testing.T) {
		store := adapters.NewMemoryStore(20*time.Millisecond, 5*time.Millisecond)
		evicted := make(chan string, 2)
		store.OnEvicted(func(id string) { evicted <- id })

		deleted, err := store.Create(ctx, entities.WizardState{})
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, deleted))
		assert.Equal(t, deleted, <-evicted)

		expired, err := store.Create(ctx, entities.WizardState{})
		require.NoError(t, err)
		select {
		case id := <-evicted:
			assert.Equal(t, expired, id)
		case <-time.After(time.Second):
			t.Fatal("expired session was not reported")
		}
	})
}
