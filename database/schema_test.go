package database

import (
	"testing"

	"holdings/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema_Idempotent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	store := repo.Store()

	objectsBefore := countRows(t, store, "sqlite_master")

	for i := 0; i < 3; i++ {
		require.NoError(t, store.EnsureSchema())
	}

	assert.Equal(t, objectsBefore, countRows(t, store, "sqlite_master"))
	assert.Equal(t, len(SeedTodos), countRows(t, store, "todos"))
	assert.Equal(t, 1, countRows(t, store, "users"))
	assert.Equal(t, 0, countRows(t, store, "user_positions"))
}

func TestEnsureSchema_SeedRows(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	todos, err := repo.ListTodos()
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "Get groceries", todos[0].Name)
	assert.Equal(t, "Buy a new phone", todos[1].Name)

	user, err := repo.GetUserByUsername(models.DefaultUsername)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.DefaultEmail, user.Email)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestEnsureSchema_ReseedsEmptiedTables(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	store := repo.Store()

	t.Run("Todos come back after being cleared", func(t *testing.T) {
		execSQL(t, store, "DELETE FROM todos")
		assert.Equal(t, 0, countRows(t, store, "todos"))

		require.NoError(t, store.EnsureSchema())
		assert.Equal(t, len(SeedTodos), countRows(t, store, "todos"))
	})

	t.Run("Default user comes back after users are cleared", func(t *testing.T) {
		execSQL(t, store, "DELETE FROM users")
		assert.Equal(t, 0, countRows(t, store, "users"))

		require.NoError(t, store.EnsureSchema())

		user, err := repo.GetUserByUsername(models.DefaultUsername)
		require.NoError(t, err)
		require.NotNil(t, user)
	})

	t.Run("A partially emptied table is not reseeded", func(t *testing.T) {
		execSQL(t, store, "DELETE FROM todos WHERE name = ?", SeedTodos[0])

		require.NoError(t, store.EnsureSchema())
		assert.Equal(t, len(SeedTodos)-1, countRows(t, store, "todos"))
	})

	t.Run("Users other than the default one suppress seeding", func(t *testing.T) {
		execSQL(t, store, "DELETE FROM users")
		execSQL(t, store, "INSERT INTO users (username, email) VALUES (?, ?)", "alice", "alice@example.com")

		require.NoError(t, store.EnsureSchema())

		user, err := repo.GetUserByUsername(models.DefaultUsername)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestEnsureSchema_FailedSeedLeavesNoPartialRows(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	store := repo.Store()

	execSQL(t, store, "DELETE FROM todos")
	execSQL(t, store, `CREATE TRIGGER reject_second_seed BEFORE INSERT ON todos
		WHEN NEW.name = '`+SeedTodos[1]+`'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)

	err := store.EnsureSchema()
	require.Error(t, err)
	assert.Equal(t, 0, countRows(t, store, "todos"), "first seed row must be rolled back with the second")

	execSQL(t, store, "DROP TRIGGER reject_second_seed")

	require.NoError(t, store.EnsureSchema())
	assert.Equal(t, len(SeedTodos), countRows(t, store, "todos"))
}
