package models

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRawStorageRoundTrip(t *testing.T) {
	db := openTestDatabase(t)

	value, err := db.Get("movieFavorites:1")
	require.NoError(t, err)
	assert.Nil(t, value, "absent key should read as nil")

	require.NoError(t, db.Put("movieFavorites:1", []byte("[1,2,3]")))
	value, err = db.Get("movieFavorites:1")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(value))

	require.NoError(t, db.Put("movieFavorites:1", []byte("[]")))
	value, err = db.Get("movieFavorites:1")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))

	keys, err := db.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"movieFavorites:1"}, keys)
}

func TestAccounts(t *testing.T) {
	db := openTestDatabase(t)

	account := &Account{
		ID:           uuid.NewString(),
		Name:         "Demo User",
		Email:        "demo@example.com",
		PasswordHash: []byte("hash"),
	}
	require.NoError(t, db.CreateAccount(account))
	assert.False(t, account.CreatedAt.IsZero())

	byEmail, err := db.GetAccountByEmail("demo@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	byID, err := db.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", byID.Name)

	duplicate := &Account{ID: uuid.NewString(), Name: "Other", Email: "demo@example.com"}
	assert.ErrorIs(t, db.CreateAccount(duplicate), ErrAccountExists)

	count, err := db.CountAccounts()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = db.GetAccountByEmail("nobody@example.com")
	assert.Error(t, err)
}

func TestCreateAccountKeepsCreatedAt(t *testing.T) {
	db := openTestDatabase(t)
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	account := &Account{ID: uuid.NewString(), Name: "Seeded", Email: "seeded@example.com", CreatedAt: created}
	require.NoError(t, db.CreateAccount(account))
	assert.True(t, created.Equal(account.CreatedAt))

	stored, err := db.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.True(t, created.Equal(stored.CreatedAt), "got %s", stored.CreatedAt)
}
