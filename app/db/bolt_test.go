package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func getBoltDB(t *testing.T) (*bolt.DB, func()) {
	tmpFile, err := os.CreateTemp("", "bolt_test")
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	boltDB, err := bolt.Open(tmpFile.Name(), 0600, nil)
	require.NoError(t, err)
	return boltDB, func() {
		boltDB.Close()
		os.Remove(tmpFile.Name())
	}
}

func getStorage(t *testing.T) (*BoltStorage, func()) {
	boltDB, cleanup := getBoltDB(t)
	storage, err := NewBoltStorage(boltDB)
	require.NoError(t, err)
	return storage, cleanup
}

func TestNewBoltStorage(t *testing.T) {
	buckets := []string{bucketUsers, bucketSavedWords}
	t.Run("first", func(t *testing.T) {
		boltDB, cleanup := getBoltDB(t)
		defer cleanup()
		storage, err := NewBoltStorage(boltDB)
		require.NoError(t, err)
		storage.db.View(func(tx *bolt.Tx) error {
			for _, b := range buckets {
				assert.NotNil(t, tx.Bucket([]byte(b)))
				assert.Equal(t, 0, tx.Bucket([]byte(b)).Stats().KeyN)
			}
			return nil
		})
	})
	t.Run("already exists", func(t *testing.T) {
		boltDB, cleanup := getBoltDB(t)
		defer cleanup()
		storage, err := NewBoltStorage(boltDB)
		require.NoError(t, err)
		require.NoError(t, storage.SetSavedWords(1, []string{"kept"}))

		storage, err = NewBoltStorage(boltDB)
		require.NoError(t, err)
		words, err := storage.GetSavedWords(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"kept"}, words)
	})
}

func TestBoltUser(t *testing.T) {
	t.Run("save and get", func(t *testing.T) {
		storage, cleanup := getStorage(t)
		defer cleanup()
		user := User{ID: 42, Username: "test", Language: "fr"}
		require.NoError(t, storage.SaveUser(user))
		res, err := storage.GetUser(42)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
	})
	t.Run("not found", func(t *testing.T) {
		storage, cleanup := getStorage(t)
		defer cleanup()
		_, err := storage.GetUser(42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("invalid JSON", func(t *testing.T) {
		storage, cleanup := getStorage(t)
		defer cleanup()
		require.NoError(t, storage.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket([]byte(bucketUsers)).Put(userKey(42), []byte("NOT_JSON"))
		}))
		_, err := storage.GetUser(42)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestBoltSavedWords(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		storage, cleanup := getStorage(t)
		defer cleanup()
		words, err := storage.GetSavedWords(AnonymousUser)
		assert.NoError(t, err)
		assert.Equal(t, []string{}, words)
	})
	t.Run("save and get", func(t *testing.T) {
		storage, cleanup := getStorage(t)
		defer cleanup()
		require.NoError(t, storage.SetSavedWords(AnonymousUser, []string{"b", "a"}))
		words, err := storage.GetSavedWords(AnonymousUser)
		assert.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, words)
	})
	t.Run("word helpers", func(t *testing.T) {
		storage, cleanup := getStorage(t)
		defer cleanup()
		_, err := SaveWord(storage, 7, "Hello")
		require.NoError(t, err)
		_, err = SaveWord(storage, 7, "world")
		require.NoError(t, err)
		words, err := DeleteWord(storage, 7, "HELLO")
		require.NoError(t, err)
		assert.Equal(t, []string{"world"}, words)
	})
}
