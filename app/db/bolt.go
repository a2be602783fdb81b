package db

import (
	"encoding/json"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketUsers      = "Users"
	bucketSavedWords = "SavedWords"
)

// BoltStorage implements storage interface for BoltDB
type BoltStorage struct {
	db *bolt.DB
}

func userKey(id UserID) []byte {
	return []byte(strconv.FormatInt(int64(id), 10))
}

// GetUser from database
func (b *BoltStorage) GetUser(id UserID) (User, error) {
	var user User
	err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketUsers)).Get(userKey(id))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &user); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}
		return nil
	})
	return user, err
}

// SaveUser to database
func (b *BoltStorage) SaveUser(user User) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := tx.Bucket([]byte(bucketUsers)).Put(userKey(user.ID), jdata); err != nil {
			return fmt.Errorf("put user: %w", err)
		}
		return nil
	})
}

// GetSavedWords from database
func (b *BoltStorage) GetSavedWords(user UserID) ([]string, error) {
	words := []string{}
	err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketSavedWords)).Get(userKey(user))
		if len(jdata) == 0 {
			return nil
		}
		if err := json.Unmarshal(jdata, &words); err != nil {
			return fmt.Errorf("unmarshal saved words: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// SetSavedWords to database
func (b *BoltStorage) SetSavedWords(user UserID, words []string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(words)
		if err != nil {
			return fmt.Errorf("marshal saved words: %w", err)
		}
		if err := tx.Bucket([]byte(bucketSavedWords)).Put(userKey(user), jdata); err != nil {
			return fmt.Errorf("put saved words: %w", err)
		}
		return nil
	})
}

// NewBoltStorage creates BoltStorage instance and initialize buckets
func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketUsers, bucketSavedWords} {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}
