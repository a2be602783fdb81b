package db

import "sync"

type InMemoryStorage struct {
	users      map[UserID]User
	savedWords map[UserID][]string
	mx         sync.RWMutex
}

func (d *InMemoryStorage) GetUser(id UserID) (User, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	user, ok := d.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (d *InMemoryStorage) SaveUser(user User) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.users[user.ID] = user
	return nil
}

func (d *InMemoryStorage) GetSavedWords(user UserID) ([]string, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	return append([]string{}, d.savedWords[user]...), nil
}

func (d *InMemoryStorage) SetSavedWords(user UserID, words []string) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.savedWords[user] = append([]string{}, words...)
	return nil
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		users:      make(map[UserID]User),
		savedWords: make(map[UserID][]string),
	}
}
