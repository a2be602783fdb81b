package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const (
	prefixUser  = "user:"
	prefixSaved = "saved:"
)

type RedisStorage struct {
	db *redis.Client
}

// GetUser from redis
func (s *RedisStorage) GetUser(id UserID) (User, error) {
	data, err := s.db.Get(context.Background(), prefixUser+strconv.FormatInt(int64(id), 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("fetching user: %w", err)
	}
	var user User
	if jerr := json.NewDecoder(bytes.NewBufferString(data)).Decode(&user); jerr != nil {
		return User{}, fmt.Errorf("unmarshal user: %w", jerr)
	}
	return user, nil
}

// SaveUser to redis
func (s *RedisStorage) SaveUser(user User) error {
	key := prefixUser + strconv.FormatInt(int64(user.ID), 10)
	jdata, jerr := json.Marshal(user)
	if jerr != nil {
		return fmt.Errorf("marshal user: %w", jerr)
	}
	if err := s.db.Set(context.Background(), key, string(jdata), 0).Err(); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// GetSavedWords from redis
func (s *RedisStorage) GetSavedWords(user UserID) ([]string, error) {
	data, err := s.db.Get(context.Background(), prefixSaved+strconv.FormatInt(int64(user), 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("fetching saved words: %w", err)
	}
	words := []string{}
	if jerr := json.NewDecoder(bytes.NewBufferString(data)).Decode(&words); jerr != nil {
		return nil, fmt.Errorf("unmarshal saved words: %w", jerr)
	}
	return words, nil
}

// SetSavedWords to redis
func (s *RedisStorage) SetSavedWords(user UserID, words []string) error {
	key := prefixSaved + strconv.FormatInt(int64(user), 10)
	jdata, jerr := json.Marshal(words)
	if jerr != nil {
		return fmt.Errorf("marshal saved words: %w", jerr)
	}
	if err := s.db.Set(context.Background(), key, string(jdata), 0).Err(); err != nil {
		return fmt.Errorf("saving saved words: %w", err)
	}
	return nil
}

// NewRedisStorage creates RedisStorage with given url
func NewRedisStorage(url string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{db: rdb}, nil
}
