package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

var sessionBucket = []byte("Session")

// BoltSessionRepository persists the session in a local bbolt file.
type BoltSessionRepository struct {
	db *bbolt.DB
}

// NewBoltSessionRepository opens (or creates) the database at path.
func NewBoltSessionRepository(path string) (*BoltSessionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}

	return &BoltSessionRepository{db: db}, nil
}

// Load returns the stored session or nil.
func (r *BoltSessionRepository) Load(ctx context.Context) (*models.Session, error) {
	values := map[string]string{}
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		for _, key := range SessionKeys {
			if v := b.Get([]byte(key)); v != nil {
				values[key] = string(v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sessionFromValues(values), nil
}

// Save writes every key in a single transaction.
func (r *BoltSessionRepository) Save(ctx context.Context, s models.Session) error {
	values := sessionValues(s)
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		for _, key := range SessionKeys {
			value, ok := values[key]
			if !ok {
				if err := b.Delete([]byte(key)); err != nil {
					return err
				}
				continue
			}
			if err := b.Put([]byte(key), []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes every session key.
func (r *BoltSessionRepository) Clear(ctx context.Context) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		for _, key := range SessionKeys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Has reports whether key is currently stored.
func (r *BoltSessionRepository) Has(key string) (bool, error) {
	found := false
	err := r.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(sessionBucket); b != nil {
			found = b.Get([]byte(key)) != nil
		}
		return nil
	})
	return found, err
}

// Close releases the database file lock.
func (r *BoltSessionRepository) Close() error {
	return r.db.Close()
}
