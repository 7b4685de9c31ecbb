package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrAccountExists is returned when an account with the same email is already stored
var ErrAccountExists = errors.New("account already exists")

var favoritesBucket = []byte("favorites")

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection.
// Opening is retried while another process holds the file lock.
func NewDatabase(path string) (*Database, error) {
	var store *bolthold.Store

	open := func() error {
		s, err := bolthold.Open(path, 0600, &bolthold.Options{
			Options: &bbolt.Options{
				Timeout: 1 * time.Second,
			},
		})
		if err != nil {
			if errors.Is(err, bbolt.ErrTimeout) {
				return err
			}
			return backoff.Permanent(err)
		}
		store = s
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(open, policy); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err := store.Bolt().Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(favoritesBucket)
		return err
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create favorites bucket: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Account operations

// CreateAccount stores a new account. Emails are unique.
func (db *Database) CreateAccount(account *Account) error {
	if _, err := db.GetAccountByEmail(account.Email); err == nil {
		return ErrAccountExists
	} else if !errors.Is(err, bolthold.ErrNotFound) {
		return err
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	if err := db.store.Insert(account.ID, account); err != nil {
		if errors.Is(err, bolthold.ErrKeyExists) {
			return ErrAccountExists
		}
		return err
	}
	return nil
}

// GetAccountByEmail retrieves an account by email
func (db *Database) GetAccountByEmail(email string) (*Account, error) {
	var account Account
	err := db.store.FindOne(&account, bolthold.Where("Email").Eq(email))
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByID retrieves an account by ID
func (db *Database) GetAccountByID(id string) (*Account, error) {
	var account Account
	if err := db.store.Get(id, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CountAccounts returns the number of stored accounts
func (db *Database) CountAccounts() (int, error) {
	var accounts []Account
	if err := db.store.Find(&accounts, nil); err != nil {
		return 0, err
	}
	return len(accounts), nil
}

// Favorites raw storage

// Get returns the raw value stored under key, or nil when absent
func (db *Database) Get(key string) ([]byte, error) {
	var value []byte
	err := db.store.Bolt().View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(favoritesBucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

// Put replaces the value stored under key
func (db *Database) Put(key string, value []byte) error {
	return db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(favoritesBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
}

// Keys lists every key in the favorites bucket
func (db *Database) Keys() ([]string, error) {
	var keys []string
	err := db.store.Bolt().View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(favoritesBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
