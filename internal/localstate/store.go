// Package localstate manages the process-local bbolt buckets used for
// restart recovery and for the durable-store fallback.
package localstate

import (
	"errors"

	bolt "go.etcd.io/bbolt"
)

const (
	pointerBucket = "pointers"
	recordBucket  = "records"
)

var ErrNotFound = errors.New("localstate: key not found")

// PointerStore is the fast local key/value store. All calls are
// synchronous; values survive a process restart.
//
//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type PointerStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// RecordStore keeps serialized entity snapshots keyed by entity type,
// mirroring the remote store when it is unreachable.
type RecordStore interface {
	PutRecord(entityType, id string, value []byte) error
	GetRecord(entityType, id string) ([]byte, error)
	ListRecords(entityType string) ([][]byte, error)
	DeleteRecord(entityType, id string) error
}

// Client is a bbolt-backed store satisfying both interfaces.
type Client struct {
	db *bolt.DB
}

func NewClient(db *bolt.DB) (*Client, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{pointerBucket, recordBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Client{db: db}, nil
}

func (c *Client) Get(key string) (string, error) {
	var value []byte

	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(pointerBucket)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}
		value = append(value, v...)
		return nil
	})
	if err != nil {
		return "", err
	}

	return string(value), nil
}

func (c *Client) Set(key, value string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pointerBucket)).Put([]byte(key), []byte(value))
	})
}

func (c *Client) Delete(key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(pointerBucket)).Delete([]byte(key))
	})
}

func (c *Client) PutRecord(entityType, id string, value []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(recordBucket)).CreateBucketIfNotExists([]byte(entityType))
		if err != nil {
			return err
		}
		return b.Put([]byte(id), value)
	})
}

func (c *Client) GetRecord(entityType, id string) ([]byte, error) {
	var value []byte

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordBucket)).Bucket([]byte(entityType))
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		value = append(value, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (c *Client) ListRecords(entityType string) ([][]byte, error) {
	var values [][]byte

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordBucket)).Bucket([]byte(entityType))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			cp := make([]byte, len(v))
			copy(cp, v)
			values = append(values, cp)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

func (c *Client) DeleteRecord(entityType, id string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(recordBucket)).Bucket([]byte(entityType))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
}
