package location

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestConsentStore_GetUnsetWhenKeyMissing(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewConsentStore(rdb)

	mock.ExpectGet("location:consent:u1").RedisNil()

	d, err := store.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, ConsentUnset, d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsentStore_GetStoredDecision(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewConsentStore(rdb)

	mock.ExpectGet("location:consent:u1").SetVal("allowed")

	d, err := store.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, ConsentAllowed, d)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsentStore_GetGarbageReadsUnset(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewConsentStore(rdb)

	mock.ExpectGet("location:consent:u1").SetVal("whenever")

	d, err := store.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, ConsentUnset, d)
}

func TestConsentStore_Set(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewConsentStore(rdb)

	mock.ExpectSet("location:consent:u1", "denied", 0).SetVal("OK")

	err := store.Set(context.Background(), "u1", ConsentDenied)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsentStore_SetRejectsInvalidDecision(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	store := NewConsentStore(rdb)

	err := store.Set(context.Background(), "u1", ConsentDecision("maybe"))
	assert.Error(t, err)

	err = store.Set(context.Background(), "u1", ConsentUnset)
	assert.Error(t, err)
}
