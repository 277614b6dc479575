package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type ConsentDecision string

const (
	ConsentUnset   ConsentDecision = "unset"
	ConsentAllowed ConsentDecision = "allowed"
	ConsentDenied  ConsentDecision = "denied"
)

const consentKeyPrefix = "location:consent:"

func consentKey(userID string) string {
	return consentKeyPrefix + userID
}

// ConsentStore persists each user's location-sharing decision. An
// absent key reads as ConsentUnset.
type ConsentStore interface {
	Get(ctx context.Context, userID string) (ConsentDecision, error)
	Set(ctx context.Context, userID string, decision ConsentDecision) error
}

type consentStore struct {
	rdb *redis.Client
	sf  *singleflight.Group
}

func NewConsentStore(rdb *redis.Client) ConsentStore {
	return &consentStore{rdb: rdb, sf: &singleflight.Group{}}
}

func (s *consentStore) Get(ctx context.Context, userID string) (ConsentDecision, error) {
	// Check-in bursts hit this key once per attempt, collapse them
	v, err, _ := s.sf.Do(consentKey(userID), func() (any, error) {
		val, err := s.rdb.Get(ctx, consentKey(userID)).Result()
		if errors.Is(err, redis.Nil) {
			return ConsentUnset, nil
		}
		if err != nil {
			return ConsentUnset, err
		}

		switch ConsentDecision(val) {
		case ConsentAllowed, ConsentDenied:
			return ConsentDecision(val), nil
		default:
			return ConsentUnset, nil
		}
	})
	if err != nil {
		return ConsentUnset, err
	}

	return v.(ConsentDecision), nil
}

func (s *consentStore) Set(ctx context.Context, userID string, decision ConsentDecision) error {
	switch decision {
	case ConsentAllowed, ConsentDenied:
	default:
		return fmt.Errorf("invalid consent decision: %s", decision)
	}

	// No TTL; the decision holds until the user changes it
	return s.rdb.Set(ctx, consentKey(userID), string(decision), time.Duration(0)).Err()
}
