package location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	locationerrors "github.com/Trivikram-Jagirdar/workflow-managmenr/internal/location/errors"
)

// ErrorKind classifies provider failures the way browser geolocation
// reports them.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindPermissionDenied
	KindPositionUnavailable
	KindTimeout
)

// ProviderError is the typed failure a Provider returns.
type ProviderError struct {
	Kind ErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("location provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type Position struct {
	Latitude  float64
	Longitude float64
}

// Options mirrors the single-shot position request knobs.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultOptions: high accuracy, 10 second timeout, never reuse a
// cached position.
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaximumAge:   0,
	}
}

// Provider performs a single-shot position request.
//
//go:generate mockgen -source=location.go -destination=mock/location_mock.go -package=mock
type Provider interface {
	CurrentPosition(ctx context.Context, userID string, opts Options) (Position, error)
}

type Service interface {
	// Acquire gates on the stored consent decision, then requests a
	// position and formats it as "lat, lon" with six decimal places.
	Acquire(ctx context.Context, userID string) (string, error)
}

type service struct {
	provider Provider
	consent  ConsentStore
}

func NewService(provider Provider, consent ConsentStore) Service {
	return &service{provider: provider, consent: consent}
}

func (s *service) Acquire(ctx context.Context, userID string) (string, error) {
	decision, err := s.consent.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	switch decision {
	case ConsentDenied:
		// Short-circuit, the provider must not be invoked
		return "", locationerrors.ErrConsentDenied
	case ConsentUnset:
		return "", locationerrors.ErrConsentRequired
	}

	pos, err := s.provider.CurrentPosition(ctx, userID, DefaultOptions())
	if err != nil {
		return "", mapProviderError(err)
	}

	return FormatCoordinates(pos), nil
}

// FormatCoordinates renders a position as "lat, lon" with fixed
// six-decimal precision.
func FormatCoordinates(p Position) string {
	return strconv.FormatFloat(p.Latitude, 'f', 6, 64) +
		", " +
		strconv.FormatFloat(p.Longitude, 'f', 6, 64)
}

func mapProviderError(err error) error {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		switch provErr.Kind {
		case KindPermissionDenied:
			return locationerrors.ErrPermissionDenied
		case KindPositionUnavailable:
			return locationerrors.ErrPositionUnavailable
		case KindTimeout:
			return locationerrors.ErrTimeout
		}
	}
	return locationerrors.ErrUnavailable
}
