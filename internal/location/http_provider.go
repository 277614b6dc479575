package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// HTTPProvider asks the device agent for the user's current position.
// The agent exposes GET {baseURL}/position?user_id=...&high_accuracy=...
// and answers 403 when the device-level permission is off.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

type positionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *HTTPProvider) CurrentPosition(ctx context.Context, userID string, opts Options) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("high_accuracy", fmt.Sprintf("%t", opts.HighAccuracy))
	q.Set("max_age_ms", fmt.Sprintf("%d", opts.MaximumAge.Milliseconds()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/position?"+q.Encode(), nil)
	if err != nil {
		return Position{}, &ProviderError{Kind: KindUnknown, Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Position{}, &ProviderError{Kind: KindTimeout, Err: err}
		}
		return Position{}, &ProviderError{Kind: KindPositionUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return Position{}, &ProviderError{Kind: KindPermissionDenied, Err: fmt.Errorf("agent returned %d", resp.StatusCode)}
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return Position{}, &ProviderError{Kind: KindPositionUnavailable, Err: fmt.Errorf("agent returned %d", resp.StatusCode)}
	default:
		return Position{}, &ProviderError{Kind: KindUnknown, Err: fmt.Errorf("agent returned %d", resp.StatusCode)}
	}

	var body positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, &ProviderError{Kind: KindUnknown, Err: err}
	}

	return Position{Latitude: body.Latitude, Longitude: body.Longitude}, nil
}
