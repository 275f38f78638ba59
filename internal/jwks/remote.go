package jwks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// EndpointProperty names the property holding the DCR keyset URL.
const EndpointProperty = "DCR_JWKS_REG_ENDPOINT"

// PropertyLookup resolves named configuration properties.
type PropertyLookup interface {
	Get(key string) (string, bool)
}

// RemoteSource fetches the keys registered with the DCR authority.
type RemoteSource struct {
	props  PropertyLookup
	client *resty.Client
	logger *zap.Logger
}

// NewRemoteSource builds a RemoteSource whose requests give up after timeout.
// Failed requests are never retried.
func NewRemoteSource(props PropertyLookup, timeout time.Duration, logger *zap.Logger) *RemoteSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())

	return &RemoteSource{
		props:  props,
		client: client,
		logger: logger,
	}
}

// Fetch returns the keys published at the configured endpoint. A response
// without a "keys" member yields an empty keyset rather than an error.
func (s *RemoteSource) Fetch(ctx context.Context) (Keyset, error) {
	endpoint, ok := s.props.Get(EndpointProperty)
	endpoint = strings.TrimSpace(endpoint)
	s.logger.Info("resolved DCR keyset endpoint", zap.String(EndpointProperty, endpoint))
	if !ok || endpoint == "" {
		s.logger.Error("DCR keyset endpoint property is empty")
		return nil, ErrConfigMissing
	}

	resp, err := s.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		s.logger.Error("I/O error while connecting to DCR keyset endpoint",
			zap.String("endpoint", endpoint),
			zap.Error(err),
		)
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		s.logger.Error("failed to fetch DCR keyset",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, &StatusError{Endpoint: endpoint, Status: resp.StatusCode()}
	}

	body := resp.Body()
	s.logger.Debug("DCR keyset endpoint output", zap.ByteString("body", body))

	return parseRemoteDocument(body)
}

func parseRemoteDocument(body []byte) (Keyset, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: remote response: %w", ErrParse, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: remote response is not a JSON object", ErrParse)
	}

	raw, ok := doc["keys"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Keyset{}, nil
	}

	var keys Keyset
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: remote \"keys\" member: %w", ErrParse, err)
	}
	if keys == nil {
		keys = Keyset{}
	}
	return keys, nil
}
