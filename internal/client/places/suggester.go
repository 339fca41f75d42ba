// Package places provides suburb autocomplete with a bounded wait.
// Suggestions are a convenience: when the backing service is slow or down,
// callers fall back to plain text input instead of hanging.
package places

import (
	"context"
	"errors"
	"time"

	"github.com/pawpals/pawpals/internal/client/api"
	"github.com/pawpals/pawpals/internal/logging"
)

// ErrUnavailable signals that no suggestions could be produced in time and
// the caller should degrade to plain input.
var ErrUnavailable = errors.New("suburb suggestions unavailable")

// DefaultTimeout bounds one suggestion round trip.
const DefaultTimeout = 800 * time.Millisecond

// minPrefixLen avoids firing a request for every first keystroke.
const minPrefixLen = 2

type Suggester struct {
	api     api.Client
	timeout time.Duration
	log     logging.Logger
}

func NewSuggester(client api.Client, timeout time.Duration, log logging.Logger) *Suggester {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Suggester{api: client, timeout: timeout, log: log}
}

// Suggest returns suburb completions for prefix. Short prefixes yield no
// suggestions without a request. Any failure, including the deadline,
// collapses to ErrUnavailable.
func (s *Suggester) Suggest(ctx context.Context, prefix string) ([]string, error) {
	if len(prefix) < minPrefixLen {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	got, err := s.api.SuggestSuburbs(ctx, prefix)
	if err != nil {
		if s.log != nil {
			s.log.Debug(ctx, "suburb suggestion failed, degrading to plain input", "error", err)
		}
		return nil, ErrUnavailable
	}
	return got, nil
}
