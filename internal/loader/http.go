package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xzzpig/graph-gateway/internal/core/errs"
	"github.com/xzzpig/graph-gateway/internal/core/logger"
)

// AccessTokenHeader carries the user token to backends.
const AccessTokenHeader = "X-Access-Token"

const defaultTimeout = 10 * time.Second

// maxBodySize bounds backend responses read into memory.
const maxBodySize = 32 << 20

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	Backend    string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: GET %s returned %d", e.Backend, e.URL, e.StatusCode)
}

// Unwrap maps 404 to errs.ErrNotFound, 401 and 403 to errs.ErrUnauthorized
// and everything else to errs.ErrUnavailable.
func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return errs.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.ErrUnauthorized
	}
	return errs.ErrUnavailable
}

// HTTPLoader issues GET requests against a backend base URL.
type HTTPLoader struct {
	name    string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewHTTPLoader creates a loader for the named backend.
func NewHTTPLoader(name, baseURL string, timeout time.Duration) *HTTPLoader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPLoader{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logger.Named("loader." + name),
	}
}

// Name returns the backend name.
func (l *HTTPLoader) Name() string {
	return l.name
}

// Load implements Loader.
func (l *HTTPLoader) Load(ctx context.Context, path string, params Params) (*Response, error) {
	url := l.baseURL + "/" + strings.TrimLeft(path, "/")
	if q := params.Encode(); q != "" {
		url += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", l.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if token, ok := AccessTokenFromContext(ctx); ok {
		req.Header.Set(AccessTokenHeader, token)
	}

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		l.log.Warn("Backend request failed", zap.String("url", url), zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: GET %s: %w", l.name, url, ctxErr)
		}
		return nil, fmt.Errorf("%s: GET %s: %w: %w", l.name, url, errs.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read body: %w: %w", l.name, errs.ErrUnavailable, err)
	}

	l.log.Debug("Backend request",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Backend:    l.name,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	if len(body) > 0 && !json.Valid(body) {
		return nil, fmt.Errorf("%s: GET %s: %w", l.name, url, errors.New("response is not valid JSON"))
	}

	return &Response{Body: body, Headers: resp.Header}, nil
}
