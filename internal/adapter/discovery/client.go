package discovery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thushan/ollaview/internal/config"
	"github.com/thushan/ollaview/internal/core/domain"
	"github.com/thushan/ollaview/internal/logger"
	"github.com/thushan/ollaview/internal/util"
	"github.com/thushan/ollaview/internal/version"
)

const (
	DefaultContentType = "application/json"

	DefaultMaxIdleConnections = 2
	DefaultIdleConnTimeout    = 30 * time.Second
)

// TagsClient lists local models through the service's /api/tags endpoint.
// One GET per call, no retries.
type TagsClient struct {
	httpClient  *http.Client
	logger      *logger.StyledLogger
	endpoint    string
	maxBodySize int64
}

func NewTagsClient(cfg config.ServiceConfig, logger *logger.StyledLogger) *TagsClient {
	return &TagsClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    DefaultMaxIdleConnections,
				IdleConnTimeout: DefaultIdleConnTimeout,
			},
		},
		logger:      logger,
		endpoint:    util.ResolveURLPath(cfg.URL, cfg.TagsPath),
		maxBodySize: cfg.MaxBodySize,
	}
}

// Endpoint is the full URL the client queries
func (c *TagsClient) Endpoint() string {
	return c.endpoint
}

// ListModels fetches the installed models. Errors are always one of
// *ConnectionError, *ServiceError or *UnexpectedError.
func (c *TagsClient) ListModels(ctx context.Context) (*domain.ModelList, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &UnexpectedError{URL: c.endpoint, Operation: "create_request", Err: err}
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", DefaultContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(c.endpoint, time.Since(startTime), err)
	}
	defer func(Body io.ReadCloser) {
		// dont care about errors
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		// drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &ServiceError{
			URL:        c.endpoint,
			Status:     http.StatusText(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Latency:    time.Since(startTime),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, &UnexpectedError{URL: c.endpoint, Operation: "read_response", Latency: time.Since(startTime), Err: err}
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, &UnexpectedError{
			URL:       c.endpoint,
			Operation: "read_response",
			Latency:   time.Since(startTime),
			Err:       fmt.Errorf("response larger than %d bytes", c.maxBodySize),
		}
	}

	models, err := ParseTagsResponse(body)
	if err != nil {
		return nil, &UnexpectedError{URL: c.endpoint, Operation: "parse_response", Latency: time.Since(startTime), Err: err}
	}

	latency := time.Since(startTime)
	c.logger.Debug("Fetched model list", "endpoint", c.endpoint, "models", len(models), "latency", latency)

	return &domain.ModelList{
		Models:    models,
		Endpoint:  c.endpoint,
		FetchedAt: time.Now(),
		Latency:   latency,
	}, nil
}
