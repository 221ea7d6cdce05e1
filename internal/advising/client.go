// Package advising talks to the remote recommendation and learning
// resources services.
package advising

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/google/uuid"
)

const (
	endpointRecommend = "/recommend-majors"
	endpointResources = "/learning-resources"

	// MaxSuggestions caps how many ranked majors are kept.
	MaxSuggestions = 3
)

// Recommender maps a student's interests and school to ranked majors.
type Recommender interface {
	Recommend(ctx context.Context, interests []string, school string) ([]string, error)
}

// ResourceFetcher returns learning resources for a major.
type ResourceFetcher interface {
	FetchResources(ctx context.Context, major, query string) ([]domain.Resource, error)
}

// Client implements Recommender and ResourceFetcher over HTTP.
// It never retries; retries are always initiated by the student.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

var (
	_ Recommender     = (*Client)(nil)
	_ ResourceFetcher = (*Client)(nil)
)

// NewClient creates a Client for the services at cfg.BaseURL.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type recommendRequest struct {
	Interests  []string `json:"interests"`
	SchoolName string   `json:"school_name"`
}

type recommendResponse struct {
	RecommendedMajors []string `json:"recommended_majors"`
	SchoolName        string   `json:"school_name"`
}

type resourcesRequest struct {
	Major          string `json:"major"`
	AdditionalInfo string `json:"additional_info"`
}

type errorBody struct {
	Message string `json:"message"`
}

// Recommend returns at most MaxSuggestions majors in the service's rank
// order. Interests are lower-cased before sending.
func (c *Client) Recommend(ctx context.Context, interests []string, school string) ([]string, error) {
	if len(interests) == 0 || strings.TrimSpace(school) == "" {
		return nil, ErrInvalidRequest
	}

	lowered := make([]string, len(interests))
	for i, in := range interests {
		lowered[i] = strings.ToLower(in)
	}

	var resp recommendResponse
	err := c.post(ctx, endpointRecommend, fallbackMajorsMessage,
		recommendRequest{Interests: lowered, SchoolName: school},
		func(body []byte) error {
			if err := json.Unmarshal(body, &resp); err != nil {
				return &RequestFailedError{
					Endpoint: endpointRecommend,
					Message:  fallbackMajorsMessage,
					Err:      fmt.Errorf("%w: %v", ErrMalformedResponse, err),
				}
			}
			if len(resp.RecommendedMajors) == 0 {
				return ErrEmptyResult
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	majors := resp.RecommendedMajors
	if len(majors) > MaxSuggestions {
		majors = majors[:MaxSuggestions]
	}
	return append([]string(nil), majors...), nil
}

// FetchResources returns the resources the service lists for major,
// narrowed by the free-text query when one is given. A body that is not
// an array of resource records fails with ErrMalformedResponse.
func (c *Client) FetchResources(ctx context.Context, major, query string) ([]domain.Resource, error) {
	var out []domain.Resource
	err := c.post(ctx, endpointResources, fallbackResourcesMessage,
		resourcesRequest{Major: major, AdditionalInfo: query},
		func(body []byte) error {
			if err := validateResources(body); err != nil {
				return err
			}
			if err := json.Unmarshal(body, &out); err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Resource{}
	}
	return out, nil
}

// post sends one JSON request and reports it to the observer. decode runs
// on a 2xx body so its verdict is part of the recorded outcome.
func (c *Client) post(ctx context.Context, endpoint, fallback string, body any, decode func([]byte) error) error {
	start := time.Now()
	reqID := uuid.NewString()

	if d := c.cfg.Timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	status, respBody, err := c.doRequest(ctx, endpoint, reqID, body)
	switch {
	case err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = &RequestFailedError{Endpoint: endpoint, Message: timeoutMessage, Err: ErrTimeout}
	case err != nil:
		err = &RequestFailedError{Endpoint: endpoint, Message: fallback, Err: err}
	default:
		err = statusError(endpoint, fallback, status, respBody)
		if err == nil {
			err = decode(respBody)
		}
	}

	c.observer.OnCallComplete(CallEvent{
		Endpoint:  endpoint,
		RequestID: reqID,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) doRequest(ctx context.Context, endpoint, reqID string, body any) (int, []byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + endpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return httpResp.StatusCode, respBody, nil
}

// statusError maps a non-2xx status to a RequestFailedError, taking the
// message from the body when the service supplied one.
func statusError(endpoint, fallback string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := fallback
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Message != "" {
		msg = eb.Message
	}
	return &RequestFailedError{Endpoint: endpoint, Status: status, Message: msg}
}
