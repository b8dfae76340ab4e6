// Package naver provides a client for the source platform's place-detail
// GraphQL endpoint, its mobile text search, and listing feed pages.
package naver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const mobileUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

const placeDetailQuery = `
query getPlaceDetail($input: PlaceDetailInput!) {
  placeDetail(input: $input) {
    base {
      name
      category
      address
      roadAddress
      phone
      virtualPhone
      microReviews
      visitorReviewsTotal
      visitorReviewsScore
      coordinate { x y }
    }
    newBusinessHours {
      name
      businessHours {
        day
        description
        businessHours {
          start
          end
        }
      }
    }
    menus {
      name
      price
      images
      description
      recommend
      priority
    }
    baemin {
      menuGroups {
        name
        isRepresentative
        menus {
          name
          price
          desc
          images
          isRepresentative
        }
      }
    }
    images {
      totalImages
    }
    hasFeed {
      feedExist
    }
    keywords
    visitorReviews(input: { display: 30 }) {
      items {
        id
        rating
        body
        nickname
        visitCount
        created
        visited
        media { type thumbnail }
        reply { body }
        votedKeywords { name }
      }
      total
    }
    visitorReviewStats {
      analysis {
        themes { label count }
      }
    }
  }
}`

// Client defines the source-platform operations used by the pipeline.
type Client interface {
	// PlaceDetail runs the structured query for one listing identifier.
	// Returns (nil, nil) when the platform reports the listing absent;
	// that is a recoverable condition, not an error.
	PlaceDetail(ctx context.Context, placeID string) (*PlaceDetail, error)
	// SearchHTML fetches the mobile text-search result document for a
	// free-text phrase.
	SearchHTML(ctx context.Context, query string) (string, error)
	// FeedHTML fetches the listing's activity-feed page document.
	FeedHTML(ctx context.Context, placeID, category string) (string, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithGraphQLURL overrides the structured-query endpoint (for testing).
func WithGraphQLURL(u string) Option {
	return func(c *httpClient) { c.graphqlURL = u }
}

// WithSearchBaseURL overrides the text-search base URL (for testing).
func WithSearchBaseURL(u string) Option {
	return func(c *httpClient) { c.searchBaseURL = u }
}

// WithPlaceBaseURL overrides the mobile place base URL (for testing).
func WithPlaceBaseURL(u string) Option {
	return func(c *httpClient) { c.placeBaseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithUserAgent overrides the mobile user agent.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) { c.userAgent = ua }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.http.Timeout = d }
}

type httpClient struct {
	graphqlURL    string
	searchBaseURL string
	placeBaseURL  string
	userAgent     string
	http          *http.Client
	breaker       *breaker
}

// NewClient creates a source-platform client. Each call carries a finite
// timeout from the underlying HTTP client; pacing between calls is the
// caller's concern.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		graphqlURL:    "https://pcmap-api.place.naver.com/place/graphql",
		searchBaseURL: "https://m.search.naver.com",
		placeBaseURL:  "https://m.place.naver.com",
		userAgent:     mobileUA,
		http: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		breaker: newBreaker(5, time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status code should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes a request with exponential backoff on transient
// failures. Returns the response body and status code, or the last error
// after exhausting retries.
func (c *httpClient) retryDo(ctx context.Context, build func() (*http.Request, error)) (body []byte, status int, err error) {
	if !c.breaker.allow() {
		return nil, 0, ErrThrottled
	}
	defer func() {
		c.breaker.record(err != nil || retryableStatusCode(status))
	}()

	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, 0, eris.Wrap(err, "naver: create request")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "naver: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("naver: status %d", resp.StatusCode)
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) PlaceDetail(ctx context.Context, placeID string) (*PlaceDetail, error) {
	payload, err := json.Marshal(map[string]any{
		"operationName": "getPlaceDetail",
		"variables": map[string]any{
			"input": map[string]any{
				"id":         placeID,
				"isNx":       false,
				"deviceType": "mobile",
			},
		},
		"query": placeDetailQuery,
	})
	if err != nil {
		return nil, eris.Wrap(err, "naver: marshal query")
	}

	body, statusCode, err := c.retryDo(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")
		req.Header.Set("Referer", "https://m.place.naver.com/")
		req.Header.Set("x-apollo-operation-name", "getPlaceDetail")
		req.Header.Set("apollo-require-preflight", "true")
		return req, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "naver: detail request failed")
	}
	if statusCode != http.StatusOK {
		return nil, eris.Errorf("naver: detail unexpected status %d", statusCode)
	}

	var result graphqlResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "naver: unmarshal detail response")
	}

	if len(result.Errors) > 0 {
		msg := result.Errors[0].Message
		// 404 / "no result" means the listing is absent, which is
		// recoverable; anything else is fatal for this call.
		if strings.Contains(msg, "404") || strings.Contains(msg, "no result") {
			return nil, nil
		}
		return nil, eris.Errorf("naver: graphql error: %s", msg)
	}

	detail := result.Data.PlaceDetail
	if detail == nil || detail.Base == nil || detail.Base.Name == "" {
		return nil, nil
	}
	return detail, nil
}

func (c *httpClient) SearchHTML(ctx context.Context, query string) (string, error) {
	reqURL := fmt.Sprintf("%s/search.naver?query=%s", c.searchBaseURL, url.QueryEscape(query))

	body, statusCode, err := c.retryDo(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")
		return req, nil
	})
	if err != nil {
		return "", eris.Wrap(err, "naver: search request failed")
	}
	if statusCode != http.StatusOK {
		return "", eris.Errorf("naver: search unexpected status %d", statusCode)
	}
	return string(body), nil
}

func (c *httpClient) FeedHTML(ctx context.Context, placeID, category string) (string, error) {
	reqURL := fmt.Sprintf("%s/%s/%s/feed", c.placeBaseURL, category, placeID)

	body, statusCode, err := c.retryDo(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")
		return req, nil
	})
	if err != nil {
		return "", eris.Wrap(err, "naver: feed request failed")
	}
	if statusCode != http.StatusOK {
		return "", eris.Errorf("naver: feed unexpected status %d", statusCode)
	}
	return string(body), nil
}
