package source

import (
	"context"
	"fmt"
	"gemscout/internal/models"
	"gemscout/internal/providers"
	"gemscout/internal/structures"
	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultUserAgent = "gemscout/1.0"

// HTTPSource talks to a catalog scraper gateway over REST. Requests are
// rate limited and retried with exponential backoff on 429, 5xx and
// network errors.
type HTTPSource struct {
	httpClient *http.Client
	baseURL    string
	country    string
	lang       string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
	backoff    func(attempt int) time.Duration
	now        func() time.Time
	logger     providers.Logger
}

func NewHTTPSource(conf *structures.Config, logger providers.Logger) *HTTPSource {
	rps := conf.Source.RPS
	if rps <= 0 {
		rps = 1
	}
	userAgent := conf.Source.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTTPSource{
		httpClient: &http.Client{Timeout: conf.Source.Timeout},
		baseURL:    strings.TrimRight(conf.Source.BaseURL, "/"),
		country:    conf.Source.Country,
		lang:       conf.Source.Lang,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: conf.Source.MaxRetries,
		backoff:    exponentialBackoff,
		now:        time.Now,
		logger:     logger,
	}
}

// Backoff: 1s, 2s, 4s...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

func (s *HTTPSource) Search(ctx context.Context, q models.SearchQuery) ([]*models.Listing, error) {
	params := url.Values{}
	params.Set("term", q.Term)
	params.Set("num", strconv.Itoa(q.Count))
	if q.Price != "" {
		params.Set("price", q.Price)
	}
	params.Set("fullDetail", strconv.FormatBool(q.FullDetail))

	var res []wireListing
	if err := s.get(ctx, "/search", params, &res); err != nil {
		return nil, err
	}
	return toListings(res, q.FullDetail, s.now()), nil
}

func (s *HTTPSource) List(ctx context.Context, q models.ListQuery) ([]*models.Listing, error) {
	params := url.Values{}
	params.Set("category", q.Category)
	params.Set("collection", q.Collection)
	params.Set("num", strconv.Itoa(q.Count))
	params.Set("fullDetail", strconv.FormatBool(q.FullDetail))

	var res []wireListing
	if err := s.get(ctx, "/list", params, &res); err != nil {
		return nil, err
	}
	return toListings(res, q.FullDetail, s.now()), nil
}

func (s *HTTPSource) Detail(ctx context.Context, appID string) (*models.Listing, error) {
	var res wireListing
	if err := s.get(ctx, "/apps/"+url.PathEscape(appID), url.Values{}, &res); err != nil {
		return nil, err
	}
	if res.AppID == "" {
		return nil, fmt.Errorf("app %s: %w", appID, ErrNotFound)
	}
	return res.toListing(true, s.now()), nil
}

func (s *HTTPSource) DeveloperApps(ctx context.Context, developerID string, count int) ([]*models.Listing, error) {
	params := url.Values{}
	params.Set("num", strconv.Itoa(count))

	var res []wireListing
	if err := s.get(ctx, "/developers/"+url.PathEscape(developerID)+"/apps", params, &res); err != nil {
		return nil, err
	}
	return toListings(res, false, s.now()), nil
}

func (s *HTTPSource) Similar(ctx context.Context, appID string, fullDetail bool) ([]*models.Listing, error) {
	params := url.Values{}
	params.Set("fullDetail", strconv.FormatBool(fullDetail))

	var res []wireListing
	if err := s.get(ctx, "/apps/"+url.PathEscape(appID)+"/similar", params, &res); err != nil {
		return nil, err
	}
	return toListings(res, fullDetail, s.now()), nil
}

func (s *HTTPSource) get(ctx context.Context, path string, params url.Values, target interface{}) error {
	params.Set("country", s.country)
	params.Set("lang", s.lang)
	u := s.baseURL + path + "?" + params.Encode()

	var lastErr error
	for i := 0; i <= s.maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(s.backoff(i)):
			case <-ctx.Done():
				return ctx.Err()
			}
			s.logger.Debugf(providers.TypeSource, "retry %d for %s: %s", i, path, lastErr)
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := s.do(ctx, u, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%s after %d retries: %w", path, s.maxRetries, lastErr)
}

func (s *HTTPSource) do(ctx context.Context, u string, target interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("malformed response: %w", err)
	}
	return false, nil
}
