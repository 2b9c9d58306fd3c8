// services/fx_service.go
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/colin-rod/tripthreads-sub007/utils"
)

const (
	defaultFXBaseURL     = "https://api.frankfurter.app"
	defaultFXTimeoutSecs = 8
	defaultFXCacheTTLHrs = 24
)

// rateEntry is one cached exchange rate with its fetch timestamp
type rateEntry struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// FXService resolves currency-pair/date exchange rates. Lookups go to a local
// cache first and fall back to a bounded remote fetch. A failed fetch returns
// utils.ErrRateUnavailable, which callers treat as a soft failure: past
// expenses carry a frozen rate and never need re-resolution, so this path
// only affects fresh aggregation of legacy data.
type FXService struct {
	baseURL string
	client  *http.Client
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]rateEntry
}

// NewFXService creates an FX service configured from the environment
// (FX_API_URL, FX_TIMEOUT_SECONDS, FX_CACHE_TTL_HOURS).
func NewFXService() *FXService {
	baseURL := getEnvOrDefault("FX_API_URL", defaultFXBaseURL)
	timeout := time.Duration(getEnvIntOrDefault("FX_TIMEOUT_SECONDS", defaultFXTimeoutSecs)) * time.Second
	ttl := time.Duration(getEnvIntOrDefault("FX_CACHE_TTL_HOURS", defaultFXCacheTTLHrs)) * time.Hour

	return NewFXServiceWithOptions(baseURL, &http.Client{Timeout: timeout}, ttl, time.Now)
}

// NewFXServiceWithOptions creates an FX service with explicit collaborators.
// The clock is injected so cache expiry is testable.
func NewFXServiceWithOptions(baseURL string, client *http.Client, ttl time.Duration, now func() time.Time) *FXService {
	return &FXService{
		baseURL: baseURL,
		client:  client,
		ttl:     ttl,
		now:     now,
		cache:   make(map[string]rateEntry),
	}
}

// fxResponse is the remote rate provider's JSON payload
type fxResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Resolve returns the exchange rate from one currency to another for a date.
// Same-currency pairs always resolve to 1 without any lookup.
func (s *FXService) Resolve(from, to string, date time.Time) (decimal.Decimal, error) {
	from = utils.NormalizeCurrency(from)
	to = utils.NormalizeCurrency(to)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	key := from + "|" + to + "|" + date.Format(utils.DateLayout)

	s.mu.Lock()
	entry, ok := s.cache[key]
	s.mu.Unlock()
	if ok && s.now().Sub(entry.fetchedAt) < s.ttl {
		return entry.rate, nil
	}

	rate, err := s.fetchRate(from, to, date)
	if err != nil {
		slog.Warn("FX rate fetch failed",
			"from", from, "to", to, "date", date.Format(utils.DateLayout), "error", err)
		return decimal.Decimal{}, utils.ErrRateUnavailable
	}

	s.mu.Lock()
	s.cache[key] = rateEntry{rate: rate, fetchedAt: s.now()}
	s.mu.Unlock()

	return rate, nil
}

// fetchRate performs the bounded remote lookup
func (s *FXService) fetchRate(from, to string, date time.Time) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s?from=%s&to=%s", s.baseURL, date.Format(utils.DateLayout), from, to)

	resp, err := s.client.Get(url)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var payload fxResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode rate response: %v", err)
	}

	rate, ok := payload.Rates[to]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("rate for %s missing from response", to)
	}
	if !rate.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("rate for %s is not positive", to)
	}

	return rate, nil
}

// getEnvOrDefault reads an environment variable with a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvIntOrDefault reads an integer environment variable with a default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
