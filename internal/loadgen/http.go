package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Outcome of one submission attempt.
const (
	outcomeAccepted    = "accepted"
	outcomeRateLimited = "rate_limited"
	outcomeRejected    = "rejected"
	outcomeFailed      = "failed"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
	token  string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration, token string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
		token:  token,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs an authenticated POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitAll pushes submissions through the gateway concurrently using a
// worker pool. With a single test account most attempts are expected to
// rate-limit; the breakdown is the point of the run.
func submitAll(ctx context.Context, config *Config, subs []Submission, stats *Stats) error {
	log.Printf("submitting %d submissions with %d workers...", len(subs), config.Workers)

	client := newHTTPClient(config.Timeout, config.Token)
	url := config.BaseURL + "/api/submit"

	// Counters for statistics
	var (
		accepted    int64
		rateLimited int64
		rejected    int64
		failed      int64
		submitted   int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	subChan := make(chan Submission, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for sub := range subChan {
				select {
				case <-ctx.Done():
					return
				default:
					outcome := submitSingle(ctx, client, url, sub)

					atomic.AddInt64(&submitted, 1)
					switch outcome {
					case outcomeAccepted:
						atomic.AddInt64(&accepted, 1)
					case outcomeRateLimited:
						atomic.AddInt64(&rateLimited, 1)
					case outcomeRejected:
						atomic.AddInt64(&rejected, 1)
					case outcomeFailed:
						atomic.AddInt64(&failed, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						acc := atomic.LoadInt64(&accepted)
						rl := atomic.LoadInt64(&rateLimited)
						rej := atomic.LoadInt64(&rejected)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("progress: %d/%d submitted (accepted: %d, rate-limited: %d, rejected: %d, failed: %d)",
								total, len(subs), acc, rl, rej, fail)
						} else {
							fmt.Printf("\rsubmitted: %d/%d (accepted: %d, rate-limited: %d, rejected: %d, failed: %d)",
								total, len(subs), acc, rl, rej, fail)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(subChan)
		for _, sub := range subs {
			select {
			case <-ctx.Done():
				return
			case subChan <- sub:
			}
		}
	}()

	wg.Wait()

	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	stats.SubsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SubsAccepted = int(atomic.LoadInt64(&accepted))
	stats.SubsRateLimited = int(atomic.LoadInt64(&rateLimited))
	stats.SubsRejected = int(atomic.LoadInt64(&rejected))
	stats.SubsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`submission completed:
   Accepted: %d
   Rate-limited: %d
   Rejected: %d
   Failed: %d
`, stats.SubsAccepted, stats.SubsRateLimited, stats.SubsRejected, stats.SubsFailed)

	return nil
}

// submitSingle submits one entry and classifies the gateway's answer.
func submitSingle(ctx context.Context, client *HTTPClient, url string, sub Submission) string {
	resp, err := client.Post(ctx, url, sub)
	if err != nil {
		return outcomeFailed
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return outcomeFailed
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return outcomeAccepted
	case http.StatusTooManyRequests:
		return outcomeRateLimited
	case http.StatusBadRequest, http.StatusUnauthorized:
		var er errorResponse
		if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
			log.Printf("rejected: %s", er.Error)
		}
		return outcomeRejected
	default:
		return outcomeFailed
	}
}

// getLeaderboard fetches the current top-N standings.
func getLeaderboard(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	client := newHTTPClient(config.Timeout, config.Token)
	url := fmt.Sprintf("%s/api/leaderboard?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard request failed with status: %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse leaderboard: %w", err)
	}

	stats.LeaderboardEntries = len(entries)
	return entries, nil
}
