package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ArgyPorgy/eigentribe/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// Run executes the complete submission load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting submission load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("submissions", config.NumSubs),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check gateway health
	if err := checkGatewayHealth(ctx, config); err != nil {
		return fmt.Errorf("gateway health check failed: %w", err)
	}

	// Step 2: Generate submissions
	subs, err := generateSubmissions(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("submission generation failed: %w", err)
	}

	// Step 3: Submit concurrently
	if err := submitAll(ctx, config, subs, stats); err != nil {
		return fmt.Errorf("submission run failed: %w", err)
	}

	// Step 4: Fetch the leaderboard
	leaderboard, err := getLeaderboard(ctx, config, stats)
	if err != nil {
		logger.Get().Warn(ctx, "leaderboard retrieval failed", logger.Error(err))
	} else {
		verifyLeaderboard(ctx, leaderboard)
	}

	// Step 5: Save submissions to file
	if err := saveSubmissionsToFile(ctx, config, subs); err != nil {
		logger.Get().Warn(ctx, "failed to save submissions to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "load test completed")
	return nil
}

// checkGatewayHealth verifies the gateway is running.
func checkGatewayHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking gateway health")

	client := newHTTPClient(config.Timeout, config.Token)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to gateway: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics)
	if resp.StatusCode != 200 {
		return fmt.Errorf("gateway health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "gateway is healthy")
	return nil
}

// verifyLeaderboard sanity-checks the returned standings: ranks must
// ascend from 1 with no gaps.
func verifyLeaderboard(ctx context.Context, entries []Entry) {
	for i, e := range entries {
		if e.Rank != i+1 {
			logger.Get().Warn(ctx, "leaderboard rank out of order",
				logger.Int("index", i),
				logger.Int("rank", e.Rank))
			return
		}
	}
	logger.Get().Info(ctx, "leaderboard ordering verified", logger.Int("entries", len(entries)))
}

// saveSubmissionsToFile saves the generated submissions to a JSON file.
func saveSubmissionsToFile(ctx context.Context, config *Config, subs []Submission) error {
	if len(subs) == 0 {
		return fmt.Errorf("no submissions to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_submissions_" + timestamp + ".json"
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}
	if err := os.WriteFile(filename, raw, outputPermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var acceptRate, subsPerSecond float64

	if stats.SubsSubmitted > 0 {
		acceptRate = float64(stats.SubsAccepted) / float64(stats.SubsSubmitted) * 100
	}

	if stats.Duration > 0 {
		subsPerSecond = float64(stats.SubsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("subsGenerated", stats.SubsGenerated),
		logger.Int("subsSubmitted", stats.SubsSubmitted),
		logger.Int("subsAccepted", stats.SubsAccepted),
		logger.Int("subsRateLimited", stats.SubsRateLimited),
		logger.Int("subsRejected", stats.SubsRejected),
		logger.Int("subsFailed", stats.SubsFailed),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Any("acceptRate", acceptRate),
		logger.Any("subsPerSecond", subsPerSecond))
}
