package loadgen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ArgyPorgy/eigentribe/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "loadtest_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	os.Stdout.WriteString(`EigenTribe Submission Load Tool
===============================

A concurrent tool for exercising the submission gateway: generation,
authenticated submission, rate-limit behavior, and leaderboard reads.

Usage:
  go run cmd/loadtest/main.go -token <bearer-token> [options]

Options:
  -url string
        Base URL of the gateway (default "http://localhost:8080")
  -token string
        Bearer token of the test account (required)
  -subs int
        Number of submissions to generate and submit (default 100)
  -top int
        Number of leaderboard entries to fetch (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated submissions (default: generated_submissions_TIMESTAMP.json)
  -log string
        Log file for test output (default: loadtest_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Note: the gateway rate-limits per account, so with a single token most
attempts past the first are expected to come back 429. That breakdown
is part of what the run verifies.

Examples:
  # Smoke test against a local gateway
  go run cmd/loadtest/main.go -token $TOKEN -subs 10

  # Heavier run with custom parameters
  go run cmd/loadtest/main.go -token $TOKEN -subs 1000 -workers 16 -url http://localhost:8080

  # Verbose output to a named log file
  go run cmd/loadtest/main.go -token $TOKEN -verbose -log my_run.log
`)
}
