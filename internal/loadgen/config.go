package loadgen

import "time"

// Config holds configuration for the submission load test
type Config struct {
	BaseURL    string        // Base URL of the gateway
	Token      string        // Bearer token of the test account
	NumSubs    int           // Number of submissions to generate
	TopN       int           // Number of leaderboard entries to fetch
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated submissions
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Submission is one synthetic entry pushed through the gateway.
type Submission struct {
	Name        string   `json:"name"`
	Wallet      string   `json:"wallet"`
	Link        string   `json:"link"`
	ContentTags []string `json:"contentTags"`
}

// Entry represents a leaderboard entry as returned by the gateway.
type Entry struct {
	ID       string `json:"id"`
	Rank     int    `json:"rank"`
	UserName string `json:"user_name"`
	Points   int    `json:"points"`
}

// errorResponse is the gateway's rejection envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// Stats holds test statistics
type Stats struct {
	SubsGenerated      int
	SubsSubmitted      int
	SubsAccepted       int
	SubsRateLimited    int
	SubsRejected       int
	SubsFailed         int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
