package loadgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/ArgyPorgy/eigentribe/internal/domain/submission"
	"github.com/ArgyPorgy/eigentribe/pkg/logger"
)

// Name fragments combined into letter-only submitter names.
var (
	firstNames = []string{"Alice", "Bob", "Carol", "David", "Erin", "Frank", "Grace", "Heidi", "Ivan", "Judy"}
	lastNames  = []string{"Stone", "Rivers", "Woods", "Field", "Brook", "Hale", "Marsh", "Vale", "Frost", "Lake"}
)

// getRandomInt returns a random int in [0, n) using crypto/rand.
func getRandomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSubmissions creates the specified number of synthetic submissions.
func generateSubmissions(ctx context.Context, config *Config, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating submissions", logger.Int("numSubs", config.NumSubs))

	subs := make([]Submission, config.NumSubs)

	type result struct {
		index int
		sub   Submission
		err   error
	}
	resultChan := make(chan result, config.NumSubs)

	// Worker pool for generation
	workerCount := minInt(config.Workers, config.NumSubs)
	perWorker := config.NumSubs / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = config.NumSubs // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- result{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- result{index: i, sub: generateSingleSubmission(i)}
				}
			}
		}(start, end)
	}

	for i := 0; i < config.NumSubs; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case r := <-resultChan:
			if r.err != nil {
				return nil, fmt.Errorf("failed to generate submission %d: %w", r.index, r.err)
			}
			subs[r.index] = r.sub
		}
	}

	stats.SubsGenerated = len(subs)
	logger.Get().Info(ctx, "generated submissions successfully", logger.Int("count", len(subs)))

	return subs, nil
}

// generateSingleSubmission creates one valid synthetic submission. Every
// field passes the gateway's validation so that rejections observed
// during the run come from rate limiting, not field rules.
func generateSingleSubmission(index int) Submission {
	name := firstNames[getRandomInt(len(firstNames))] + " " + lastNames[getRandomInt(len(lastNames))]

	// uuid hex gives 32 chars, comfortably above the wallet minimum.
	wallet := "0x" + strings.ReplaceAll(uuid.New().String(), "-", "")

	link := fmt.Sprintf("https://x.com/loadgen/status/%d", index)

	tags := submission.Tags()
	tag := tags[getRandomInt(len(tags))]

	return Submission{
		Name:        name,
		Wallet:      wallet,
		Link:        link,
		ContentTags: []string{tag},
	}
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
