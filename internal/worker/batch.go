package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"veracity/internal/model"
)

// Checker verifies a single claim. Declared here so the batch layer
// does not depend on the pipeline package.
type Checker interface {
	Check(ctx context.Context, input model.RawInput) (*model.CheckResponse, error)
}

// CheckJob verifies one claim line from a batch file
type CheckJob struct {
	Claim   string
	Checker Checker
}

// Execute runs the verification for this job's claim
func (j *CheckJob) Execute(ctx context.Context) Result {
	resp, err := j.Checker.Check(ctx, model.RawInput{Text: j.Claim})
	return &CheckResult{
		Claim:    j.Claim,
		Response: resp,
		Error:    err,
	}
}

// CheckResult is the outcome of one batch claim
type CheckResult struct {
	Claim    string
	Response *model.CheckResponse
	Error    error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies multiple claims concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given worker count
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies claims concurrently and returns one result per
// claim. Order of results follows completion, not input.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*CheckResult {
	if len(claims) == 0 {
		return []*CheckResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&CheckJob{
			Claim:   claim,
			Checker: b.checker,
		})
	}

	results := pool.Wait()

	checkResults := make([]*CheckResult, len(results))
	for i, result := range results {
		checkResults[i] = result.(*CheckResult)
	}
	return checkResults
}

// ProcessFile reads claims from a file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*CheckResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file, one per line. Empty
// lines and #-comments are skipped; duplicate lines are collapsed.
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return claims, nil
}
