// Command loadtest fires concurrent transfers between seeded accounts and then
// checks that the total balance across them did not change.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// transferRequest is the POST /api/transactions payload
type transferRequest struct {
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	AccountNumber string `json:"accountNumber"`
}

// accountView is the part of GET /api/account the test needs
type accountView struct {
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
}

// participant is a seeded user and their account
type participant struct {
	UserID        uuid.UUID
	AccountNumber string
}

// testResult contains metrics for a single request
type testResult struct {
	StatusCode   int
	ResponseTime time.Duration
	Err          error
}

// testStats contains aggregated test statistics
type testStats struct {
	mu            sync.Mutex
	total         int
	byStatus      map[int]int
	errors        map[string]int
	responseTimes []time.Duration
}

func (s *testStats) record(result testResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result.Err != nil {
		s.errors[result.Err.Error()]++
	} else {
		s.byStatus[result.StatusCode]++
	}
	s.responseTimes = append(s.responseTimes, result.ResponseTime)
}

func (s *testStats) completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responseTimes)
}

var amounts = []string{"1.00", "2.50", "5.00", "10.00", "25.00"}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	totalRequests := flag.Int("n", 200, "Total number of transfers to submit")
	userIDsStr := flag.String("u", "5d1b5b8e-7a43-4d0e-9a57-0f3c1c1a0001,5d1b5b8e-7a43-4d0e-9a57-0f3c1c1a0002,5d1b5b8e-7a43-4d0e-9a57-0f3c1c1a0003",
		"Comma-separated list of seeded user IDs")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 0, "Delay before each request in milliseconds")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	ctx := context.Background()

	var userIDs []uuid.UUID
	for _, idStr := range strings.Split(*userIDsStr, ",") {
		id, err := uuid.Parse(strings.TrimSpace(idStr))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid user id %q: %v\n", idStr, err)
			os.Exit(2)
		}
		userIDs = append(userIDs, id)
	}
	if len(userIDs) < 2 {
		fmt.Fprintln(os.Stderr, "at least two users are required for transfers")
		os.Exit(2)
	}

	participants, before, err := snapshot(ctx, client, *baseURL, userIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read starting balances: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Load testing transfers across %d accounts, total balance %s\n", len(participants), before.StringFixed(2))
	fmt.Printf("Concurrency: %d workers, %d requests, %d ms delay\n", *concurrency, *totalRequests, *delayMs)

	stats := &testStats{
		total:         *totalRequests,
		byStatus:      make(map[int]int),
		errors:        make(map[string]int),
		responseTimes: make([]time.Duration, 0, *totalRequests),
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			fmt.Printf("Progress: %d/%d requests completed\n", stats.completed(), stats.total)
		}
	}()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(*concurrency)

	startTime := time.Now()
	for i := 0; i < *totalRequests; i++ {
		group.Go(func() error {
			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}

			from := participants[rand.Intn(len(participants))]
			to := participants[rand.Intn(len(participants))]
			for to.UserID == from.UserID {
				to = participants[rand.Intn(len(participants))]
			}

			stats.record(transfer(groupCtx, client, *baseURL, from, to, amounts[rand.Intn(len(amounts))]))
			return nil
		})
	}
	_ = group.Wait()
	elapsed := time.Since(startTime)

	_, after, err := snapshot(ctx, client, *baseURL, userIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read final balances: %v\n", err)
		os.Exit(1)
	}

	printResults(stats, elapsed)

	fmt.Println("\n================= CONSERVATION =================")
	fmt.Printf("Total before: %s\n", before.StringFixed(2))
	fmt.Printf("Total after:  %s\n", after.StringFixed(2))
	if !before.Equal(after) {
		fmt.Println("FAIL: money was created or destroyed")
		os.Exit(1)
	}
	fmt.Println("OK: total balance unchanged")
}

// snapshot reads every participant's account and returns the summed balance
func snapshot(ctx context.Context, client *http.Client, baseURL string, userIDs []uuid.UUID) ([]participant, decimal.Decimal, error) {
	participants := make([]participant, 0, len(userIDs))
	total := decimal.Zero

	for _, userID := range userIDs {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/account", nil)
		if err != nil {
			return nil, total, err
		}
		req.Header.Set("X-User-ID", userID.String())

		resp, err := client.Do(req)
		if err != nil {
			return nil, total, err
		}

		var view accountView
		err = json.NewDecoder(resp.Body).Decode(&view)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, total, fmt.Errorf("user %s: HTTP status code %d", userID, resp.StatusCode)
		}
		if err != nil {
			return nil, total, fmt.Errorf("user %s: %w", userID, err)
		}

		balance, err := decimal.NewFromString(view.Balance)
		if err != nil {
			return nil, total, fmt.Errorf("user %s: %w", userID, err)
		}

		total = total.Add(balance)
		participants = append(participants, participant{UserID: userID, AccountNumber: view.AccountNumber})
	}

	return participants, total, nil
}

// transfer submits one transfer and measures the round trip
func transfer(ctx context.Context, client *http.Client, baseURL string, from, to participant, amount string) testResult {
	body, err := json.Marshal(transferRequest{
		Amount:        amount,
		Description:   "Load test",
		Type:          "TRANSFER",
		AccountNumber: to.AccountNumber,
	})
	if err != nil {
		return testResult{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/transactions", bytes.NewReader(body))
	if err != nil {
		return testResult{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", from.UserID.String())
	req.Header.Set("Idempotency-Key", uuid.NewString())

	start := time.Now()
	resp, err := client.Do(req)
	result := testResult{ResponseTime: time.Since(start), Err: err}
	if err == nil {
		result.StatusCode = resp.StatusCode
		_ = resp.Body.Close()
	}
	return result
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[min(len(sorted)*p/100, len(sorted)-1)]
}

func printResults(stats *testStats, elapsed time.Duration) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	sorted := slices.Clone(stats.responseTimes)
	slices.Sort(sorted)

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = sum / time.Duration(len(sorted))
	}

	committed := stats.byStatus[http.StatusCreated]

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.total)
	fmt.Printf("Committed (201):     %d\n", committed)
	fmt.Printf("Total Test Time:     %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Committed TPS:       %.2f\n", float64(committed)/elapsed.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	if len(sorted) > 0 {
		fmt.Printf("Minimum Response:    %v\n", sorted[0])
		fmt.Printf("Maximum Response:    %v\n", sorted[len(sorted)-1])
	}
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	// 400 is an expected insufficient-funds rejection; 409 a serialization conflict
	fmt.Println("\n----------------- STATUS DISTRIBUTION -----------------")
	for status, count := range stats.byStatus {
		fmt.Printf("HTTP %d: %d\n", status, count)
	}

	if len(stats.errors) > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for msg, count := range stats.errors {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
}
