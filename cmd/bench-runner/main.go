package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"
)

type benchResult struct {
	Timestamp          string         `json:"timestamp"`
	BaseURL            string         `json:"base_url"`
	Scenario           string         `json:"scenario"`
	Transactions       int            `json:"transactions"`
	Concurrency        int            `json:"concurrency"`
	SuccessfulRequests int            `json:"successful_requests"`
	BusinessRejections int            `json:"business_rejections"`
	ErrorRequests      int            `json:"error_requests"`
	DurationSeconds    float64        `json:"duration_seconds"`
	AvgLatencyMs       float64        `json:"avg_latency_ms"`
	MinLatencyMs       float64        `json:"min_latency_ms"`
	MaxLatencyMs       float64        `json:"max_latency_ms"`
	P50LatencyMs       float64        `json:"p50_latency_ms"`
	P90LatencyMs       float64        `json:"p90_latency_ms"`
	P95LatencyMs       float64        `json:"p95_latency_ms"`
	P99LatencyMs       float64        `json:"p99_latency_ms"`
	ThroughputRPS      float64        `json:"throughput_rps"`
	StatusCounts       map[string]int `json:"status_counts"`
	RejectionKinds     map[string]int `json:"rejection_kinds"`
	FirstError         string         `json:"first_error"`
}

type metrics struct {
	mu             sync.Mutex
	success        int
	rejections     int
	errors         int
	total          time.Duration
	minLatency     time.Duration
	maxLatency     time.Duration
	latenciesMs    []float64
	statusCounts   map[string]int
	rejectionKinds map[string]int
	firstError     string
}

func newMetrics() *metrics {
	return &metrics{
		statusCounts:   make(map[string]int),
		rejectionKinds: make(map[string]int),
	}
}

func (m *metrics) record(latency time.Duration, status int, kind string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCounts[strconv.Itoa(status)]++
	switch {
	case err != nil:
		m.errors++
		if m.firstError == "" {
			m.firstError = err.Error()
		}
		return
	case kind != "":
		m.rejections++
		m.rejectionKinds[kind]++
	default:
		m.success++
	}
	m.total += latency
	if m.minLatency == 0 || latency < m.minLatency {
		m.minLatency = latency
	}
	if latency > m.maxLatency {
		m.maxLatency = latency
	}
	m.latenciesMs = append(m.latenciesMs, float64(latency.Milliseconds()))
}

func main() {
	baseURL := flag.String("base-url", getenv("CHECKOUT_BASE_URL", "http://localhost:8080"), "checkout-service base URL")
	transactions := flag.Int("transactions", 100, "number of checkout requests")
	concurrency := flag.Int("concurrency", 5, "number of concurrent workers")
	scenario := flag.String("scenario", "success", "payload scenario: success|reject-balance|reject-stock")
	timeout := flag.Duration("timeout", 5*time.Second, "per-request timeout")
	out := flag.String("out", "", "write the JSON result to this file")
	flag.Parse()

	payload, err := buildPayload(*scenario)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: *timeout}
	m := newMetrics()
	jobs := make(chan int)
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				reqStart := time.Now()
				status, kind, err := doCheckout(client, *baseURL, payload)
				m.record(time.Since(reqStart), status, kind, err)
			}
		}()
	}
	for i := 0; i < *transactions; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	result := summarize(m, *baseURL, *scenario, *transactions, *concurrency, elapsed)
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
	if *out != "" {
		if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write result: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildPayload returns the request body for a scenario. reject-balance and
// reject-stock exercise the failure path without mutating stock, so they
// measure steady-state latency; success drains the seeded ScratchCard stock
// and degrades into stock rejections once it runs out.
func buildPayload(scenario string) (map[string]any, error) {
	switch scenario {
	case "success":
		return map[string]any{
			"customer": "bench",
			"balance":  1000,
			"items":    []map[string]any{{"name": "ScratchCard", "quantity": 1}},
		}, nil
	case "reject-balance":
		return map[string]any{
			"customer": "bench",
			"balance":  0,
			"items":    []map[string]any{{"name": "ScratchCard", "quantity": 1}},
		}, nil
	case "reject-stock":
		return map[string]any{
			"customer": "bench",
			"balance":  100000,
			"items":    []map[string]any{{"name": "TV", "quantity": 100}},
		}, nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}
}

func doCheckout(client *http.Client, baseURL string, payload map[string]any) (int, string, error) {
	data, _ := json.Marshal(payload)
	resp, err := client.Post(baseURL+"/checkout", "application/json", bytes.NewReader(data))
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusConflict {
		return resp.StatusCode, rejectionKind(body), nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return resp.StatusCode, "", nil
}

func rejectionKind(body []byte) string {
	var parsed struct {
		ErrorKind string `json:"error_kind"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.ErrorKind == "" {
		return "UNKNOWN"
	}
	return parsed.ErrorKind
}

func summarize(m *metrics, baseURL, scenario string, transactions, concurrency int, elapsed time.Duration) benchResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := benchResult{
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		BaseURL:            baseURL,
		Scenario:           scenario,
		Transactions:       transactions,
		Concurrency:        concurrency,
		SuccessfulRequests: m.success,
		BusinessRejections: m.rejections,
		ErrorRequests:      m.errors,
		DurationSeconds:    elapsed.Seconds(),
		MinLatencyMs:       float64(m.minLatency.Milliseconds()),
		MaxLatencyMs:       float64(m.maxLatency.Milliseconds()),
		ThroughputRPS:      float64(m.success+m.rejections) / elapsed.Seconds(),
		StatusCounts:       m.statusCounts,
		RejectionKinds:     m.rejectionKinds,
		FirstError:         m.firstError,
	}
	if n := m.success + m.rejections; n > 0 {
		result.AvgLatencyMs = float64(m.total.Milliseconds()) / float64(n)
	}
	result.P50LatencyMs, result.P90LatencyMs, result.P95LatencyMs, result.P99LatencyMs = calcPercentiles(m.latenciesMs)
	return result
}

func calcPercentiles(values []float64) (float64, float64, float64, float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return percentile(sorted, 50), percentile(sorted, 90), percentile(sorted, 95), percentile(sorted, 99)
}

func percentile(sorted []float64, p float64) float64 {
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
