// Command benchmark fires concurrent requests at a running API instance and
// reports latency percentiles per endpoint. It is a developer tool for sizing
// the query timeout and the stats fan-out, not a load generator for CI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
)

const defaultBaseURL = "http://localhost:8080"

var defaultEndpoints = []string{
	"/health",
	"/api/v1/players",
	"/api/v1/players?position=QB&sortBy=adds",
	"/api/v1/stats",
}

type Config struct {
	BaseURL     string
	Endpoints   []string
	Requests    int           // Requests per endpoint
	Concurrency int           // Number of concurrent workers
	Timeout     time.Duration // Per-request timeout
	OutputFile  string        // Output markdown file path (optional)
}

type sample struct {
	latency time.Duration
	status  int
	err     error
}

// EndpointStats aggregates the samples collected for one endpoint
type EndpointStats struct {
	Endpoint  string
	Succeeded int
	Failed    int
	Elapsed   time.Duration
	Min       time.Duration
	Max       time.Duration
	Avg       time.Duration
	P50       time.Duration
	P95       time.Duration
	P99       time.Duration
}

func main() {
	cfg := parseFlags()

	client := &http.Client{Timeout: cfg.Timeout}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var report []EndpointStats
	for _, endpoint := range cfg.Endpoints {
		stats := benchmarkEndpoint(ctx, client, cfg, endpoint)
		report = append(report, stats)
		printStats(stats, cfg.Requests)
	}

	if cfg.OutputFile != "" {
		if err := writeMarkdown(cfg.OutputFile, cfg, report); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() Config {
	var (
		baseURL     = flag.String("url", "", "Base URL of the API (defaults to saved config or "+defaultBaseURL+")")
		endpoints   = flag.String("endpoints", "", "Comma-separated endpoint paths to benchmark (defaults to a built-in set)")
		requests    = flag.Int("requests", 200, "Requests per endpoint")
		concurrency = flag.Int("concurrency", 10, "Concurrent workers")
		timeout     = flag.Duration("timeout", 30*time.Second, "Per-request timeout")
		output      = flag.String("output", "", "Optional markdown report path")
		save        = flag.Bool("save", false, "Save the base URL as the default for future runs")
	)
	flag.Parse()

	cfg := Config{
		BaseURL:     *baseURL,
		Requests:    *requests,
		Concurrency: *concurrency,
		Timeout:     *timeout,
		OutputFile:  *output,
	}

	if cfg.BaseURL == "" {
		if saved, err := LoadConfig(GetDefaultConfigPath()); err == nil && saved.BaseURL != "" {
			cfg.BaseURL = saved.BaseURL
		} else {
			cfg.BaseURL = defaultBaseURL
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if *endpoints != "" {
		for _, e := range strings.Split(*endpoints, ",") {
			if e = strings.TrimSpace(e); e != "" {
				cfg.Endpoints = append(cfg.Endpoints, e)
			}
		}
	} else {
		cfg.Endpoints = defaultEndpoints
	}

	if *save {
		if err := SaveConfig(GetDefaultConfigPath(), &BenchmarkConfig{BaseURL: cfg.BaseURL}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save config: %v\n", err)
		}
	}

	return cfg
}

// benchmarkEndpoint fires cfg.Requests requests at one endpoint through a
// bounded worker pool and folds the samples into stats
func benchmarkEndpoint(ctx context.Context, client *http.Client, cfg Config, endpoint string) EndpointStats {
	url := cfg.BaseURL + endpoint

	var mu sync.Mutex
	samples := make([]sample, 0, cfg.Requests)

	pool := pond.NewPool(cfg.Concurrency, pond.WithContext(ctx))
	start := time.Now()

	for i := 0; i < cfg.Requests; i++ {
		pool.Submit(func() {
			s := fetchOnce(ctx, client, url)
			mu.Lock()
			samples = append(samples, s)
			mu.Unlock()
		})
	}
	pool.StopAndWait()

	return summarize(endpoint, samples, time.Since(start))
}

func fetchOnce(ctx context.Context, client *http.Client, url string) sample {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return sample{err: err}
	}

	begin := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(begin)
	if err != nil {
		return sample{latency: latency, err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return sample{latency: latency, status: resp.StatusCode}
}

func summarize(endpoint string, samples []sample, elapsed time.Duration) EndpointStats {
	stats := EndpointStats{Endpoint: endpoint, Elapsed: elapsed}

	var latencies []time.Duration
	var total time.Duration
	for _, s := range samples {
		if s.err != nil || s.status >= 400 {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		latencies = append(latencies, s.latency)
		total += s.latency
	}

	if len(latencies) == 0 {
		return stats
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	stats.Min = latencies[0]
	stats.Max = latencies[len(latencies)-1]
	stats.Avg = total / time.Duration(len(latencies))
	stats.P50 = percentile(latencies, 50)
	stats.P95 = percentile(latencies, 95)
	stats.P99 = percentile(latencies, 99)

	return stats
}

// percentile returns the p-th percentile of a sorted latency slice using
// nearest-rank
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func printStats(s EndpointStats, requests int) {
	fmt.Printf("\n%s\n", s.Endpoint)
	fmt.Printf("  ok=%d failed=%d (%s success) throughput=%s\n",
		s.Succeeded, s.Failed, percentageString(s.Succeeded, requests), formatRate(s.Succeeded, s.Elapsed))
	if s.Succeeded > 0 {
		fmt.Printf("  min=%s avg=%s p50=%s p95=%s p99=%s max=%s\n",
			formatDuration(s.Min), formatDuration(s.Avg),
			formatDuration(s.P50), formatDuration(s.P95), formatDuration(s.P99),
			formatDuration(s.Max))
	}
}

func writeMarkdown(path string, cfg Config, report []EndpointStats) error {
	var b strings.Builder

	b.WriteString("# API Benchmark Report\n\n")
	b.WriteString(fmt.Sprintf("- Base URL: %s\n", cfg.BaseURL))
	b.WriteString(fmt.Sprintf("- Requests per endpoint: %d\n", cfg.Requests))
	b.WriteString(fmt.Sprintf("- Concurrency: %d\n", cfg.Concurrency))
	b.WriteString(fmt.Sprintf("- Generated: %s\n\n", time.Now().Format(time.RFC3339)))

	b.WriteString("| Endpoint | OK | Failed | Throughput | Avg | P50 | P95 | P99 | Max |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
	for _, s := range report {
		b.WriteString(fmt.Sprintf("| `%s` | %d | %d | %s | %s | %s | %s | %s | %s |\n",
			s.Endpoint, s.Succeeded, s.Failed, formatRate(s.Succeeded, s.Elapsed),
			formatDuration(s.Avg), formatDuration(s.P50), formatDuration(s.P95),
			formatDuration(s.P99), formatDuration(s.Max)))
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}
