package main

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"arcstream/cmcd/pkg/cli"
	"arcstream/cmcd/pkg/cmcd"
	"arcstream/cmcd/pkg/headers"
	"arcstream/cmcd/pkg/policy"
)

var benchFlags struct {
	file        string
	count       int
	concurrency int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure header assembly throughput",
	Long: `Assemble CMCD request headers in a tight loop and report throughput and
latency percentiles.

Header assembly sits on the request path of a media player, once per
segment request. This command measures what a policy costs there: run it
against the permissive default, then against a policy file, and compare.

Examples:
  # Assembly throughput under the default policy
  cmcdctl bench

  # Cost of a policy document
  cmcdctl bench --file policy.yaml

  # Contended assembly from several goroutines
  cmcdctl bench --count 500000 --concurrency 8`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVarP(&benchFlags.file, "file", "f", "", "policy file to apply")
	benchCmd.Flags().IntVar(&benchFlags.count, "count", 100000, "number of header sets to assemble")
	benchCmd.Flags().IntVar(&benchFlags.concurrency, "concurrency", 1, "concurrent workers")
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFlags.count <= 0 {
		return cli.NewFlagError("--count", "must be positive")
	}
	if benchFlags.concurrency <= 0 {
		return cli.NewFlagError("--concurrency", "must be positive")
	}

	rc := cmcd.DefaultRequestConfig
	policyName := "default (permissive)"
	if benchFlags.file != "" {
		pol, err := policy.Load(benchFlags.file)
		if err != nil {
			return cli.NewCommandError("bench", err)
		}
		rc = pol
		policyName = benchFlags.file
	}

	cfg, err := cmcd.NewConfiguration("bench-session", "bench-content", rc)
	if err != nil {
		return cli.NewCommandError("bench", err)
	}

	fmt.Println("CMCD Header Assembly Benchmark")
	fmt.Println("==============================")
	fmt.Printf("Policy: %s\n", policyName)
	fmt.Printf("Count: %d\n", benchFlags.count)
	fmt.Printf("Concurrency: %d\n", benchFlags.concurrency)
	fmt.Println()

	results := runAssemblyLoop(cfg, benchFlags.count, benchFlags.concurrency)

	displayBenchResults(results)
	return nil
}

type benchResults struct {
	count     int
	duration  time.Duration
	latencies []time.Duration
}

func runAssemblyLoop(cfg *cmcd.Configuration, count, concurrency int) *benchResults {
	asm := headers.NewAssembler(cfg)

	// A spread of playback states so the loop exercises every header group.
	requests := []*headers.Request{
		headers.NewRequest().
			WithBitrateKbps(3200).
			WithBufferedDuration(12 * time.Second).
			WithObjectThroughputKbps(4800),
		headers.NewRequest().
			WithBitrateKbps(145).
			WithBufferedDuration(0),
		headers.NewRequest(),
	}

	progress := cli.NewProgressReporter(nil)
	progress.Start(int64(count))

	var completed atomic.Int64
	perWorker := count / concurrency

	workerLatencies := make([][]time.Duration, concurrency)
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		n := perWorker
		if w == concurrency-1 {
			n = count - perWorker*(concurrency-1)
		}

		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()

			latencies := make([]time.Duration, 0, n)
			for i := 0; i < n; i++ {
				req := requests[i%len(requests)]

				opStart := time.Now()
				asm.Build(req)
				latencies = append(latencies, time.Since(opStart))

				if done := completed.Add(1); done%4096 == 0 {
					progress.Update(done)
				}
			}
			workerLatencies[w] = latencies
		}(w, n)
	}
	wg.Wait()
	progress.Finish()

	results := &benchResults{
		count:     count,
		duration:  time.Since(start),
		latencies: make([]time.Duration, 0, count),
	}
	for _, latencies := range workerLatencies {
		results.latencies = append(results.latencies, latencies...)
	}
	return results
}

func displayBenchResults(results *benchResults) {
	fmt.Println()
	fmt.Println("Results:")
	fmt.Println("--------")
	fmt.Printf("Assemblies:      %d\n", results.count)
	fmt.Printf("Duration:        %.2fs\n", results.duration.Seconds())

	if results.duration > 0 {
		throughput := float64(results.count) / results.duration.Seconds()
		fmt.Printf("Throughput:      %.0f ops/s\n", throughput)
	}

	if len(results.latencies) > 0 {
		min, mean, median, p95, p99, max := calculatePercentiles(results.latencies)

		fmt.Println()
		fmt.Println("Latency:")
		fmt.Printf("  Min:     %s\n", min)
		fmt.Printf("  Mean:    %s\n", mean)
		fmt.Printf("  Median:  %s\n", median)
		fmt.Printf("  p95:     %s\n", p95)
		fmt.Printf("  p99:     %s\n", p99)
		fmt.Printf("  Max:     %s\n", max)
	}
}

func calculatePercentiles(latencies []time.Duration) (min, mean, median, p95, p99, max time.Duration) {
	if len(latencies) == 0 {
		return
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	min = sorted[0]
	max = sorted[len(sorted)-1]

	var sum time.Duration
	for _, lat := range sorted {
		sum += lat
	}
	mean = sum / time.Duration(len(sorted))

	median = sorted[len(sorted)/2]
	p95 = sorted[percentileIndex(len(sorted), 0.95)]
	p99 = sorted[percentileIndex(len(sorted), 0.99)]

	return
}

func percentileIndex(n int, p float64) int {
	idx := int(float64(n) * p)
	if idx >= n {
		idx = n - 1
	}
	return idx
}
