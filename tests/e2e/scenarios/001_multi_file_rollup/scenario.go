package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"log-analyzer/internal/cmd"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEntries = 64000 // Total number of request entries to generate across all files
)

var (
	paths      = []string{"/", "/about/", "/api/v1/products/", "/careers/"}
	severities = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
	methods    = []string{"GET", "POST", "PUT", "DELETE"}
)

// ### End - fixed configs

type entry struct {
	bucket int
	round  int
}

type expectedCounts map[string][]int64

// main runs the e2e scenario: 001_multi_file_rollup
//
// This scenario writes a deterministic set of Django request log files, some plain, some
// gzip and some zstd compressed, mixing JSON lines, text lines, foreign loggers and
// garbage. It then runs the CLI in-process over all of them with parallel aggregation and
// a CSV export, and checks the exported counts against the generated data.
//
// What it tests:
//   - Structured and text line decoding in the same file
//   - Filtering on the django.request logger and tolerance of undecodable lines
//   - Transparent decompression of gzip and zstd inputs
//   - Parallel per-file aggregation and merge
//   - CSV export content and the exit code of a successful run
//
// Expected results:
//   - Exit code 0
//   - 64,000 requests in total, distributed evenly over 4 paths and 5 severities
//   - The CSV TOTAL row matches the sum of every handler row
func main() {
	// these configs can be changed to run the scenario
	fileCount := 8                   // Number of log files the entries are spread over
	parallel := 4                    // Number of files written and aggregated concurrently
	noiseEvery := 7                  // A foreign logger line is added after every N-th entry
	garbageEvery := 11               // A garbage line is added after every N-th entry
	workDir := ".tmp/e2e-multi-file" // Working directory path relative to project root

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	workPath := filepath.Join(projectRoot, workDir)
	fmt.Printf("Cleaning work directory: %s\n", workPath)
	if err := os.RemoveAll(workPath); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Failed to clean work directory: %v\n", err)
	}
	if err := os.MkdirAll(workPath, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create work directory: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	fmt.Println("Starting e2e scenario: 001_multi_file_rollup")
	fmt.Printf("TOTAL_ENTRIES: %d\n", totalEntries)
	fmt.Printf("FILE_COUNT: %d\n", fileCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("WORK_PATH: %s\n", workPath)
	fmt.Println()

	// Distribute entries round-robin over files
	fileEntries := make([][]entry, fileCount)
	expected := expectedCounts{}
	for i, e := range generateAllEntries() {
		fileEntries[i%fileCount] = append(fileEntries[i%fileCount], e)
		path, sev := pathAndSeverity(e)
		if expected[path] == nil {
			expected[path] = make([]int64, len(severities))
		}
		expected[path][sev]++
	}

	// Write files in parallel
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	logFiles := make([]string, fileCount)

	for fileIndex := 0; fileIndex < fileCount; fileIndex++ {
		wg.Add(1)
		workerChan <- struct{}{}

		go func(index int) {
			defer wg.Done()
			defer func() { <-workerChan }()

			path, err := writeLogFile(workPath, index, fileEntries[index], noiseEvery, garbageEvery)
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Errorf("file %d: %w", index, err))
				mu.Unlock()
				return
			}
			logFiles[index] = path
			fmt.Printf("File %d written: %s (%d entries)\n", index, filepath.Base(path), len(fileEntries[index]))
		}(fileIndex)
	}
	wg.Wait()

	fmt.Println()
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d file writes failed: %v\n", len(errors), errors)
		os.Exit(1)
	}

	// Run the CLI in-process
	csvPath := filepath.Join(workPath, "report.csv")
	args := append([]string{"--report", "handlers", "--csv", csvPath, "--workers", strconv.Itoa(parallel)}, logFiles...)
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Execute(context.Background(), args, &stdout, &stderr)

	fmt.Println("=== Report ===")
	fmt.Println(stdout.String())
	if exitCode != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: log-analyzer exited with %d: %s\n", exitCode, stderr.String())
		os.Exit(1)
	}

	// Verify the export
	mismatches, err := verifyCSV(csvPath, expected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to verify CSV: %v\n", err)
		os.Exit(1)
	}
	if len(mismatches) > 0 {
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "MISMATCH: %s\n", m)
		}
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Files aggregated: %d\n", fileCount)
	fmt.Printf("Handlers: %d\n", len(expected))
	fmt.Printf("Total requests: %d\n", totalEntries)
	fmt.Println("Scenario completed successfully")
}

func findProjectRoot() (string, error) {
	// Walk up the directory tree until go.mod is found
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("could not find go.mod, run from the project root")
}

func generateAllEntries() []entry {
	entries := make([]entry, 0, totalEntries)
	bucket := 0
	round := 0

	for count := 0; count < totalEntries; count++ {
		entries = append(entries, entry{bucket: bucket, round: round})

		bucket++
		if bucket >= len(paths)*len(severities) {
			bucket = 0
			round++
		}
	}

	return entries
}

func pathAndSeverity(e entry) (string, int) {
	return paths[e.bucket/len(severities)], e.bucket % len(severities)
}

// formatEntry renders e as a JSON line or a text line, alternating by round.
func formatEntry(e entry) string {
	path, sev := pathAndSeverity(e)
	method := methods[e.round%len(methods)]
	seconds := e.round % 60
	millis := (e.bucket*17 + e.round) % 1000

	if e.round%2 == 0 {
		return fmt.Sprintf(`{"timestamp": "2025-03-27T12:13:%02d.%03d", "levelname": %q, "logger": "django.request", "method": %q, "path": %q, "status_code": 200}`,
			seconds, millis, severities[sev], method, path)
	}
	return fmt.Sprintf("2025-03-27 12:13:%02d,%03d %s django.request: %s %s 200 OK [10.0.%d.%d]",
		seconds, millis, severities[sev], method, path, e.bucket, e.round%256)
}

func writeLogFile(dir string, index int, entries []entry, noiseEvery, garbageEvery int) (string, error) {
	var content bytes.Buffer
	for i, e := range entries {
		content.WriteString(formatEntry(e))
		content.WriteByte('\n')
		if i%noiseEvery == 0 {
			content.WriteString(`{"levelname": "INFO", "logger": "django.db.backends", "path": "/ignored/"}` + "\n")
		}
		if i%garbageEvery == 0 {
			content.WriteString("Watching for file changes with StatReloader\n")
		}
	}

	name := fmt.Sprintf("app-%02d.log", index)
	data := content.Bytes()
	switch index % 3 {
	case 1:
		name += ".gz"
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return "", err
		}
		if err := zw.Close(); err != nil {
			return "", err
		}
		data = buf.Bytes()
	case 2:
		name += ".zst"
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return "", err
		}
		data = enc.EncodeAll(data, nil)
		_ = enc.Close()
	}

	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, data, 0644)
}

func verifyCSV(csvPath string, expected expectedCounts) ([]string, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) != len(expected)+2 {
		return nil, fmt.Errorf("expected %d rows, got %d", len(expected)+2, len(rows))
	}

	var mismatches []string
	for _, row := range rows[1 : len(rows)-1] {
		counts, ok := expected[row[0]]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("unexpected handler %q", row[0]))
			continue
		}
		for i := range severities {
			got, _ := strconv.ParseInt(row[i+1], 10, 64)
			if got != counts[i] {
				mismatches = append(mismatches, fmt.Sprintf("%s %s: want %d, got %d", row[0], severities[i], counts[i], got))
			}
		}
	}

	total := rows[len(rows)-1]
	if total[0] != "TOTAL" || total[6] != strconv.Itoa(totalEntries) {
		mismatches = append(mismatches, fmt.Sprintf("total row %v, want %d requests", total, totalEntries))
	}
	return mismatches, nil
}
