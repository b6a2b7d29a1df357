package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExts are the card image formats accepted for batch scanning.
var imageExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".tif": {}, ".tiff": {}, ".bmp": {}, ".webp": {},
}

// BatchProcessor scans multiple card images concurrently.
type BatchProcessor struct {
	scan        ScanFunc
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(scan ScanFunc, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		scan:        scan,
		concurrency: concurrency,
	}
}

// ProcessPaths scans the given image paths concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []Result {
	if len(paths) == 0 {
		return []Result{}
	}

	pool := NewPool(b.concurrency, b.scan)
	pool.Start()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	// Submission runs concurrently with result draining: both pool channels
	// are bounded, and a batch larger than their buffers would otherwise
	// block the submit loop before draining ever starts.
	go func() {
		for _, path := range paths {
			pool.Submit(path)
		}
		pool.Close()
	}()

	results := pool.Collect()
	close(done)
	return results
}

// ProcessDir scans every image file directly inside dir.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsImagePath(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	return b.ProcessPaths(ctx, paths), nil
}

// ProcessFile reads image paths from a list file and scans them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]Result, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read path list: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads image paths from a file, one per line. Blank lines
// and '#' comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}

// IsImagePath reports whether the file name has a supported image extension.
func IsImagePath(name string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(name))]
	return ok
}
