package fileproc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestForEachFile(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		createTestFile(t, tmpDir, "file1.txt", "content1"),
		createTestFile(t, tmpDir, "file2.txt", "content2"),
		createTestFile(t, tmpDir, "file3.txt", "content3"),
	}

	results := ForEachFile(files, func(path string) (string, error) {
		return filepath.Base(path), nil
	})

	if len(results) != len(files) {
		t.Errorf("Expected %d results, got %d", len(files), len(results))
	}

	resultMap := make(map[string]bool)
	for _, r := range results {
		resultMap[r] = true
	}

	expectedFiles := []string{"file1.txt", "file2.txt", "file3.txt"}
	for _, expected := range expectedFiles {
		if !resultMap[expected] {
			t.Errorf("Missing expected result: %s", expected)
		}
	}
}

func TestForEachFile_EmptyFileList(t *testing.T) {
	results := ForEachFile([]string{}, func(path string) (int, error) {
		return 1, nil
	})

	if results != nil {
		t.Errorf("Expected nil for empty file list, got %v", results)
	}
}

func TestForEachFile_ErrorsSkipped(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		createTestFile(t, tmpDir, "good1.txt", "content"),
		createTestFile(t, tmpDir, "bad.txt", "content"),
		createTestFile(t, tmpDir, "good2.txt", "content"),
	}

	processedCount := atomic.Int32{}
	results := ForEachFile(files, func(path string) (string, error) {
		processedCount.Add(1)
		if filepath.Base(path) == "bad.txt" {
			return "", fmt.Errorf("simulated error")
		}
		return filepath.Base(path), nil
	})

	if int(processedCount.Load()) != 3 {
		t.Errorf("Expected all 3 files to be processed, got %d", processedCount.Load())
	}

	if len(results) != 2 {
		t.Errorf("Expected 2 successful results (errors skipped), got %d", len(results))
	}
}

func TestForEachFileWithProgress(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		createTestFile(t, tmpDir, "file1.txt", "content"),
		createTestFile(t, tmpDir, "file2.txt", "content"),
		createTestFile(t, tmpDir, "file3.txt", "content"),
		createTestFile(t, tmpDir, "file4.txt", "content"),
	}

	progressCount := atomic.Int32{}
	results := ForEachFileWithProgress(files, func(path string) (int, error) {
		return 1, nil
	}, func() {
		progressCount.Add(1)
	})

	if len(results) != len(files) {
		t.Errorf("Expected %d results, got %d", len(files), len(results))
	}

	if int(progressCount.Load()) != len(files) {
		t.Errorf("Expected progress callback %d times, got %d", len(files), progressCount.Load())
	}
}

func TestForEachFileWithProgress_ProgressOnError(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		createTestFile(t, tmpDir, "good.txt", "content"),
		createTestFile(t, tmpDir, "bad.txt", "content"),
	}

	progressCount := atomic.Int32{}
	results := ForEachFileWithProgress(files, func(path string) (int, error) {
		if filepath.Base(path) == "bad.txt" {
			return 0, fmt.Errorf("error")
		}
		return 1, nil
	}, func() {
		progressCount.Add(1)
	})

	if len(results) != 1 {
		t.Errorf("Expected 1 successful result, got %d", len(results))
	}

	if int(progressCount.Load()) != 2 {
		t.Errorf("Progress should be called even on errors, expected 2, got %d", progressCount.Load())
	}
}

func TestForEachFileWithErrors(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		createTestFile(t, tmpDir, "good.txt", "content"),
		createTestFile(t, tmpDir, "bad.txt", "content"),
	}

	var mu sync.Mutex
	var failedPaths []string
	results := ForEachFileWithErrors(files, func(path string) (string, error) {
		if filepath.Base(path) == "bad.txt" {
			return "", fmt.Errorf("simulated error")
		}
		return filepath.Base(path), nil
	}, func(path string, err error) {
		mu.Lock()
		failedPaths = append(failedPaths, filepath.Base(path))
		mu.Unlock()
	})

	if len(results) != 1 {
		t.Errorf("Expected 1 successful result, got %d", len(results))
	}
	if len(failedPaths) != 1 || failedPaths[0] != "bad.txt" {
		t.Errorf("Expected error callback for bad.txt, got %v", failedPaths)
	}
}

func TestForEachFileN_WorkerCount(t *testing.T) {
	tmpDir := t.TempDir()

	files := make([]string, 20)
	for i := range files {
		files[i] = createTestFile(t, tmpDir, fmt.Sprintf("file%d.txt", i), "content")
	}

	results := ForEachFileN(files, 1, func(path string) (int, error) {
		return 1, nil
	}, nil, nil)

	if len(results) != len(files) {
		t.Errorf("Expected %d results with single worker, got %d", len(files), len(results))
	}
}

func TestForEachFileCollectErrors(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		createTestFile(t, tmpDir, "good1.txt", "content"),
		createTestFile(t, tmpDir, "bad.txt", "content"),
		createTestFile(t, tmpDir, "good2.txt", "content"),
	}

	results, errs := ForEachFileCollectErrors(files, func(path string) (string, error) {
		if filepath.Base(path) == "bad.txt" {
			return "", fmt.Errorf("simulated error")
		}
		return filepath.Base(path), nil
	})

	if len(results) != 2 {
		t.Errorf("Expected 2 successful results, got %d", len(results))
	}
	if errs == nil || len(errs.Errors) != 1 {
		t.Errorf("Expected 1 error, got %v", errs)
	}
}

func TestForEachFileCollectErrors_NoErrors(t *testing.T) {
	tmpDir := t.TempDir()
	file := createTestFile(t, tmpDir, "good.txt", "content")

	results, errs := ForEachFileCollectErrors([]string{file}, func(path string) (int, error) {
		return 1, nil
	})

	if errs != nil {
		t.Errorf("Expected nil errors, got %v", errs)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestForEachFileWithContext_Cancellation(t *testing.T) {
	tmpDir := t.TempDir()

	fileCount := 100
	files := make([]string, fileCount)
	for i := 0; i < fileCount; i++ {
		files[i] = createTestFile(t, tmpDir, fmt.Sprintf("file%d.txt", i), "content")
	}

	ctx, cancel := context.WithCancel(context.Background())

	var processed atomic.Int32
	go func() {
		for processed.Load() < 10 {
			runtime.Gosched()
		}
		cancel()
	}()

	results, errs := ForEachFileWithContext(ctx, files, func(path string) (string, error) {
		processed.Add(1)
		for i := 0; i < 1000; i++ {
			runtime.Gosched()
		}
		return filepath.Base(path), nil
	})

	t.Logf("Processed %d files, got %d results", processed.Load(), len(results))

	errorCount := 0
	if errs != nil {
		errorCount = len(errs.Errors)
	}
	if len(results)+errorCount > fileCount {
		t.Errorf("Results (%d) + errors (%d) should not exceed file count (%d)",
			len(results), errorCount, fileCount)
	}
}

func TestForEachFileWithContext_NoCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		createTestFile(t, tmpDir, "file1.txt", "content"),
		createTestFile(t, tmpDir, "file2.txt", "content"),
	}

	results, errs := ForEachFileWithContext(context.Background(), files, func(path string) (string, error) {
		return filepath.Base(path), nil
	})

	if errs != nil {
		t.Errorf("Unexpected errors: %v", errs)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
}

func TestProcessingError(t *testing.T) {
	err := ProcessingError{Path: "/path/to/file.go", Err: fmt.Errorf("read failed")}
	expected := "/path/to/file.go: read failed"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestProcessingErrors(t *testing.T) {
	errs := &ProcessingErrors{}

	// Empty errors
	if errs.HasErrors() {
		t.Error("Empty ProcessingErrors should not have errors")
	}
	if errs.Error() != "no errors" {
		t.Errorf("Empty error message = %q, want 'no errors'", errs.Error())
	}

	// Single error
	errs.Add("/file1.go", fmt.Errorf("error1"))
	if !errs.HasErrors() {
		t.Error("ProcessingErrors with one error should have errors")
	}
	if errs.Error() != "/file1.go: error1" {
		t.Errorf("Single error message = %q", errs.Error())
	}

	// Multiple errors
	errs.Add("/file2.go", fmt.Errorf("error2"))
	if len(errs.Errors) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(errs.Errors))
	}
	errMsg := errs.Error()
	if errMsg != "2 files failed to process (first: /file1.go: error1)" {
		t.Errorf("Multiple error message = %q", errMsg)
	}
}

func TestProcessingErrors_ThreadSafe(t *testing.T) {
	errs := &ProcessingErrors{}
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs.Add(fmt.Sprintf("/file%d.go", n), fmt.Errorf("error %d", n))
		}(i)
	}
	wg.Wait()

	if len(errs.Errors) != 100 {
		t.Errorf("Expected 100 errors, got %d", len(errs.Errors))
	}
}

func TestProcessingErrors_Unwrap(t *testing.T) {
	errs := &ProcessingErrors{}
	if errs.Unwrap() != nil {
		t.Error("Unwrap() should return nil")
	}

	errs.Add("/file.go", fmt.Errorf("error"))
	if errs.Unwrap() != nil {
		t.Error("Unwrap() should still return nil even with errors")
	}
}

func BenchmarkForEachFile(b *testing.B) {
	tmpDir := b.TempDir()

	fileCount := 100
	files := make([]string, fileCount)
	for i := 0; i < fileCount; i++ {
		files[i] = createTestFile(b, tmpDir, fmt.Sprintf("file%d.txt", i), "test content")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results := ForEachFile(files, func(path string) (int, error) {
			_, err := os.ReadFile(path)
			if err != nil {
				return 0, err
			}
			return 1, nil
		})

		if len(results) != fileCount {
			b.Fatalf("Expected %d results, got %d", fileCount, len(results))
		}
	}
}

func createTestFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file %s: %v", name, err)
	}
	return path
}
