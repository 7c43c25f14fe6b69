package config

import (
	"path/filepath"
	"testing"
)

func TestSetupLogFileCreatesAndPrunes(t *testing.T) {
	dir := t.TempDir()

	var files []string
	for i := 0; i < 4; i++ {
		f, err := SetupLogFile(dir, 2)
		if err != nil {
			t.Fatalf("SetupLogFile() error = %v", err)
		}
		files = append(files, f.Name())
		f.Close()
	}

	remaining, err := filepath.Glob(filepath.Join(dir, "promptdeck-*.log"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(remaining) > 3 {
		t.Errorf("log files = %d, want pruned to at most 3", len(remaining))
	}
}
