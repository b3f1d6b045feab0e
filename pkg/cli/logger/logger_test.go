package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	dir := t.TempDir()
	Init(dir)

	Log("loaded %d shortcuts", 6)
	LogError(errors.New("boom"), "delete %d", 2)
	CloseLog()

	files, err := filepath.Glob(filepath.Join(dir, "cli-*.log"))
	if err != nil || len(files) != 1 {
		t.Fatalf("log files = %v, %v", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "[cli] ") || !strings.Contains(out, "loaded 6 shortcuts") {
		t.Fatalf("log = %q", out)
	}
	if !strings.Contains(out, "ERROR: delete 2: boom") {
		t.Fatalf("log = %q", out)
	}
}

func TestLogWithoutInitIsSilent(t *testing.T) {
	CloseLog()
	Log("dropped")
}
