package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output to a buffer for the duration of a test.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("considering %s", "demo:1") }, "[DEBUG] considering demo:1\n"},
		{"info", func() { Info("Processing %q...", "demo:1") }, "[INFO] Processing \"demo:1\"...\n"},
		{"warn", func() { Warn("skipping %d statements", 2) }, "[WARN] skipping 2 statements\n"},
		{"section", func() { Section("Migration") }, "\n=== Migration ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" verbose", func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
		t.Run(tt.name+" quiet", func(t *testing.T) {
			buf := capture(t, false)
			tt.log()
			assert.Empty(t, buf.String())
		})
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	for _, verboseMode := range []bool{true, false} {
		buf := capture(t, verboseMode)
		Error("object %s failed", "demo:1")
		assert.Equal(t, "[ERROR] object demo:1 failed\n", buf.String())
	}
}

func TestConcurrentToggle(t *testing.T) {
	capture(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(on bool) {
			defer wg.Done()
			SetVerbose(on)
			_ = IsVerbose()
		}(i%2 == 0)
	}
	wg.Wait()
}
