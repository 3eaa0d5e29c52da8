package cli

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	fn()

	_ = w.Close()
	os.Stdout = old
	<-done
	return buf.String()
}

func withTempDir(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "evmkit-cli-test-*")
	if err != nil {
		t.Fatalf("temp dir: %v", err)
	}
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	return dir, func() {
		_ = os.Chdir(old)
		_ = os.RemoveAll(dir)
	}
}

// runCLI executes the root command with args after resetting every flag
// variable, and returns the captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	projectPath = ""
	verbose = false
	outputJSON = false
	initSample = false
	alertsMinSeverity = ""
	kpiOrgRoot = ""
	kpiOrgFrom = ""
	kpiOrgTo = ""
	kpiCategory = ""
	mcpTransport = "stdio"
	mcpAddr = ":8080"

	var err error
	out := captureStdout(t, func() {
		RootCmd.SetArgs(args)
		err = Execute(context.Background())
	})
	return out, err
}
