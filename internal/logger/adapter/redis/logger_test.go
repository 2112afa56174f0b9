package redis_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/ChurchAdmin/ChurchAdmin/internal/logger"
	adapter "github.com/ChurchAdmin/ChurchAdmin/internal/logger/adapter/redis"
)

func TestPrintf(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutPut: false,
		},
		{
			name: "console enabled log level info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled log level error hides warnings",
			cfg: logger.Log{
				LogLevel:    "error",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := testLoggerConfig(t, tc.cfg)
			t.Logf("out: %s", out)

			if out == "" && tc.shouldHaveOutPut {
				t.Error("expected console output but got none")
			}

			if out != "" && !tc.shouldHaveOutPut {
				t.Errorf("expected no console output but got: %s", out)
			}

			if out == "" {
				return
			}

			var line struct {
				Level     string
				Component string
				Message   string
			}

			if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &line); err != nil {
				t.Fatalf("expected json output but got: %s", out)
			}

			if line.Level != "warn" || line.Component != "redis" || line.Message != "redis: pool timeout after 3 retries" {
				t.Errorf("unexpected log line %+v", line)
			}
		})
	}
}

func testLoggerConfig(t *testing.T, cfg logger.Log) string {
	t.Helper()
	// keep default std out
	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	err := logger.Init(cfg)
	if err != nil {
		t.Error(err)
	}

	testLogger := adapter.New()
	testLogger.Printf(context.Background(), "redis: pool timeout after %d retries", 3)

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout // restoring the real stdout
	os.Stderr = stderr // restoring the real stderr
	out := <-outC

	return out
}
