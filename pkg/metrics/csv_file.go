// Package metrics provides functions to record metrics data.
// It is a very thin layer over OpenTelemetry, but it can
// also write logs to local files for simple setups.
package metrics

import (
	"encoding/csv"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/tzrikka/xdg"
)

const (
	fileFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY
	filePerms = xdg.NewFilePermissions
)

var muSignals sync.Mutex

// IncrementSignalCounter monitors incoming Temporal signals (triggered by webhook events
// which were received by Timpani), by appending them to a CSV file, if a path is specified.
// This runs as a side effect, so workflow replays don't append the same signal again.
func IncrementSignalCounter(ctx workflow.Context, path, signal string) {
	if path == "" {
		return
	}

	_ = workflow.SideEffect(ctx, func(_ workflow.Context) any {
		incrementSignalCounterAsSideEffect(path, signal)
		return nil
	})
}

func incrementSignalCounterAsSideEffect(path, signal string) {
	muSignals.Lock()
	defer muSignals.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	if err := AppendToCSVFile(path, []string{now, signal}); err != nil {
		slog.Error("metrics error: failed to increment signal counter", slog.Any("error", err),
			slog.String("signal", signal), slog.String("path", path))
	}
}

func AppendToCSVFile(path string, record []string) error {
	f, err := os.OpenFile(path, fileFlags, filePerms) //gosec:disable G304 -- specified by admin
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
