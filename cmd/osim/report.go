package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"github.com/vtsched/osim/pkg/cpu"
)

// traceRow is the JSON-serializable shape of one cpu.TraceEntry, mirroring
// the teacher's row struct used for its own JSON/CSV outputs.
type traceRow struct {
	Tick  int64  `json:"tick"`
	PID   int    `json:"pid"`
	Ran   int    `json:"ran"`
	Event string `json:"event"`
}

func toRows(trace []cpu.TraceEntry) []traceRow {
	rows := make([]traceRow, len(trace))
	for i, e := range trace {
		rows[i] = traceRow{Tick: int64(e.Tick), PID: e.PID, Ran: e.Ran, Event: string(e.Event)}
	}
	return rows
}

// printTrace writes trace to stdout, as a tabwriter-aligned table when
// stdout is a terminal and as plain comma-separated lines otherwise —
// the same auto-detected pretty-vs-plain toggle the teacher's --pretty
// flag implements manually, done here with go-isatty instead of a flag
// the caller has to remember to pass.
func printTrace(trace []cpu.TraceEntry) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(tw, "TICK\tPID\tRAN\tEVENT")
		for _, e := range trace {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", e.Tick, e.PID, e.Ran, e.Event)
		}
		tw.Flush()
		return
	}
	fmt.Println("# tick,pid,ran,event")
	for _, e := range trace {
		fmt.Printf("%d,%d,%d,%s\n", e.Tick, e.PID, e.Ran, e.Event)
	}
}

// writeCSV writes trace to path as CSV, creating parent directories as
// needed, matching the teacher's os.MkdirAll-then-os.Create idiom.
func writeCSV(path string, trace []cpu.TraceEntry) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("osim: csv dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("osim: csv create: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"tick", "pid", "ran", "event"}); err != nil {
		return err
	}
	for _, e := range trace {
		record := []string{
			strconv.FormatInt(int64(e.Tick), 10),
			strconv.Itoa(e.PID),
			strconv.Itoa(e.Ran),
			string(e.Event),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("osim: csv write: %w", err)
		}
	}
	return nil
}

// writeJSON writes trace to path as a JSON array, one object per trace
// entry.
func writeJSON(path string, trace []cpu.TraceEntry) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("osim: json dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("osim: json create: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(toRows(trace))
}
