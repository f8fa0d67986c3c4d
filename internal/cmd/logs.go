package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/workorders/internal/config"
	"github.com/Iron-Ham/workorders/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View client logs",
	Long: `View and filter the client's log file.

Examples:
  # Show the last 50 entries
  workorders logs

  # Show every entry of the add-stage flow
  workorders logs -n 0 --flow add_stage

  # Follow logs in real-time
  workorders logs -f

  # Show warnings and errors from the last hour for one order
  workorders logs --level warn --since 1h --order ORD-1

  # Search for specific patterns
  workorders logs --grep "401|403"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail   int
	logsFollow bool
	logsLevel  string
	logsSince  string
	logsGrep   string
	logsFlow   string
	logsOrder  string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of lines to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter logs matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsFlow, "flow", "", "Only show one flow (bootstrap/open_order/save_profile/add_stage)")
	logsCmd.Flags().StringVar(&logsOrder, "order", "", "Only show entries about one order")
}

// logEntry represents a parsed JSON log line
type logEntry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Flow      string         `json:"flow,omitempty"`
	OrderID   string         `json:"order_id,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Extra     map[string]any `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture extra fields
func (e *logEntry) UnmarshalJSON(data []byte) error {
	type Alias logEntry
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "flow", "order_id", "request_id"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// levelColor returns the ANSI color code for a log level
func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return colorGray
	case logging.LevelInfo:
		return colorBlue
	case logging.LevelWarn:
		return colorYellow
	case logging.LevelError:
		return colorRed
	default:
		return colorReset
	}
}

// levelPriority returns the priority of a log level for filtering
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry *logEntry) string {
	var sb strings.Builder

	sb.WriteString(colorGray)
	sb.WriteString("[" + entry.Time.Format("15:04:05.000") + "]")
	sb.WriteString(colorReset)

	sb.WriteString(" ")
	sb.WriteString(levelColor(entry.Level))
	sb.WriteString("[" + strings.ToUpper(entry.Level) + "]")
	sb.WriteString(colorReset)

	sb.WriteString(" ")
	sb.WriteString(entry.Msg)

	writeField := func(key string, value any) {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(colorReset)
		sb.WriteString(fmt.Sprintf("%v", value))
	}
	if entry.Flow != "" {
		writeField("flow", entry.Flow)
	}
	if entry.OrderID != "" {
		writeField("order_id", entry.OrderID)
	}
	if entry.RequestID != "" {
		writeField("request_id", entry.RequestID)
	}

	// Sorted so repeated runs print the same line.
	keys := make([]string, 0, len(entry.Extra))
	for k := range entry.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(k, entry.Extra[k])
	}

	return sb.String()
}

// logFilter selects log entries.
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
	flow     string
	orderID  string
}

func newLogFilter(level, since, grep, flow, orderID string) (logFilter, error) {
	f := logFilter{minLevel: -1, flow: flow, orderID: orderID}
	if level != "" {
		f.minLevel = levelPriority(logging.ParseLevel(level))
	}
	if since != "" {
		d, err := time.ParseDuration(since)
		if err != nil {
			return f, fmt.Errorf("invalid duration format: %w", err)
		}
		f.since = time.Now().Add(-d)
	}
	if grep != "" {
		re, err := regexp.Compile(grep)
		if err != nil {
			return f, fmt.Errorf("invalid grep pattern: %w", err)
		}
		f.grep = re
	}
	return f, nil
}

// passes checks if a log entry passes all filter criteria
func (f logFilter) passes(entry *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}
	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}
	if f.flow != "" && entry.Flow != f.flow {
		return false
	}
	if f.orderID != "" && entry.OrderID != f.orderID {
		return false
	}
	if f.grep != nil {
		searchText := entry.Msg
		for _, v := range entry.Extra {
			searchText += " " + fmt.Sprintf("%v", v)
		}
		if !f.grep.MatchString(searchText) {
			return false
		}
	}
	return true
}

// line formats a raw log line, reporting false when it is filtered out.
// Lines that are not JSON are shown as-is.
func (f logFilter) line(raw string) (string, bool) {
	var entry logEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return raw, true
	}
	if !f.passes(&entry) {
		return "", false
	}
	return formatLogEntry(&entry), true
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logPath := filepath.Join(cfg.Logging.ResolveLogDir(), logging.FileName)
	out := cmd.OutOrStdout()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No logs found.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		return nil
	}

	filter, err := newLogFilter(logsLevel, logsSince, logsGrep, logsFlow, logsOrder)
	if err != nil {
		return err
	}

	if logsFollow {
		return followLogs(out, logPath, filter)
	}
	return displayLogs(out, logPath, logsTail, filter)
}

// displayLogs reads the log file and displays filtered entries
func displayLogs(w io.Writer, logPath string, tail int, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	// Increase buffer size for potentially long log lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		raw := scanner.Text()
		if raw == "" {
			continue
		}
		if line, ok := filter.line(raw); ok {
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}
	for _, entry := range entries {
		fmt.Fprintln(w, entry)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No matching log entries found.")
	}
	return nil
}

// followLogs implements tail -f behavior for the log file
func followLogs(w io.Writer, logPath string, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Fprintf(w, "Following logs... (Ctrl+C to stop)\n\n")

	reader := bufio.NewReader(file)
	for {
		raw, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("error reading log file: %w", err)
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if line, ok := filter.line(raw); ok {
			fmt.Fprintln(w, line)
		}
	}
}
