// Package logger sets up structured logging and writes crash logs when a
// compose run panics.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the crash log directory below the data directory.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the number of crash logs kept.
	MaxCrashLogs = 10

	defaultBasePath = ".tagespoet"
)

// CrashContext is what a crash log knows about the run that crashed.
type CrashContext struct {
	mu       sync.RWMutex
	command  string
	version  string
	basePath string
	keywords []string
	seed     uint64
}

var globalContext = &CrashContext{}

// SetBasePath sets the data directory crash logs are written below.
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the command line being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = truncateForLog(strings.TrimSpace(cmd), 500)
}

// SetRun records the keywords and seed of the current compose attempt so a
// crash can be replayed.
func SetRun(keywords []string, seed uint64) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.keywords = append([]string(nil), keywords...)
	globalContext.seed = seed
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog is one crash log entry.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	Keywords   []string
	Seed       uint64
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic recovers a panic, writes a crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		log := createCrashLog(r)
		if err := writeCrashLog(log); err != nil {
			fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
			fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		}

		fmt.Fprintf(os.Stderr, "\ntagespoet crashed unexpectedly.\n")
		fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n")
		fmt.Fprintf(os.Stderr, "  %s\n\n", getCrashLogPath(log.Timestamp))
		os.Exit(1)
	}
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		Keywords:   append([]string(nil), globalContext.keywords...),
		Seed:       globalContext.seed,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func writeCrashLog(log CrashLog) error {
	dir := getCrashLogDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create crash log dir: %w", err)
	}

	// Leave room for the log about to be written.
	if err := cleanOldCrashLogs(dir, MaxCrashLogs-1); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	if err := os.WriteFile(getCrashLogPath(log.Timestamp), []byte(formatCrashLog(log)), 0644); err != nil {
		return fmt.Errorf("write crash log: %w", err)
	}
	return nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = defaultBasePath
	}
	return filepath.Join(basePath, CrashLogDir)
}

func getCrashLogPath(t time.Time) string {
	return filepath.Join(getCrashLogDir(), fmt.Sprintf("crash_%s.log", t.Format("20060102_150405")))
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80) + "\n"
	section := func(title string) {
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
	}

	sb.WriteString(rule)
	sb.WriteString("TAGESPOET CRASH LOG\n")
	sb.WriteString(rule + "\n")

	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)

	if len(log.Keywords) > 0 {
		section("LAST RUN")
		fmt.Fprintf(&sb, "Seed:      %d\n", log.Seed)
		fmt.Fprintf(&sb, "Keywords:  %s\n", strings.Join(log.Keywords, ", "))
	}

	section("PANIC VALUE")
	sb.WriteString(log.PanicValue + "\n")

	section("STACK TRACE")
	sb.WriteString(log.StackTrace)

	sb.WriteString("\n" + rule)
	sb.WriteString("END OF CRASH LOG\n")
	sb.WriteString(rule)
	return sb.String()
}

// cleanOldCrashLogs removes the oldest crash logs until at most keep remain.
func cleanOldCrashLogs(dir string, keep int) error {
	logs, err := listCrashLogs(dir)
	if err != nil {
		return err
	}
	if len(logs) <= keep {
		return nil
	}

	// Names embed the timestamp and os.ReadDir sorts them, so oldest come first.
	for _, path := range logs[:len(logs)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}

// ListCrashLogs returns the paths of all crash logs, oldest first.
func ListCrashLogs() ([]string, error) {
	return listCrashLogs(getCrashLogDir())
}
