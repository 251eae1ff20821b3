// Package logger sets up logrus for the app: a prefixed, colored console output,
// an append-only log file, and a small in-memory buffer of recent lines for the
// on-screen overlay.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// DefaultFilePath is the log file, relative to the working directory.
const DefaultFilePath = "logs/scene.txt"

const timestampFormat = "2006-01-02 15:04:05"

// Options configure New.
type Options struct {
	Level string
	// File is appended to; empty disables file output.
	File string
	// Out is the console writer; nil means stdout.
	Out io.Writer
	// Recent is how many lines the in-memory buffer keeps; 0 means 64.
	Recent int
}

// Logger is a logrus logger plus the resources it owns.
type Logger struct {
	*logrus.Logger
	Recent *Recorder
	file   *os.File
}

// New builds a logger. An unknown level is an error.
func New(opts Options) (*Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		lv, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		level = lv
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
		ForceFormatting: true,
		ForceColors:     opts.Out == nil,
	})

	l := &Logger{Logger: log, Recent: NewRecorder(opts.Recent)}
	log.AddHook(l.Recent)

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		l.file = f
		log.AddHook(&writerHook{
			w: f,
			formatter: &prefixed.TextFormatter{
				TimestampFormat: timestampFormat,
				FullTimestamp:   true,
				ForceFormatting: true,
				DisableColors:   true,
			},
		})
	}
	return l, nil
}

// Component returns an entry tagged with a component prefix, shown as [name].
func (l *Logger) Component(name string) *logrus.Entry {
	return l.WithField("prefix", name)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// writerHook writes every entry to w with its own formatter (uncolored for files).
type writerHook struct {
	mu        sync.Mutex
	w         io.Writer
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *writerHook) Fire(e *logrus.Entry) error {
	b, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(b)
	return err
}

// Recorder keeps the most recent log lines in memory.
type Recorder struct {
	mu    sync.Mutex
	lines []string
	max   int
}

// NewRecorder keeps up to max lines (64 if max <= 0).
func NewRecorder(max int) *Recorder {
	if max <= 0 {
		max = 64
	}
	return &Recorder{max: max}
}

// Levels implements logrus.Hook.
func (r *Recorder) Levels() []logrus.Level { return logrus.AllLevels }

// Fire implements logrus.Hook.
func (r *Recorder) Fire(e *logrus.Entry) error {
	line := formatLine(e)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	if over := len(r.lines) - r.max; over > 0 {
		r.lines = append(r.lines[:0], r.lines[over:]...)
	}
	return nil
}

// Lines returns a copy of the stored lines, oldest first.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// formatLine renders "15:04:05 INFO [prefix] message k=v" for the overlay.
func formatLine(e *logrus.Entry) string {
	var b strings.Builder
	b.WriteString(e.Time.Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(e.Level.String()))
	if p, ok := e.Data["prefix"]; ok {
		fmt.Fprintf(&b, " [%v]", p)
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		// session is the same on every line.
		if k != "prefix" && k != "session" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	return b.String()
}
