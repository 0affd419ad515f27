package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/viewer.log"

// MaxLines is how many recent lines are kept in memory for the on-screen console.
const MaxLines = 500

const timeFormat = "2006-01-02 15:04:05"

// Options configures New. Zero values give LogFilePath, Info level and colored stderr.
type Options struct {
	FilePath string // "-" disables the file sink
	Level    slog.Leveler
	Stderr   io.Writer
	NoColor  bool
}

// Logger is a slog.Logger whose records are also kept in memory (Lines) and appended to a
// file on disk. Each line is prefixed with [timestamp] using computer time.
type Logger struct {
	*slog.Logger

	mu       sync.Mutex
	lines    []string
	filePath string
	out      *termenv.Output
}

// New returns a Logger and ensures the log directory exists.
func New(opts Options) *Logger {
	l := &Logger{filePath: opts.FilePath}
	if l.filePath == "" {
		l.filePath = LogFilePath
	}
	if l.filePath != "-" {
		_ = os.MkdirAll(filepath.Dir(l.filePath), 0755)
	}
	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	if opts.NoColor {
		l.out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	} else {
		l.out = termenv.NewOutput(w)
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	l.Logger = slog.New(&handler{l: l, level: level})
	return l
}

// Log records a plain line at Info level, e.g. text typed into the console.
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Logger) write(ts time.Time, level slog.Level, body string) {
	stamp := "[" + ts.Format(timeFormat) + "] "
	plain := stamp + level.String() + " " + body

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, plain)
	if len(l.lines) > MaxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-MaxLines:]...)
	}

	colored := l.out.String(level.String()).Foreground(l.out.Color(levelColor(level))).String()
	_, _ = io.WriteString(l.out, stamp+colored+" "+body+"\n")

	if l.filePath == "-" {
		return
	}
	f, err := os.OpenFile(l.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(plain + "\n")
	_ = f.Close()
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "1"
	case level >= slog.LevelWarn:
		return "3"
	case level >= slog.LevelInfo:
		return "2"
	default:
		return "8"
	}
}

// handler formats records as "msg key=value ..." and hands them to the Logger sinks.
type handler struct {
	l      *Logger
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	h.l.write(ts, r.Level, b.String())
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix+a.Key+".", ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix + a.Key)
	b.WriteByte('=')
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\"") {
		b.WriteString(`"` + strings.ReplaceAll(v, `"`, `\"`) + `"`)
	} else {
		b.WriteString(v)
	}
}

// ParseLevel maps "debug", "info", "warn" or "error" (any case, optional +N/-N offset) to a
// slog level. The empty string is Info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logger: %w", err)
	}
	return level, nil
}
