package logx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Fields is a map of structured log fields
type Fields map[string]interface{}

// LogEntry is a single formatted log record
type LogEntry struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
}

// Formatter turns a LogEntry into output bytes
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorGreen  = "\033[32m"
)

// ConsoleFormatter formats logs for console output with optional colors
type ConsoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var builder strings.Builder

	timestamp := entry.Timestamp.Format(f.config.TimeFormat)
	if f.config.EnableColors {
		builder.WriteString(colorGray)
		builder.WriteString(timestamp)
		builder.WriteString(colorReset)
	} else {
		builder.WriteString(timestamp)
	}
	builder.WriteString(" ")

	builder.WriteString(f.formatLevel(entry.Level))
	builder.WriteString(" ")
	builder.WriteString(entry.Message)

	// Fields in deterministic order
	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			builder.WriteString(" ")
			if f.config.EnableColors {
				builder.WriteString(colorCyan)
				builder.WriteString(k)
				builder.WriteString(colorReset)
			} else {
				builder.WriteString(k)
			}
			builder.WriteString("=")
			builder.WriteString(fmt.Sprintf("%v", entry.Fields[k]))
		}
	}

	builder.WriteString("\n")
	return []byte(builder.String()), nil
}

func (f *ConsoleFormatter) formatLevel(level Level) string {
	text := fmt.Sprintf("%-5s", level.String())
	if !f.config.EnableColors {
		return text
	}
	switch level {
	case LevelDebug:
		return colorGray + text + colorReset
	case LevelInfo:
		return colorGreen + text + colorReset
	case LevelWarn:
		return colorYellow + text + colorReset
	case LevelError, LevelFatal:
		return colorRed + text + colorReset
	default:
		return text
	}
}

// JSONFormatter formats logs as one JSON object per line
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	record := make(map[string]interface{}, len(entry.Fields)+3)
	record["time"] = entry.Timestamp.Format(f.config.TimeFormat)
	record["level"] = entry.Level.String()
	record["message"] = entry.Message

	for k, v := range entry.Fields {
		record[k] = v
	}
	if entry.Error != nil {
		record["error"] = entry.Error.Error()
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
