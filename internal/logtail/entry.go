package logtail

import "strings"

// Entry is one line of the console log format written by the logging
// package: tab-separated time, level, logger name, message and optional
// JSON fields. Lines that do not match keep everything in Message.
type Entry struct {
	Time    string
	Level   string
	Logger  string
	Message string
	Fields  string
}

var levels = map[string]bool{
	"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
	"DPANIC": true, "PANIC": true, "FATAL": true,
}

// Parse splits a console log line.
func Parse(line string) Entry {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 || !levels[strings.ToUpper(parts[1])] {
		return Entry{Message: line}
	}
	e := Entry{Time: parts[0], Level: strings.ToUpper(parts[1])}
	rest := parts[2:]
	// The logger name is omitted for the root logger.
	if len(rest) >= 2 && !strings.Contains(rest[0], " ") && !strings.HasPrefix(rest[1], "{") {
		e.Logger, rest = rest[0], rest[1:]
	}
	e.Message = rest[0]
	if len(rest) > 1 {
		e.Fields = strings.Join(rest[1:], "\t")
	}
	return e
}

// AtLeast reports whether the entry's level is at or above min. Unparsed
// lines always pass.
func (e Entry) AtLeast(min string) bool {
	if e.Level == "" || min == "" {
		return true
	}
	return rank(e.Level) >= rank(strings.ToUpper(min))
}

func rank(level string) int {
	switch level {
	case "DEBUG":
		return 0
	case "INFO":
		return 1
	case "WARN":
		return 2
	case "ERROR":
		return 3
	default:
		return 4
	}
}
