package roles

import (
	"fmt"
	"sync"
)

// Level is the severity of a system message.
type Level int

const (
	LevelInfo Level = iota + 1
	LevelWarning
	LevelError
)

// String returns the docutils-style level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Message is a system message surfaced at build time.
type Message struct {
	ID    string
	Level Level
	Text  string
	Line  int
}

// Reporter creates system messages on behalf of a role.
type Reporter interface {
	Error(text string, line int) Message
	Warning(text string, line int) Message
}

// MessageLog is a Reporter that records every message it creates. One log is
// used per rendered document.
type MessageLog struct {
	mu       sync.Mutex
	messages []Message
}

// NewMessageLog returns an empty log.
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Error records an error-level message.
func (l *MessageLog) Error(text string, line int) Message {
	return l.add(LevelError, text, line)
}

// Warning records a warning-level message.
func (l *MessageLog) Warning(text string, line int) Message {
	return l.add(LevelWarning, text, line)
}

func (l *MessageLog) add(level Level, text string, line int) Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := Message{
		ID:    fmt.Sprintf("system-message-%d", len(l.messages)+1),
		Level: level,
		Text:  text,
		Line:  line,
	}
	l.messages = append(l.messages, msg)
	return msg
}

// Messages returns a copy of the recorded messages in creation order.
func (l *MessageLog) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}
