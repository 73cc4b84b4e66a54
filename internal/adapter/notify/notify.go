package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Level is the severity of a notification
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast raised by the entry form
type Notification struct {
	Level   Level
	Message string
}

// Logger writes notifications to a zap logger
type Logger struct {
	logger *zap.Logger
}

// NewLogger creates a new Logger instance
func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger}
}

func (l *Logger) Success(message string) {
	l.logger.Info("notification", zap.String("level", string(LevelSuccess)), zap.String("message", message))
}

func (l *Logger) Error(message string) {
	l.logger.Warn("notification", zap.String("level", string(LevelError)), zap.String("message", message))
}

// Recorder buffers notifications until they are drained
type Recorder struct {
	mu      sync.Mutex
	pending []Notification
}

// NewRecorder creates a new Recorder instance
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) {
	r.add(LevelSuccess, message)
}

func (r *Recorder) Error(message string) {
	r.add(LevelError, message)
}

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, Notification{Level: level, Message: message})
}

// Drain returns the buffered notifications in arrival order and empties the buffer
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.pending
	r.pending = nil
	return out
}

// Sink is anything that accepts success and error notifications
type Sink interface {
	Success(message string)
	Error(message string)
}

// Multi fans every notification out to each sink in order
type Multi []Sink

func (m Multi) Success(message string) {
	for _, s := range m {
		s.Success(message)
	}
}

func (m Multi) Error(message string) {
	for _, s := range m {
		s.Error(message)
	}
}
