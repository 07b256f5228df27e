package httpx

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Logger provides structured logging for GitHub API calls.
type Logger interface {
	// LogRequest logs an outgoing API request (token redacted)
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse logs an API response with timing info
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError logs an API error
	LogError(ctx context.Context, err ErrorLog)

	// LogWarning logs a warning with structured fields
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

// RequestLog contains request information for logging.
type RequestLog struct {
	Method    string
	URL       string
	Timestamp time.Time
	Token     string // Will be redacted to last 4 chars
}

// ResponseLog contains response information for logging.
type ResponseLog struct {
	Method     string
	URL        string
	Timestamp  time.Time
	Duration   time.Duration
	StatusCode int
	BodyBytes  int
}

// ErrorLog contains error information for logging.
type ErrorLog struct {
	Method     string
	URL        string
	Timestamp  time.Time
	Duration   time.Duration
	Error      error
	ErrorType  ErrorType
	StatusCode int
	Retryable  bool
}

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// DefaultLogger writes logs in structured format to stderr.
type DefaultLogger struct {
	level        LogLevel
	format       LogFormat
	redactTokens bool
}

// NewDefaultLogger creates a logger with the specified config.
func NewDefaultLogger(level LogLevel, format LogFormat, redactTokens bool) *DefaultLogger {
	return &DefaultLogger{level: level, format: format, redactTokens: redactTokens}
}

// LogRequest logs an API request.
func (l *DefaultLogger) LogRequest(ctx context.Context, req RequestLog) {
	if l.level > LogLevelDebug {
		return
	}

	redacted := l.RedactToken(req.Token)

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"debug","type":"request","method":"%s","url":"%s","timestamp":"%s","token":"%s"}`,
			req.Method, req.URL, req.Timestamp.Format(time.RFC3339), redacted)
	} else {
		log.Printf("[DEBUG] %s %s (token=%s)", req.Method, req.URL, redacted)
	}
}

// LogResponse logs an API response.
func (l *DefaultLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"info","type":"response","method":"%s","url":"%s","timestamp":"%s","duration_ms":%d,"status_code":%d,"body_bytes":%d}`,
			resp.Method, resp.URL, resp.Timestamp.Format(time.RFC3339),
			resp.Duration.Milliseconds(), resp.StatusCode, resp.BodyBytes)
	} else {
		log.Printf("[INFO] %s %s: %d (duration=%.1fs, %d bytes)",
			resp.Method, resp.URL, resp.StatusCode, resp.Duration.Seconds(), resp.BodyBytes)
	}
}

// LogError logs an API error.
func (l *DefaultLogger) LogError(ctx context.Context, err ErrorLog) {
	if l.level > LogLevelError {
		return
	}

	retryableStr := "non-retryable"
	if err.Retryable {
		retryableStr = "retryable"
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"error","type":"error","method":"%s","url":"%s","timestamp":"%s","duration_ms":%d,"error":"%s","error_type":%d,"status_code":%d,"retryable":%t}`,
			err.Method, err.URL, err.Timestamp.Format(time.RFC3339),
			err.Duration.Milliseconds(), err.Error.Error(), err.ErrorType,
			err.StatusCode, err.Retryable)
	} else {
		log.Printf("[ERROR] %s %s: request failed (status=%d, %s): %v",
			err.Method, err.URL, err.StatusCode, retryableStr, err.Error)
	}
}

// LogWarning logs a warning message with structured fields.
func (l *DefaultLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"warn","message":"%s","fields":%v}`, message, fields)
	} else {
		log.Printf("[WARN] %s %v", message, fields)
	}
}

// LogInfo logs an informational message with structured fields.
func (l *DefaultLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"info","message":"%s","fields":%v}`, message, fields)
	} else {
		log.Printf("[INFO] %s %v", message, fields)
	}
}

// RedactToken shows only the last 4 characters of a token with explicit
// redaction markers.
func (l *DefaultLogger) RedactToken(token string) string {
	if !l.redactTokens {
		return token
	}
	if len(token) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", token[len(token)-4:])
}
