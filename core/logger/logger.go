package logger

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event types.
const (
	EventSessionStart   = "session_start"
	EventRunCommand     = "run_command"
	EventUnknownCommand = "unknown_command"
	EventReadError      = "read_error"
	EventSessionEnd     = "session_end"
)

// Field names shared by every entry.
const (
	FieldType      = "type"
	FieldSessionID = "session_id"
	FieldTimestamp = "timestamp_micros"
)

// Fields holds the event specific payload.
type Fields map[string]interface{}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *structpb.Struct) error

// Logger captures session events.
type Logger struct {
	Record LogRecorder
	now    func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *structpb.Struct) error {
			entry, err := protojson.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
		now: time.Now,
	}
}

// NewNopLogger creates a logger that drops everything.
func NewNopLogger() *Logger {
	return &Logger{Record: func(*structpb.Struct) error { return nil }}
}

func (l *Logger) record(sessionID, eventType string, fields Fields) error {
	raw := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		raw[k] = normalize(v)
	}
	raw[FieldType] = eventType
	raw[FieldSessionID] = sessionID
	if l.now != nil {
		raw[FieldTimestamp] = l.now().UnixNano() / int64(time.Microsecond)
	}

	le, err := structpb.NewStruct(raw)
	if err != nil {
		return err
	}
	return l.Record(le)
}

// normalize converts values structpb can't represent directly.
func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case error:
		return v.Error()
	}
	return v
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every entry.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record writes a single event.
func (l *SessionLogger) Record(eventType string, fields Fields) error {
	return l.record(l.sessionID, eventType, fields)
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *structpb.Struct)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var logEntry structpb.Struct
		if err := protojson.Unmarshal(line, &logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return scanner.Err()
}
