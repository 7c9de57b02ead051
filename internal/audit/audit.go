// Package audit provides a write-only debug sink that dumps raw events and
// generated activities to a file. A nil Logger is a no-op, so callers never
// need to guard their calls.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gitea.jw6.us/james/oxstream/internal/activity"
	"gitea.jw6.us/james/oxstream/internal/event"
)

// Logger appends numbered event dumps and free-text messages to a file.
type Logger struct {
	mu    sync.Mutex
	file  *os.File
	count int
}

// New opens (or creates) the audit log file for appending.
func New(path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &Logger{file: file}, nil
}

// LogEvent dumps a raw incoming event with its topic.
func (l *Logger) LogEvent(ev *event.Event, topic string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	fmt.Fprintf(l.file, "event %d\n", l.count)
	fmt.Fprintf(l.file, "topic: %s\n", topic)
	if ev == nil {
		fmt.Fprintln(l.file, "event: <nil>")
		fmt.Fprintln(l.file)
		return
	}

	fmt.Fprintf(l.file, "action: %s\n", ev.Action)
	if ev.Object != nil {
		fmt.Fprintf(l.file, "object kind: %s\n", ev.Object.Kind())
	} else {
		fmt.Fprintln(l.file, "object: <nil>")
	}
	if ev.SourceFolder != nil {
		fmt.Fprintf(l.file, "sourceFolder: %d %q (%s)\n", ev.SourceFolder.ID, ev.SourceFolder.Name, ev.SourceFolder.Kind)
	}
	if ev.DestinationFolder != nil {
		fmt.Fprintf(l.file, "destinationFolder: %d %q (%s)\n", ev.DestinationFolder.ID, ev.DestinationFolder.Name, ev.DestinationFolder.Kind)
	}
	fmt.Fprintf(l.file, "contextId: %d\n", ev.ContextID)
	fmt.Fprintf(l.file, "userId: %d\n", ev.UserID)
	if len(ev.AffectedUserFolders) > 0 {
		fmt.Fprintf(l.file, "affectedUsersWithFolder: %v\n", ev.AffectedUserFolders)
	}
	if ev.Session != nil {
		fmt.Fprintf(l.file, "session.userId: %d\n", ev.Session.UserID)
		fmt.Fprintf(l.file, "session.login: %s\n", ev.Session.Login)
	}
	fmt.Fprintln(l.file)
}

// LogActivity dumps a generated activity as JSON.
func (l *Logger) LogActivity(act *activity.Activity) {
	if l == nil {
		return
	}
	data, err := json.Marshal(act)
	if err != nil {
		l.LogText(fmt.Sprintf("activity marshal failed: %v", err))
		return
	}
	l.LogText(string(data))
}

// LogText appends a free-text message.
func (l *Logger) LogText(message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.file, "\n%s\n", message)
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
