package sessionlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/harun/seslog/internal/observability"
	"github.com/rs/zerolog/log"
)

// Session is an open session log. It is an explicit handle: callers thread it
// through Log and End, and there is no process-global current session.
type Session struct {
	path string
	file *os.File
	echo io.Writer
	now  func() time.Time

	mu     sync.Mutex
	closed bool
}

// Option configures a Session at Begin time.
type Option func(*Session)

// WithEcho mirrors every written block and entry to w, color-coded by
// category. The echo stream is presentation only; nothing about the file
// format depends on it.
func WithEcho(w io.Writer) Option {
	return func(s *Session) { s.echo = w }
}

// WithClock overrides the time source. Used by tests to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Begin creates or truncates the file at path and writes the session header.
// The returned handle is ready for Log calls and must be finished with End.
func Begin(path string, meta Metadata, opts ...Option) (*Session, error) {
	observability.EnsureRegistered()

	s := &Session{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}

	header := renderHeader(meta, s.now())
	if _, err := file.WriteString(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write session header: %w", err)
	}
	echoBlock(s.echo, header)

	s.file = file
	observability.SessionOpened()
	log.Debug().Str("path", path).Msg("Session log started")

	return s, nil
}

// Path returns the location of the session's log file.
func (s *Session) Path() string {
	return s.path
}

// Log appends one categorized entry line, timestamped at second precision.
// CR and LF in the message are collapsed to spaces so the line format stays
// intact; everything else is written verbatim.
func (s *Session) Log(cat Category, msg string) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown log category %q", string(cat))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	line := renderEntry(Entry{
		Timestamp: s.now(),
		Category:  cat,
		Message:   sanitizeMessage(msg),
	})
	if _, err := s.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}

	echoLine(s.echo, cat, line)
	observability.EntryLogged(string(cat))
	return nil
}

// Info appends an INF entry.
func (s *Session) Info(msg string) error { return s.Log(INF, msg) }

// Warn appends a WAR entry.
func (s *Session) Warn(msg string) error { return s.Log(WAR, msg) }

// Error appends an ERR entry.
func (s *Session) Error(msg string) error { return s.Log(ERR, msg) }

// End recovers the start time from the header on disk, appends the footer
// with the session duration, and closes the handle. A file without a valid
// header yields a FormatError and the file is left untouched.
func (s *Session) End() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Summary{}, ErrSessionClosed
	}

	start, err := s.readStartTime()
	if err != nil {
		return Summary{}, err
	}

	sum := summarize(start, s.now())
	footer := renderFooter(sum)
	if _, err := s.file.WriteString(footer); err != nil {
		return Summary{}, fmt.Errorf("failed to write session footer: %w", err)
	}
	echoBlock(s.echo, footer)

	s.closed = true
	if err := s.file.Close(); err != nil {
		return Summary{}, fmt.Errorf("failed to close session log: %w", err)
	}

	observability.SessionClosed(sum.End.Sub(sum.Start))
	log.Debug().
		Str("path", s.path).
		Int64("seconds", sum.Seconds).
		Msg("Session log ended")

	return sum, nil
}

// readStartTime re-reads the head of the session file and extracts the
// start timestamp via the documented header contract.
func (s *Session) readStartTime() (time.Time, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to reopen session log: %w", err)
	}
	defer f.Close()

	start, err := ExtractStartTime(f)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = s.path
		}
		return time.Time{}, err
	}
	return start, nil
}
