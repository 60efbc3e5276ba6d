package sessionlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

// Manager owns a directory of session log files. It hands out Session
// handles for new files and reads completed ones back through the same
// format contract End relies on.
type Manager struct {
	dir string
}

// Record is a session file parsed back into its parts. Summary is nil while
// the session is still open (no footer on disk yet).
type Record struct {
	Meta    Metadata
	Start   time.Time
	Entries []Entry
	Summary *Summary
}

// Info describes one session file in the managed directory.
type Info struct {
	Name    string
	Path    string
	Start   time.Time
	Entries int
	Summary *Summary
}

// NewManager creates a manager rooted at dir, creating the directory if
// needed. An empty dir defaults to ~/.seslog/sessions.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".seslog", "sessions")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	log.Info().Str("dir", dir).Msg("Session directory ready")
	return &Manager{dir: dir}, nil
}

// Dir returns the managed sessions directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Begin starts a new session in the managed directory. An empty name gets a
// generated timestamp-plus-id file name; a supplied name must be path-safe.
func (m *Manager) Begin(name string, meta Metadata, opts ...Option) (*Session, error) {
	if name == "" {
		id, err := gonanoid.New(8)
		if err != nil {
			return nil, fmt.Errorf("failed to generate session id: %w", err)
		}
		name = fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), id)
	} else if err := validateName(name); err != nil {
		return nil, err
	}

	return Begin(filepath.Join(m.dir, name+".log"), meta, opts...)
}

// List returns the sessions in the directory, oldest first. Files that do
// not parse as session logs are skipped.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var infos []Info
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".log") {
			continue
		}
		path := filepath.Join(m.dir, de.Name())
		rec, err := m.Read(path)
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("Skipping unparseable session file")
			continue
		}
		infos = append(infos, Info{
			Name:    strings.TrimSuffix(de.Name(), ".log"),
			Path:    path,
			Start:   rec.Start,
			Entries: len(rec.Entries),
			Summary: rec.Summary,
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Start.Before(infos[j].Start) })
	return infos, nil
}

// Read parses a session file into header metadata, entries, and, when the
// footer exists, the recorded summary.
func (m *Manager) Read(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}
	defer f.Close()

	rec := &Record{}
	fields := map[string]string{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line == border {
			continue
		}
		if e, ok := ParseEntry(line); ok {
			rec.Entries = append(rec.Entries, e)
			continue
		}
		if label, value, ok := splitField(line); ok {
			fields[label] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session log: %w", err)
	}

	start, ok := fields["When generated"]
	if !ok {
		return nil, &FormatError{Path: path, Reason: "cannot recover start date from header"}
	}
	rec.Start, err = time.ParseInLocation(TimeLayout, start, time.Local)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot recover start date from header"}
	}

	rec.Meta = Metadata{
		ScriptPath: fields["Script fullname"],
		User:       fields["Current user"],
		Host:       fields["Current computer"],
		OSInfo:     fields["Operating System"],
		Arch:       fields["OS Architecture"],
	}

	if endStr, ok := fields["End time"]; ok {
		end, err := time.ParseInLocation(TimeLayout, endStr, time.Local)
		if err != nil {
			return nil, &FormatError{Path: path, Reason: "cannot parse end time from footer"}
		}
		sum := Summary{Start: rec.Start, End: end}
		sum.Seconds, err = strconv.ParseInt(fields["Total duration (seconds)"], 10, 64)
		if err != nil {
			return nil, &FormatError{Path: path, Reason: "cannot parse duration seconds from footer"}
		}
		sum.Minutes, err = strconv.ParseFloat(fields["Total duration (minutes)"], 64)
		if err != nil {
			return nil, &FormatError{Path: path, Reason: "cannot parse duration minutes from footer"}
		}
		rec.Summary = &sum
	}

	return rec, nil
}

// splitField splits a header/footer line at the fixed separator column.
func splitField(line string) (label, value string, ok bool) {
	if len(line) < labelWidth+2 || line[labelWidth] != ':' {
		return "", "", false
	}
	return strings.TrimRight(line[:labelWidth], " "), line[labelWidth+2:], true
}

// validateName rejects session names that could escape the directory.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("session name cannot contain '..'")
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("session name cannot contain path separators")
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("session name cannot contain null bytes")
	}
	return nil
}
