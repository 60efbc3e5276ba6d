package sessionlog

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the timestamp format used everywhere in a session file:
// header, entry lines, and footer. Second precision, no zone.
const TimeLayout = "2006-01-02 15:04:05"

// border is the block delimiter for header and footer. 90 columns, fixed.
const border = "+----------------------------------------------------------------------------------------+"

// labelWidth is the column the ':' separator sits at in header/footer lines.
const labelWidth = 25

// startTimeRe recovers the start timestamp from the header. Label text and
// spacing are part of the on-disk contract, so the pattern is anchored to the
// exact rendered form.
var startTimeRe = regexp.MustCompile(`^When generated           : (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})$`)

// entryRe splits a rendered entry line back into its three fields.
var entryRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}); (INF|WAR|ERR); (.*)$`)

// headerScanLimit bounds how far into the file the start-time scan looks.
// The header is always within the first lines; anything past that is entries.
const headerScanLimit = 16

// Metadata is the provenance block written into the session header.
type Metadata struct {
	ScriptPath string
	User       string
	Host       string
	OSInfo     string
	Arch       string
}

// Entry is one categorized line of a session log.
type Entry struct {
	Timestamp time.Time
	Category  Category
	Message   string
}

// Summary describes a completed session as recorded in the footer.
type Summary struct {
	Start   time.Time
	End     time.Time
	Seconds int64
	Minutes float64
}

func fieldLine(label, value string) string {
	return fmt.Sprintf("%-*s: %s", labelWidth, label, value)
}

// renderHeader produces the bordered header block, trailing blank line
// included.
func renderHeader(meta Metadata, start time.Time) string {
	var b strings.Builder
	b.WriteString(border + "\n")
	b.WriteString(fieldLine("Script fullname", meta.ScriptPath) + "\n")
	b.WriteString(fieldLine("When generated", start.Format(TimeLayout)) + "\n")
	b.WriteString(fieldLine("Current user", meta.User) + "\n")
	b.WriteString(fieldLine("Current computer", meta.Host) + "\n")
	b.WriteString(fieldLine("Operating System", meta.OSInfo) + "\n")
	b.WriteString(fieldLine("OS Architecture", meta.Arch) + "\n")
	b.WriteString(border + "\n")
	b.WriteString("\n")
	return b.String()
}

// renderFooter produces the bordered footer block, leading blank line
// included. Seconds are floored, minutes rounded to two decimals, matching
// the Summary the caller gets back.
func renderFooter(sum Summary) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(border + "\n")
	b.WriteString(fieldLine("End time", sum.End.Format(TimeLayout)) + "\n")
	b.WriteString(fieldLine("Total duration (seconds)", strconv.FormatInt(sum.Seconds, 10)) + "\n")
	b.WriteString(fieldLine("Total duration (minutes)", strconv.FormatFloat(sum.Minutes, 'f', -1, 64)) + "\n")
	b.WriteString(border + "\n")
	return b.String()
}

// renderEntry produces one entry line, newline excluded.
func renderEntry(e Entry) string {
	return fmt.Sprintf("%s; %s; %s", e.Timestamp.Format(TimeLayout), e.Category, e.Message)
}

// summarize derives footer values from a start and end instant.
func summarize(start, end time.Time) Summary {
	d := end.Sub(start)
	return Summary{
		Start:   start,
		End:     end,
		Seconds: int64(math.Floor(d.Seconds())),
		Minutes: math.Round(d.Minutes()*100) / 100,
	}
}

// ExtractStartTime scans the head of a session file for the
// "When generated" header line and parses its timestamp. It reads at most a
// handful of lines; a file without a valid header yields a FormatError.
func ExtractStartTime(r io.Reader) (time.Time, error) {
	scanner := bufio.NewScanner(r)
	for i := 0; i < headerScanLimit && scanner.Scan(); i++ {
		m := startTimeRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		ts, err := time.ParseInLocation(TimeLayout, m[1], time.Local)
		if err != nil {
			return time.Time{}, &FormatError{Reason: "cannot recover start date from header"}
		}
		return ts, nil
	}
	if err := scanner.Err(); err != nil {
		return time.Time{}, fmt.Errorf("failed to read session header: %w", err)
	}
	return time.Time{}, &FormatError{Reason: "cannot recover start date from header"}
}

// ParseEntry converts a rendered entry line back into an Entry. The second
// return is false for border, field, and blank lines.
func ParseEntry(line string) (Entry, bool) {
	m := entryRe.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	ts, err := time.ParseInLocation(TimeLayout, m[1], time.Local)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Timestamp: ts, Category: Category(m[2]), Message: m[3]}, true
}

// sanitizeMessage collapses CR/LF runs into single spaces so a message can
// never break the line-oriented format the read-back parsers depend on.
func sanitizeMessage(msg string) string {
	if !strings.ContainsAny(msg, "\r\n") {
		return msg
	}
	var b strings.Builder
	b.Grow(len(msg))
	inBreak := false
	for _, r := range msg {
		if r == '\r' || r == '\n' {
			if !inBreak {
				b.WriteByte(' ')
				inBreak = true
			}
			continue
		}
		inBreak = false
		b.WriteRune(r)
	}
	return b.String()
}
