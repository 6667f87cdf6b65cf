package sync

import "strings"

const logHeader = "Zoho Integration Logs:"

// Log is the per-run audit trail returned to the caller
type Log struct {
	lines []string
}

// Add appends one line
func (l *Log) Add(line string) {
	l.lines = append(l.lines, line)
}

// Lines returns a copy of the lines in order
func (l *Log) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines
func (l *Log) Len() int {
	return len(l.lines)
}

// String renders the header followed by one line per entry
func (l *Log) String() string {
	var b strings.Builder
	b.WriteString(logHeader)
	b.WriteString("\n")
	for _, line := range l.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
