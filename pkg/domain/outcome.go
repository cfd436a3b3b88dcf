package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the layout of the timestamp field in a rendered outcome.
// RFC3339 contains neither spaces nor the field delimiter.
const TimestampLayout = time.RFC3339

// FieldDelimiter separates the fields of a rendered outcome line.
const FieldDelimiter = " | "

const (
	playerLabel = "Player: "
	storyLabel  = "Story: "
	endingLabel = "Ending: "
)

// Outcome records a completed traversal.
type Outcome struct {
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player"`
	Story     string    `json:"story"`
	Ending    string    `json:"ending"`
}

// NewOutcome creates an Outcome stamped at the given time.
func NewOutcome(player, story, ending string, at time.Time) Outcome {
	return Outcome{
		Timestamp: at,
		Player:    player,
		Story:     story,
		Ending:    ending,
	}
}

// String renders the outcome as a single log line (without the trailing newline):
//
//	<timestamp> | Player: <player> | Story: <story> | Ending: <ending>
func (o Outcome) String() string {
	var sb strings.Builder
	sb.WriteString(o.Timestamp.Format(TimestampLayout))
	sb.WriteString(FieldDelimiter + playerLabel + cleanField(o.Player))
	sb.WriteString(FieldDelimiter + storyLabel + cleanField(o.Story))
	sb.WriteString(FieldDelimiter + endingLabel + cleanField(o.Ending))
	return sb.String()
}

// ParseOutcome reads back a line produced by Outcome.String.
func ParseOutcome(line string) (Outcome, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), FieldDelimiter)
	if len(parts) != 4 {
		return Outcome{}, fmt.Errorf("malformed outcome line: expected 4 fields, got %d", len(parts))
	}

	ts, err := time.Parse(TimestampLayout, parts[0])
	if err != nil {
		return Outcome{}, fmt.Errorf("malformed outcome timestamp: %w", err)
	}

	labels := []string{playerLabel, storyLabel, endingLabel}
	values := make([]string, len(labels))
	for i, label := range labels {
		field := parts[i+1]
		if !strings.HasPrefix(field, label) {
			return Outcome{}, fmt.Errorf("malformed outcome line: field %d missing %q", i+2, strings.TrimSpace(label))
		}
		values[i] = strings.TrimPrefix(field, label)
	}

	return NewOutcome(values[0], values[1], values[2], ts), nil
}

// cleanField keeps a value on one line and free of the field delimiter.
func cleanField(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.NewReplacer("\n", " ", "\r", " ", "|", "/").Replace(s)
	return strings.TrimSpace(s)
}
