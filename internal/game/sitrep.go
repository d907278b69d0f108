package game

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// SitRep categories.
const (
	SitRepPersonnel = "personnel"
	SitRepDiplomacy = "diplomacy"
	SitRepMilitary  = "military"
)

// SitRepEntry is one line in a civilization's situation report.
type SitRepEntry struct {
	Turn     int    `json:"turn"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// TurnLabel renders the entry's turn for report output, e.g. "3rd turn".
func (e SitRepEntry) TurnLabel() string {
	return fmt.Sprintf("%s turn", humanize.Ordinal(e.Turn))
}

// SitRepLog collects situation-report entries for one civilization.
type SitRepLog struct {
	Entries []SitRepEntry
}

// Add appends an entry.
func (l *SitRepLog) Add(turn int, category, summary string) {
	l.Entries = append(l.Entries, SitRepEntry{Turn: turn, Category: category, Summary: summary})
}

// Recent returns the most recent n entries, newest last.
func (l *SitRepLog) Recent(n int) []SitRepEntry {
	if n <= 0 || len(l.Entries) == 0 {
		return nil
	}
	if n > len(l.Entries) {
		n = len(l.Entries)
	}
	return l.Entries[len(l.Entries)-n:]
}
