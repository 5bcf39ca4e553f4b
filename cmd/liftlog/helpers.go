// ABOUTME: Small formatting and parsing helpers shared by CLI commands.
// ABOUTME: Covers date parsing, padding, and one-line set descriptions.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/session"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// describeSet renders one set for terminal output.
func describeSet(t models.ExerciseType, s models.SetRecord) string {
	var b strings.Builder
	switch t {
	case models.ExerciseSetsReps:
		reps := 0
		if s.Repetitions != nil {
			reps = *s.Repetitions
		}
		fmt.Fprintf(&b, "%d reps", reps)
		if s.PartialRepetitions != nil && *s.PartialRepetitions > 0 {
			fmt.Fprintf(&b, " +%d partial", *s.PartialRepetitions)
		}
		if s.WeightKg != nil && *s.WeightKg > 0 {
			fmt.Fprintf(&b, " @ %g kg", *s.WeightKg)
		}
	default:
		b.WriteString(session.FormatDuration(s.DurationMs()))
	}
	if s.IsFailure {
		b.WriteString(" (failure)")
	}
	fmt.Fprintf(&b, ", rest %s", session.FormatDuration(s.RestBeforeMs))
	return b.String()
}
