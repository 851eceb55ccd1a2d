package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 15 // Width for status text
)

// 🎯 FormatEntry formats a ledger entry for display
func FormatEntry(e Entry) string {
	// Determine prefix symbol
	var prefix string
	switch e.State {
	case StateCompleted:
		prefix = color.GreenString("✓")
	case StateSkipped:
		prefix = color.YellowString("-")
	case StateError:
		prefix = color.RedString("✗")
	case StateInProgress:
		prefix = color.CyanString("⟳")
	default:
		prefix = color.HiBlackString("·")
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, e.Source)
	statusPart := fmt.Sprintf("%-*s", statusWidth, e.State.String())

	line := fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		statusPart,
	)
	if e.Err != "" {
		line += " " + color.RedString(e.Err)
	}
	return line
}

// 📈 FormatSummary formats the aggregate summary as a single line
func FormatSummary(s Summary) string {
	return fmt.Sprintf(
		"%d files: %d completed, %d skipped, %d errors (%.1f%% of %d bytes)",
		s.TotalFiles,
		s.Completed,
		s.Skipped,
		s.Errors,
		s.PercentComplete(),
		s.TotalBytes,
	)
}
