package webset

import (
	"fmt"
	"strings"

	"github.com/websetgate/websetgate/internal/exa"
)

// StatusMessage builds the human-readable message for a poll.
func StatusMessage(status string, progress *Progress, isComplete bool) string {
	if isComplete {
		found := 0
		if progress != nil {
			found = progress.Found
		}
		return fmt.Sprintf("Search complete! Found %d matching results.", found)
	}

	if exa.Status(status).IsActive() {
		if progress == nil || progress.Found == 0 {
			return "Processing search"
		}
		msg := fmt.Sprintf("Processing... %d results found (%d%% complete)", progress.Found, int(progress.Completion))
		if progress.TimeLeft != nil && *progress.TimeLeft != 0 {
			msg += fmt.Sprintf(" • ~%ds remaining", int(*progress.TimeLeft))
		}
		return msg
	}

	return "Status: " + status
}

// enrichmentNote flags background enrichment on a message that does not
// already report completion. StatusMessage never returns "", so the empty
// case only matters for messages built elsewhere.
func enrichmentNote(message string, enrichment exa.Status) string {
	if !enrichment.IsActive() {
		return message
	}
	switch {
	case message == "":
		return "Enrichment processing in background"
	case strings.Contains(strings.ToLower(message), "complete"):
		return message
	default:
		return message + " • Enrichment processing"
	}
}
