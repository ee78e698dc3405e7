package transcript

import (
	"fmt"
	"strings"

	"github.com/JAS0NN/youtube-summary/models"
)

// Format renders a caption track as a title heading followed by one
// "[mm:ss] text" line per entry. Pure and deterministic: the same track and
// title always produce byte-identical output.
func Format(track models.CaptionTrack, title string) models.FormattedTranscript {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	for _, entry := range track.Entries {
		fmt.Fprintf(&sb, "%s %s\n", timestamp(entry.Start), entry.Text)
	}
	return models.FormattedTranscript{Title: title, Body: sb.String()}
}

func timestamp(start float64) string {
	total := int(start)
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}
