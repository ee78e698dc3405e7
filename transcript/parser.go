package transcript

import (
	"encoding/xml"
	"html"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/JAS0NN/youtube-summary/models"
)

var tagPattern = regexp.MustCompile(`(?i)<[^>]*>`)

// parseTimedText decodes a timedtext XML caption document into ordered
// entries. The source emits entries sorted by start offset already; they are
// kept in document order, never re-sorted.
func parseTimedText(data []byte) ([]models.CaptionEntry, error) {
	var doc struct {
		XMLName xml.Name `xml:"transcript"`
		Texts   []struct {
			Text     string `xml:",chardata"`
			Start    string `xml:"start,attr"`
			Duration string `xml:"dur,attr"`
		} `xml:"text"`
	}

	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse timedtext XML")
	}

	entries := make([]models.CaptionEntry, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := tagPattern.ReplaceAllString(t.Text, "")
		text = html.UnescapeString(text)
		if text == "" {
			continue
		}

		start, err := strconv.ParseFloat(t.Start, 64)
		if err != nil {
			start = 0.0
		}

		entries = append(entries, models.CaptionEntry{Start: start, Text: text})
	}
	return entries, nil
}
