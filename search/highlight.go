package search

import (
	"regexp"
	"strings"
)

// Segment is one run of text for rendering; IsMatch marks runs that matched
// the query.
type Segment struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// Highlight splits text into alternating plain/matched runs using a
// case-insensitive literal match of query. Concatenating the segment texts
// always reproduces text exactly. Queries shorter than two characters return
// the whole text as a single unmatched segment.
func Highlight(text, query string) []Segment {
	if len(query) < 2 {
		return []Segment{{Text: text}}
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return []Segment{{Text: text}}
	}

	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	var segments []Segment
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], IsMatch: true})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// Plain reassembles the original text from segments.
func Plain(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}
