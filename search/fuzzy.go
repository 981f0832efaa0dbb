// Package search implements the client-side bill search: a subsequence
// fuzzy matcher over the in-memory catalog and a literal-substring
// highlighter for rendering matches.
package search

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/logger"
	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
)

// Score weights. Subsequence hits on title/filename/summary are additive
// with literal-substring bonuses on title/filename.
const (
	titleFuzzyScore    = 10
	filenameFuzzyScore = 5
	summaryFuzzyScore  = 3
	titleExactScore    = 20
	filenameExactScore = 15

	maxResults = 3
)

// Search scores query against every catalog document and returns the top 3
// by descending score, ties keeping catalog order. Queries shorter than two
// characters after trimming mean "no active search" and yield nil. A query
// that cannot be compiled into a pattern is treated as no matches, never an
// error.
func Search(query string, catalog []models.Document) []models.RankedDocument {
	q := strings.TrimSpace(query)
	if len(q) < 2 {
		return nil
	}

	re, err := fuzzyPattern(q)
	if err != nil {
		logger.Get().Warn("fuzzy pattern did not compile",
			zap.String("query", q),
			zap.Error(err))
		return nil
	}

	lowerQuery := strings.ToLower(q)

	var ranked []models.RankedDocument
	for _, doc := range catalog {
		score := 0
		if re.MatchString(doc.Title) {
			score += titleFuzzyScore
		}
		if re.MatchString(doc.OriginalName) {
			score += filenameFuzzyScore
		}
		if re.MatchString(doc.Summary) {
			score += summaryFuzzyScore
		}
		if strings.Contains(strings.ToLower(doc.Title), lowerQuery) {
			score += titleExactScore
		}
		if strings.Contains(strings.ToLower(doc.OriginalName), lowerQuery) {
			score += filenameExactScore
		}
		if score > 0 {
			ranked = append(ranked, models.RankedDocument{Document: doc, Score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// fuzzyPattern builds a case-insensitive subsequence matcher: every query
// character, escaped, separated by a non-greedy wildcard.
func fuzzyPattern(query string) (*regexp.Regexp, error) {
	chars := strings.Split(query, "")
	for i, ch := range chars {
		chars[i] = regexp.QuoteMeta(ch)
	}
	return regexp.Compile("(?i)" + strings.Join(chars, ".*?"))
}
