package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
)

func testCatalog() []models.Document {
	return []models.Document{
		{ID: 1, OriginalName: "HB_001.pdf", Title: "H B 001", Summary: "Bill document: HB_001"},
		{ID: 2, OriginalName: "SB_007.pdf", Title: "S B 007", Summary: "Bill document: SB_007"},
		{ID: 3, OriginalName: "Climate_Act.pdf", Title: "Climate Act", Summary: "Bill document: Climate_Act"},
		{ID: 4, OriginalName: "Water_Rights.pdf", Title: "Water Rights", Summary: "Bill document: Water_Rights"},
	}
}

func TestSearchShortQueryIsNoOp(t *testing.T) {
	catalog := testCatalog()

	assert.Empty(t, Search("", catalog))
	assert.Empty(t, Search("c", catalog))
	assert.Empty(t, Search("  c  ", catalog))
}

func TestSearchScoresAreSortedDescending(t *testing.T) {
	results := Search("climate", testCatalog())
	require.NotEmpty(t, results)

	for i, r := range results {
		assert.Greater(t, r.Score, 0)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Score, r.Score)
		}
	}
}

func TestSearchExactTitleMatchOutranksFuzzyOnly(t *testing.T) {
	catalog := []models.Document{
		// Subsequence match only: c...a...t spread across the title.
		{ID: 1, OriginalName: "x.pdf", Title: "Council Meeting Dates", Summary: "other"},
		{ID: 2, OriginalName: "y.pdf", Title: "Cat Shelter Funding", Summary: "other"},
	}

	results := Search("cat", catalog)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchTruncatesToThree(t *testing.T) {
	var catalog []models.Document
	for i := 0; i < 20; i++ {
		catalog = append(catalog, models.Document{
			ID:           i + 1,
			OriginalName: "Climate.pdf",
			Title:        "Climate Act",
			Summary:      "climate",
		})
	}

	results := Search("climate", catalog)
	assert.Len(t, results, 3)
	// Equal scores keep catalog order.
	assert.Equal(t, 1, results[0].ID)
	assert.Equal(t, 2, results[1].ID)
	assert.Equal(t, 3, results[2].ID)
}

func TestSearchExcludesZeroScores(t *testing.T) {
	results := Search("zzzz", testCatalog())
	assert.Empty(t, results)
}

func TestSearchAdditiveScoring(t *testing.T) {
	catalog := []models.Document{
		{ID: 1, OriginalName: "Climate_Act.pdf", Title: "Climate Act", Summary: "climate policy"},
	}

	results := Search("climate", catalog)
	require.Len(t, results, 1)
	// Fuzzy title+filename+summary plus exact title+filename bonuses.
	assert.Equal(t, 10+5+3+20+15, results[0].Score)
}

func TestSearchRegexMetacharactersDoNotPanic(t *testing.T) {
	catalog := testCatalog()

	for _, query := range []string{"a(b", "[[", "**", "c.l.m", `a\b`, "(?P<"} {
		assert.NotPanics(t, func() { Search(query, catalog) })
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	results := Search("CLIMATE", testCatalog())
	require.NotEmpty(t, results)
	assert.Equal(t, 3, results[0].ID)
}
