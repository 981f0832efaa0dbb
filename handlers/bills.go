package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/search"
)

type searchResult struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	OriginalName string           `json:"originalName"`
	Summary      string           `json:"summary"`
	Score        int              `json:"score"`
	TitleParts   []search.Segment `json:"titleParts"`
	NameParts    []search.Segment `json:"nameParts"`
}

func (h *Handler) HandleGetBills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loaded": h.Catalog.Loaded(),
		"bills":  h.Catalog.Documents(),
	})
}

// HandleSearchBills fuzzy-searches the catalog and returns the ranked
// matches with highlight segments for the title and filename.
func (h *Handler) HandleSearchBills(c *gin.Context) {
	query := c.Query("q")
	ranked := search.Search(query, h.Catalog.Documents())

	results := make([]searchResult, 0, len(ranked))
	for _, doc := range ranked {
		results = append(results, searchResult{
			ID:           doc.ID,
			Title:        doc.Title,
			OriginalName: doc.OriginalName,
			Summary:      doc.Summary,
			Score:        doc.Score,
			TitleParts:   search.Highlight(doc.Title, query),
			NameParts:    search.Highlight(doc.OriginalName, query),
		})
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}
