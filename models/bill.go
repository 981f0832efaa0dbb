package models

// Bill is the display record attached to a ShowBills directive.
type Bill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Summary    string `json:"summary"`
	Similarity int    `json:"similarity"`
}

// Document is one entry in the bill catalog: a file that was successfully
// probed under the bills directory.
type Document struct {
	ID           int    `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Title        string `json:"title"`
	Summary      string `json:"summary"`
}

// RankedDocument is a catalog entry with its fuzzy-match score.
type RankedDocument struct {
	Document
	Score int `json:"score"`
}
