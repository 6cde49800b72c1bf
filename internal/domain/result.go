package domain

import "github.com/google/uuid"

// RankedItem is one catalog item with its blended similarity score.
type RankedItem struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Score float64   `json:"score"`
}

// RankedResult is score-descending with stable ties. Produced fresh per
// ranking call, never persisted.
type RankedResult struct {
	Items []RankedItem `json:"items"`
}
