package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Viewing type labels as they appear in the catalog's type column.
const (
	TypeMovie      = "Movie"
	TypeTVSeries   = "TV Series"
	TypeMiniseries = "Miniseries"
)

// CatalogRecord is the stored row for one title.
type CatalogRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Seq preserves ingestion order; reads come back ordered by it so
	// downstream ranking sees a deterministic catalog order.
	Seq int `gorm:"not null;default:0;index" json:"seq"`

	Type  string `gorm:"type:text;not null;index" json:"type"`
	Title string `gorm:"type:text;not null" json:"title"`

	// GenreLabel keeps the raw compound string (e.g. "TV Comedies,
	// International TV Shows"); GenreTokens holds the tokenized form the
	// filter matches against.
	GenreLabel  string         `gorm:"type:text;not null;default:''" json:"genre_label"`
	GenreTokens datatypes.JSON `gorm:"not null;default:'[]'" json:"genre_tokens"`

	Rating   string `gorm:"type:text;not null;index" json:"rating"`
	Synopsis string `gorm:"type:text;not null;default:''" json:"synopsis"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CatalogRecord) TableName() string { return "catalog_title" }

// Item is the normalized read view the filter and ranker consume. The
// core never mutates items; they are owned by the catalog store.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Genres   []string  `json:"genres"`
	Rating   string    `json:"rating"`
	Synopsis string    `json:"synopsis"`
}

// ToItem converts a stored record into the normalized view.
func (r *CatalogRecord) ToItem() Item {
	var genres []string
	if len(r.GenreTokens) > 0 {
		_ = json.Unmarshal(r.GenreTokens, &genres)
	}
	return Item{
		ID:       r.ID,
		Title:    r.Title,
		Type:     r.Type,
		Genres:   genres,
		Rating:   r.Rating,
		Synopsis: r.Synopsis,
	}
}
