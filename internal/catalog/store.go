// Package catalog ingests tabular title data and serves the normalized
// read view the filter and ranker consume.
package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
)

type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStore(db *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{db: db, log: baseLog.With("repo", "CatalogStore")}
}

// Items returns the whole catalog as the normalized view, in ingestion
// order. Ranking's tie stability depends on this order being
// deterministic.
func (s *Store) Items(ctx context.Context) ([]domain.Item, error) {
	var rows []*domain.CatalogRecord
	if err := s.db.WithContext(ctx).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToItem())
	}
	return out, nil
}

// Count reports the number of stored titles.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.CatalogRecord{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// GenreTokens returns the unique genre tokens across the catalog in
// first-seen order.
func (s *Store) GenreTokens(ctx context.Context) ([]string, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := []string{}
	for _, it := range items {
		for _, tok := range it.Genres {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out, nil
}

// Replace swaps the stored catalog for the given rows in one
// transaction, assigning ingestion sequence numbers.
func (s *Store) Replace(ctx context.Context, rows []*domain.CatalogRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(&domain.CatalogRecord{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i, r := range rows {
			r.Seq = i
			if r.ID == uuid.Nil {
				r.ID = uuid.New()
			}
		}
		return tx.CreateInBatches(&rows, 200).Error
	})
}

// GenreTokensOf splits a compound genre label cell into match tokens.
// Labels are comma-separated and each label may hold several words;
// every word becomes a token. Connector noise ("&") is dropped.
func GenreTokensOf(label string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(label, ",") {
		for _, word := range strings.Fields(part) {
			word = strings.TrimSpace(word)
			if word == "" || word == "&" {
				continue
			}
			key := strings.ToLower(word)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, word)
		}
	}
	return out
}

func tokensJSON(tokens []string) datatypes.JSON {
	if len(tokens) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
