package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/moodpick/moodpick-backend/internal/domain"
)

// ImportStats summarizes one catalog import.
type ImportStats struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// header aliases accepted for each required column
var headerAliases = map[string][]string{
	"type":     {"type"},
	"title":    {"title"},
	"genre":    {"listed_in", "genre", "genres"},
	"rating":   {"rating"},
	"synopsis": {"description", "synopsis"},
}

// ImportCSV parses a catalog export and replaces the stored catalog
// with it. Rows missing a type, title, rating or genre label are
// skipped and logged rather than failing the import. "TV Show" in the
// type column is normalized to "TV Series".
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (ImportStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return ImportStats{}, fmt.Errorf("read catalog header: %w", err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return ImportStats{}, err
	}

	stats := ImportStats{}
	rows := []*domain.CatalogRecord{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			stats.Skipped++
			s.log.Warn("skipping unparseable catalog row", "line", line, "error", err)
			continue
		}
		row, reason := buildRecord(rec, cols)
		if row == nil {
			stats.Skipped++
			s.log.Warn("skipping malformed catalog row", "line", line, "reason", reason)
			continue
		}
		rows = append(rows, row)
	}

	if err := s.Replace(ctx, rows); err != nil {
		return ImportStats{}, fmt.Errorf("store catalog: %w", err)
	}
	stats.Imported = len(rows)
	s.log.Info("catalog imported", "imported", stats.Imported, "skipped", stats.Skipped)
	return stats, nil
}

func mapHeader(header []string) (map[string]int, error) {
	byName := map[string]int{}
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := map[string]int{}
	for field, aliases := range headerAliases {
		idx := -1
		for _, a := range aliases {
			if j, ok := byName[a]; ok {
				idx = j
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("catalog header missing %q column", field)
		}
		cols[field] = idx
	}
	return cols, nil
}

func buildRecord(rec []string, cols map[string]int) (*domain.CatalogRecord, string) {
	cell := func(field string) string {
		i := cols[field]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	typ := normalizeType(cell("type"))
	title := cell("title")
	genreLabel := cell("genre")
	rating := cell("rating")

	switch {
	case typ == "":
		return nil, "missing type"
	case title == "":
		return nil, "missing title"
	case rating == "":
		return nil, "missing rating"
	case genreLabel == "":
		return nil, "missing genre label"
	}

	tokens := GenreTokensOf(genreLabel)
	return &domain.CatalogRecord{
		Type:        typ,
		Title:       title,
		GenreLabel:  genreLabel,
		GenreTokens: tokensJSON(tokens),
		Rating:      rating,
		Synopsis:    cell("synopsis"),
	}, ""
}

func normalizeType(t string) string {
	if strings.EqualFold(t, "TV Show") {
		return domain.TypeTVSeries
	}
	return t
}
