// Package filter narrows the catalog through an ordered stage pipeline.
// Each stage consumes the previous stage's survivors; the first stage
// to empty the set halts the run with an Unsatisfiable outcome.
package filter

import (
	"fmt"
	"strings"

	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
)

const (
	StageGenre       = "GenreFilter"
	StageViewingType = "ViewingTypeFilter"
	StageAudience    = "AudienceCategoryFilter"
)

// Unsatisfiable is the ordinary terminal outcome for a criteria
// combination the catalog cannot meet. It is a value, not an error.
type Unsatisfiable struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Result is the cascade outcome: either the surviving items or the
// stage that emptied them.
type Result struct {
	Items []domain.Item
	Unsat *Unsatisfiable
}

func (r Result) Satisfied() bool { return r.Unsat == nil }

type Cascade struct {
	log *logger.Logger
}

func NewCascade(baseLog *logger.Logger) *Cascade {
	return &Cascade{log: baseLog.With("component", "FilterCascade")}
}

// Run applies the three stages in order. A stage whose criterion is
// absent passes its input through unchanged.
func (c *Cascade) Run(items []domain.Item, criteria *domain.CriteriaSet) Result {
	survivors := items

	if criteria.Genre != nil {
		survivors = filterGenre(survivors, criteria.Genre.Value)
		c.log.Debug("stage applied", "stage", StageGenre, "survivors", len(survivors))
		if len(survivors) == 0 {
			return unsat(StageGenre, fmt.Sprintf("no titles carry the genre %q", criteria.Genre.Value))
		}
	}

	if criteria.ViewingTypes != nil {
		survivors = filterViewingType(survivors, criteria.ViewingTypes.Value)
		c.log.Debug("stage applied", "stage", StageViewingType, "survivors", len(survivors))
		if len(survivors) == 0 {
			return unsat(StageViewingType, fmt.Sprintf(
				"no matching titles of type %s survive the earlier criteria",
				strings.Join(criteria.ViewingTypes.Value, " or ")))
		}
	}

	if criteria.Audience != nil && criteria.Audience.Value != domain.AudienceUnknown {
		survivors = filterAudience(survivors, criteria.Audience.Value)
		c.log.Debug("stage applied", "stage", StageAudience, "survivors", len(survivors))
		if len(survivors) == 0 {
			return unsat(StageAudience, fmt.Sprintf(
				"no surviving titles are rated for a %s audience",
				strings.ToLower(string(criteria.Audience.Value))))
		}
	}

	return Result{Items: survivors}
}

func unsat(stage, msg string) Result {
	return Result{Unsat: &Unsatisfiable{Stage: stage, Message: msg}}
}

// filterGenre keeps items whose genre token set shares at least one
// token with the extracted label. Catalog labels are compound strings
// ("TV Comedies") while extracted labels may be single words, so both
// sides are tokenized and compared case-insensitively.
func filterGenre(items []domain.Item, label string) []domain.Item {
	want := map[string]bool{}
	for _, tok := range genreTokens(label) {
		want[strings.ToLower(tok)] = true
	}
	if len(want) == 0 {
		return items
	}
	out := []domain.Item{}
	for _, it := range items {
		for _, tok := range it.Genres {
			if want[strings.ToLower(tok)] {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func filterViewingType(items []domain.Item, labels []string) []domain.Item {
	want := map[string]bool{}
	for _, l := range labels {
		want[l] = true
	}
	out := []domain.Item{}
	for _, it := range items {
		if want[it.Type] {
			out = append(out, it)
		}
	}
	return out
}

// filterAudience keeps items whose rating exactly matches the rating
// the lookup table assigns for the category and the item's own type.
func filterAudience(items []domain.Item, cat domain.AudienceCategory) []domain.Item {
	out := []domain.Item{}
	for _, it := range items {
		want, ok := RatingFor(cat, it.Type)
		if !ok {
			continue
		}
		if it.Rating == want {
			out = append(out, it)
		}
	}
	return out
}

var ratingTable = map[domain.AudienceCategory]struct{ movie, series string }{
	domain.AudienceChildren: {movie: "G", series: "TV-Y7"},
	domain.AudienceTeen:     {movie: "PG-13", series: "TV-14"},
	domain.AudienceAdult:    {movie: "R", series: "TV-MA"},
}

// RatingFor maps an audience category and a viewing type to the one
// catalog rating value that category accepts for that type. Anything
// that is not a movie rates on the television scale.
func RatingFor(cat domain.AudienceCategory, viewingType string) (string, bool) {
	row, ok := ratingTable[cat]
	if !ok {
		return "", false
	}
	if viewingType == domain.TypeMovie {
		return row.movie, true
	}
	return row.series, true
}

func genreTokens(label string) []string {
	out := []string{}
	for _, part := range strings.Split(label, ",") {
		for _, word := range strings.Fields(part) {
			if word == "&" {
				continue
			}
			out = append(out, word)
		}
	}
	return out
}
