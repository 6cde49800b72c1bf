// Package recommend orchestrates one turn: criteria extraction, the
// filter cascade, per-item tone extraction and affective ranking.
package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/extract"
	"github.com/moodpick/moodpick-backend/internal/filter"
	"github.com/moodpick/moodpick-backend/internal/platform/envutil"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
	"github.com/moodpick/moodpick-backend/internal/vad"
)

// CatalogSource is the read view the orchestrator filters and ranks.
type CatalogSource interface {
	Items(ctx context.Context) ([]domain.Item, error)
}

// Turn is the outcome of one recommendation request. Exactly one of
// Unsatisfiable or Ranked is set when the turn succeeds.
type Turn struct {
	TurnID        uuid.UUID             `json:"turn_id"`
	Criteria      *domain.CriteriaSet   `json:"criteria"`
	Unsatisfiable *filter.Unsatisfiable `json:"unsatisfiable,omitempty"`
	Ranked        *domain.RankedResult  `json:"result,omitempty"`
}

type Service struct {
	extractor *extract.Extractor
	catalog   CatalogSource
	cascade   *filter.Cascade
	ranker    *vad.Ranker
	cache     *redis.Client
	log       *logger.Logger

	topK            int
	toneConcurrency int
	toneCacheTTL    time.Duration
}

// NewService wires the orchestrator. cache may be nil; tone lookups
// then always go to the oracle.
func NewService(
	extractor *extract.Extractor,
	catalog CatalogSource,
	cascade *filter.Cascade,
	cache *redis.Client,
	baseLog *logger.Logger,
) *Service {
	return &Service{
		extractor:       extractor,
		catalog:         catalog,
		cascade:         cascade,
		ranker:          vad.NewRanker(),
		cache:           cache,
		log:             baseLog.With("service", "Recommend"),
		topK:            envutil.Int("RECOMMEND_TOP_K", 10),
		toneConcurrency: envutil.Int("TONE_CONCURRENCY", 4),
		toneCacheTTL:    envutil.Seconds("TONE_CACHE_TTL_SECONDS", 24*time.Hour),
	}
}

// Recommend runs one full turn for a free-text query. Extraction
// rejections leave the field absent and the turn continues; an oracle
// transport failure fails the whole turn.
func (s *Service) Recommend(ctx context.Context, query string) (*Turn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	turn := &Turn{TurnID: uuid.New(), Criteria: &domain.CriteriaSet{}}
	log := s.log.With("turn_id", turn.TurnID)
	criteria := turn.Criteria

	genre, rej, err := s.extractor.Genre(ctx, query)
	if err != nil {
		return nil, err
	}
	if rej != nil {
		log.Warn("genre rejected", "reason", rej.Reason)
		criteria.Reject("genre", rej.Reason)
	} else {
		criteria.Genre = genre
	}

	viewing, rej, err := s.extractor.ViewingType(ctx, query)
	if err != nil {
		return nil, err
	}
	if rej != nil {
		log.Warn("viewing type rejected", "reason", rej.Reason)
		criteria.Reject("viewing_type", rej.Reason)
	} else {
		criteria.ViewingTypes = viewing
	}

	audience, rej, err := s.extractor.AudienceCategory(ctx, query)
	if err != nil {
		return nil, err
	}
	if rej != nil {
		log.Warn("audience category rejected", "reason", rej.Reason)
		criteria.Reject("audience_category", rej.Reason)
	} else {
		criteria.Audience = audience
	}

	tone, rej, err := s.extractor.Tone(ctx, query)
	if err != nil {
		return nil, err
	}
	if rej != nil {
		log.Warn("tone rejected", "reason", rej.Reason)
		criteria.Reject("tone", rej.Reason)
	} else {
		criteria.Tone = tone
	}

	items, err := s.catalog.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	res := s.cascade.Run(items, criteria)
	if !res.Satisfied() {
		log.Info("turn unsatisfiable", "stage", res.Unsat.Stage)
		turn.Unsatisfiable = res.Unsat
		return turn, nil
	}

	survivors := res.Items
	if len(survivors) > s.topK {
		survivors = survivors[:s.topK]
	}

	if criteria.Tone == nil {
		// No affective preference to rank against; survivors come back
		// in catalog order, unscored.
		turn.Ranked = &domain.RankedResult{Items: unranked(survivors)}
		return turn, nil
	}

	scored, err := s.itemTones(ctx, log, survivors)
	if err != nil {
		return nil, err
	}
	ranked := s.ranker.Rank(criteria.Tone.Value, scored)
	turn.Ranked = &ranked
	log.Info("turn ranked", "survivors", len(survivors), "ranked", len(ranked.Items))
	return turn, nil
}

// itemTones extracts an affective vector for each survivor's synopsis
// with a bounded worker pool, reassembling results in catalog order.
// Items whose tone the oracle rejects are dropped from ranking.
func (s *Service) itemTones(ctx context.Context, log *logger.Logger, items []domain.Item) ([]vad.ScoredItem, error) {
	results := make([]*vad.ScoredItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.toneConcurrency)
	for i, it := range items {
		g.Go(func() error {
			tone, ok, err := s.itemTone(gctx, it)
			if err != nil {
				return err
			}
			if !ok {
				log.Warn("item tone rejected, dropping from ranking", "item_id", it.ID, "title", it.Title)
				return nil
			}
			results[i] = &vad.ScoredItem{ID: it.ID, Title: it.Title, Tone: tone}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]vad.ScoredItem, 0, len(items))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Service) itemTone(ctx context.Context, it domain.Item) (domain.AffectiveVector, bool, error) {
	if it.Synopsis == "" {
		return domain.AffectiveVector{}, false, nil
	}
	key := toneCacheKey(it.Synopsis)
	if v, ok := s.cachedTone(ctx, key); ok {
		return v, true, nil
	}
	c, rej, err := s.extractor.Tone(ctx, it.Synopsis)
	if err != nil {
		return domain.AffectiveVector{}, false, err
	}
	if rej != nil {
		return domain.AffectiveVector{}, false, nil
	}
	s.storeTone(ctx, key, c.Value)
	return c.Value, true, nil
}

func (s *Service) cachedTone(ctx context.Context, key string) (domain.AffectiveVector, bool) {
	if s.cache == nil {
		return domain.AffectiveVector{}, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return domain.AffectiveVector{}, false
	}
	var v domain.AffectiveVector
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.AffectiveVector{}, false
	}
	return v, true
}

func (s *Service) storeTone(ctx context.Context, key string, v domain.AffectiveVector) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.toneCacheTTL).Err(); err != nil {
		s.log.Warn("tone cache write failed", "error", err)
	}
}

func toneCacheKey(synopsis string) string {
	sum := sha256.Sum256([]byte(synopsis))
	return "tone:" + hex.EncodeToString(sum[:])
}

func unranked(items []domain.Item) []domain.RankedItem {
	out := make([]domain.RankedItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.RankedItem{ID: it.ID, Title: it.Title})
	}
	return out
}
