package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/extract"
	"github.com/moodpick/moodpick-backend/internal/filter"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
	"github.com/moodpick/moodpick-backend/internal/platform/openai"
)

type scriptedOracle struct {
	respond func(schemaName, user string) (map[string]any, error)
}

func (s *scriptedOracle) GenerateJSON(ctx context.Context, system string, shots []openai.Shot, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	return s.respond(schemaName, user)
}

type stubCatalog struct {
	items []domain.Item
	err   error
}

func (s *stubCatalog) Items(ctx context.Context) ([]domain.Item, error) {
	return s.items, s.err
}

func testService(t *testing.T, oracle openai.Client, catalog CatalogSource) *Service {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewService(extract.New(oracle, log), catalog, filter.NewCascade(log), nil, log)
}

func comedyCatalog() []domain.Item {
	return []domain.Item{
		{ID: uuid.New(), Title: "Warm One", Type: domain.TypeMovie, Genres: []string{"Comedies"}, Rating: "PG-13", Synopsis: "A gentle feel-good road trip."},
		{ID: uuid.New(), Title: "Frantic One", Type: domain.TypeMovie, Genres: []string{"Comedies"}, Rating: "PG-13", Synopsis: "A chaotic heist goes sideways."},
	}
}

// scriptAll answers every extraction schema; item tone depends on the
// synopsis text so the two catalog items land on different vectors.
func scriptAll(userTone, warmTone, franticTone map[string]any) func(string, string) (map[string]any, error) {
	return func(schemaName, user string) (map[string]any, error) {
		switch schemaName {
		case "genre_extraction":
			return map[string]any{"genre": "TV Comedies", "confidence": 0.9, "rationale": "comedy cues"}, nil
		case "viewing_type_extraction":
			return map[string]any{"view_types": []any{"Movie"}, "confidence": 0.9, "rationale": "movie cues"}, nil
		case "audience_category_extraction":
			return map[string]any{"category": "TEEN", "cues": []any{}, "confidence": 0.9, "rationale": "teen cues"}, nil
		case "tone_extraction":
			switch {
			case strings.Contains(user, "feel-good"):
				return warmTone, nil
			case strings.Contains(user, "chaotic"):
				return franticTone, nil
			default:
				return userTone, nil
			}
		}
		return nil, errors.New("unexpected schema " + schemaName)
	}
}

func toneResponse(v, a, d float64) map[string]any {
	return map[string]any{
		"vad":        map[string]any{"valence": v, "arousal": a, "dominance": d},
		"confidence": 0.9,
		"rationale":  "tone cues",
	}
}

func TestRecommendRanksCloserToneFirst(t *testing.T) {
	oracle := &scriptedOracle{respond: scriptAll(
		toneResponse(0.85, 0.35, 0.6),
		toneResponse(0.9, 0.3, 0.55),
		toneResponse(0.1, 0.9, 0.2),
	)}
	svc := testService(t, oracle, &stubCatalog{items: comedyCatalog()})

	turn, err := svc.Recommend(context.Background(), "a calm upbeat comedy movie for teens")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if turn.Unsatisfiable != nil {
		t.Fatalf("unexpected unsatisfiable: %+v", turn.Unsatisfiable)
	}
	if turn.Ranked == nil || len(turn.Ranked.Items) != 2 {
		t.Fatalf("ranked = %+v, want two items", turn.Ranked)
	}
	if turn.Ranked.Items[0].Title != "Warm One" {
		t.Fatalf("order = %q, %q; want the closer tone first",
			turn.Ranked.Items[0].Title, turn.Ranked.Items[1].Title)
	}
	if turn.Ranked.Items[0].Score < turn.Ranked.Items[1].Score {
		t.Fatal("scores are not non-increasing")
	}
	if turn.Criteria.Genre == nil || turn.Criteria.Tone == nil {
		t.Fatalf("criteria snapshot incomplete: %+v", turn.Criteria)
	}
	if turn.Criteria.Genre.Value != "TV Comedies" {
		t.Fatalf("accepted genre = %q", turn.Criteria.Genre.Value)
	}
	if len(turn.Criteria.Rejections) != 0 {
		t.Fatalf("unexpected rejections: %+v", turn.Criteria.Rejections)
	}
}

func TestRecommendUnsatisfiableIsNotAnError(t *testing.T) {
	oracle := &scriptedOracle{respond: func(schemaName, user string) (map[string]any, error) {
		switch schemaName {
		case "genre_extraction":
			return map[string]any{"genre": "Anime Features", "confidence": 0.9, "rationale": "anime cues"}, nil
		case "viewing_type_extraction":
			return map[string]any{"view_types": []any{"TV Series"}, "confidence": 0.9, "rationale": ""}, nil
		case "audience_category_extraction":
			return map[string]any{"category": "TEEN", "cues": []any{}, "confidence": 0.9, "rationale": ""}, nil
		case "tone_extraction":
			return toneResponse(0.5, 0.5, 0.5), nil
		}
		return nil, errors.New("unexpected schema " + schemaName)
	}}
	svc := testService(t, oracle, &stubCatalog{items: comedyCatalog()})

	turn, err := svc.Recommend(context.Background(), "an anime series")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if turn.Unsatisfiable == nil {
		t.Fatal("expected unsatisfiable outcome")
	}
	if turn.Unsatisfiable.Stage != filter.StageGenre {
		t.Fatalf("stage = %q", turn.Unsatisfiable.Stage)
	}
	if turn.Ranked != nil {
		t.Fatal("unsatisfiable turn must not carry a ranking")
	}
}

func TestRecommendEmptyQuery(t *testing.T) {
	svc := testService(t, &scriptedOracle{}, &stubCatalog{})
	if _, err := svc.Recommend(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestRecommendOracleFailureFailsTurn(t *testing.T) {
	oracle := &scriptedOracle{respond: func(schemaName, user string) (map[string]any, error) {
		return nil, errors.New("connection refused")
	}}
	svc := testService(t, oracle, &stubCatalog{items: comedyCatalog()})

	_, err := svc.Recommend(context.Background(), "anything funny")
	if !errors.Is(err, domain.ErrOracleUnavailable) {
		t.Fatalf("err = %v, want ErrOracleUnavailable", err)
	}
}

func TestRecommendContinuesPastRejections(t *testing.T) {
	oracle := &scriptedOracle{respond: func(schemaName, user string) (map[string]any, error) {
		switch schemaName {
		case "genre_extraction":
			return map[string]any{"genre": "TV Comedies", "confidence": 0.4, "rationale": "weak cues"}, nil
		case "viewing_type_extraction":
			return map[string]any{"view_types": []any{"Movie"}, "confidence": 0.9, "rationale": ""}, nil
		case "audience_category_extraction":
			return map[string]any{"category": "UNKNOWN", "cues": []any{}, "confidence": 0.9, "rationale": ""}, nil
		case "tone_extraction":
			return toneResponse(0.5, 0.5, 0.5), nil
		}
		return nil, errors.New("unexpected schema " + schemaName)
	}}
	svc := testService(t, oracle, &stubCatalog{items: comedyCatalog()})

	turn, err := svc.Recommend(context.Background(), "something, anything")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if turn.Criteria.Genre != nil || turn.Criteria.Audience != nil {
		t.Fatalf("rejected fields must stay absent: %+v", turn.Criteria)
	}
	if len(turn.Criteria.Rejections) != 2 {
		t.Fatalf("rejections = %+v, want genre and audience", turn.Criteria.Rejections)
	}
	if turn.Unsatisfiable != nil {
		t.Fatalf("remaining criteria still match the catalog: %+v", turn.Unsatisfiable)
	}
	if turn.Ranked == nil || len(turn.Ranked.Items) != 2 {
		t.Fatalf("ranked = %+v", turn.Ranked)
	}
}

func TestRecommendWithoutToneReturnsCatalogOrder(t *testing.T) {
	oracle := &scriptedOracle{respond: func(schemaName, user string) (map[string]any, error) {
		switch schemaName {
		case "genre_extraction":
			return map[string]any{"genre": "TV Comedies", "confidence": 0.9, "rationale": ""}, nil
		case "viewing_type_extraction":
			return map[string]any{"view_types": []any{}, "confidence": 0.9, "rationale": ""}, nil
		case "audience_category_extraction":
			return map[string]any{"category": "TEEN", "cues": []any{}, "confidence": 0.9, "rationale": ""}, nil
		case "tone_extraction":
			return map[string]any{"confidence": 0.9, "rationale": "no vad"}, nil
		}
		return nil, errors.New("unexpected schema " + schemaName)
	}}
	svc := testService(t, oracle, &stubCatalog{items: comedyCatalog()})

	turn, err := svc.Recommend(context.Background(), "a comedy please")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if turn.Ranked == nil || len(turn.Ranked.Items) != 2 {
		t.Fatalf("ranked = %+v", turn.Ranked)
	}
	if turn.Ranked.Items[0].Title != "Warm One" || turn.Ranked.Items[1].Title != "Frantic One" {
		t.Fatal("unscored survivors must keep catalog order")
	}
	if turn.Ranked.Items[0].Score != 0 {
		t.Fatalf("unscored survivors carry score %v", turn.Ranked.Items[0].Score)
	}
}

func TestRecommendTopKBoundsOracleCalls(t *testing.T) {
	t.Setenv("RECOMMEND_TOP_K", "1")

	toneCalls := 0
	oracle := &scriptedOracle{respond: func(schemaName, user string) (map[string]any, error) {
		switch schemaName {
		case "genre_extraction":
			return map[string]any{"genre": "TV Comedies", "confidence": 0.9, "rationale": ""}, nil
		case "viewing_type_extraction":
			return map[string]any{"view_types": []any{"Movie"}, "confidence": 0.9, "rationale": ""}, nil
		case "audience_category_extraction":
			return map[string]any{"category": "TEEN", "cues": []any{}, "confidence": 0.9, "rationale": ""}, nil
		case "tone_extraction":
			toneCalls++
			return toneResponse(0.5, 0.5, 0.5), nil
		}
		return nil, errors.New("unexpected schema " + schemaName)
	}}
	svc := testService(t, oracle, &stubCatalog{items: comedyCatalog()})

	turn, err := svc.Recommend(context.Background(), "a teen comedy movie")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(turn.Ranked.Items) != 1 {
		t.Fatalf("ranked = %+v, want the single top item", turn.Ranked)
	}
	// one call for the query plus one per surviving item
	if toneCalls != 2 {
		t.Fatalf("tone calls = %d, want 2", toneCalls)
	}
}
