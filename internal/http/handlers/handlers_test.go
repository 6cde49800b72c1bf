package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moodpick/moodpick-backend/internal/catalog"
	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/extract"
	"github.com/moodpick/moodpick-backend/internal/filter"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
	"github.com/moodpick/moodpick-backend/internal/platform/openai"
	"github.com/moodpick/moodpick-backend/internal/recommend"
)

type stubOracle struct {
	respond func(schemaName, user string) (map[string]any, error)
}

func (s *stubOracle) GenerateJSON(ctx context.Context, system string, shots []openai.Shot, user string, schemaName string, schema map[string]any) (map[string]any, error) {
	if s.respond == nil {
		return nil, errors.New("no oracle scripted")
	}
	return s.respond(schemaName, user)
}

func testRouter(t *testing.T, oracle openai.Client) (*gin.Engine, *catalog.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.CatalogRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := catalog.NewStore(db, log)
	svc := recommend.NewService(extract.New(oracle, log), store, filter.NewCascade(log), nil, log)

	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler().HealthCheck)
	api := r.Group("/api")
	api.POST("/recommendations", NewRecommendationHandler(svc).Recommend)
	api.POST("/catalog/import", NewCatalogHandler(store).Import)
	api.GET("/catalog/genres", NewCatalogHandler(store).Genres)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthcheck(t *testing.T) {
	r, _ := testRouter(t, &stubOracle{})
	w := doJSON(t, r, http.MethodGet, "/healthcheck", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestRecommendEmptyQueryIsBadRequest(t *testing.T) {
	r, _ := testRouter(t, &stubOracle{})
	w := doJSON(t, r, http.MethodPost, "/api/recommendations", `{"query":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "empty_query") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRecommendOracleFailureIsBadGateway(t *testing.T) {
	oracle := &stubOracle{respond: func(schemaName, user string) (map[string]any, error) {
		return nil, errors.New("connection refused")
	}}
	r, _ := testRouter(t, oracle)
	w := doJSON(t, r, http.MethodPost, "/api/recommendations", `{"query":"a fun movie"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "oracle_unavailable") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRecommendMalformedBody(t *testing.T) {
	r, _ := testRouter(t, &stubOracle{})
	w := doJSON(t, r, http.MethodPost, "/api/recommendations", `{"query":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCatalogImportAndGenres(t *testing.T) {
	r, _ := testRouter(t, &stubOracle{})

	csv := "type,title,listed_in,rating,description\nMovie,Funny One,Comedies,PG-13,A laugh.\nTV Show,Tense One,TV Dramas,TV-14,A watch.\n"
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/import", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", w.Code, w.Body.String())
	}
	var imported struct {
		Stats catalog.ImportStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &imported); err != nil {
		t.Fatalf("decode import response: %v", err)
	}
	if imported.Stats.Imported != 2 {
		t.Fatalf("stats = %+v", imported.Stats)
	}

	w = doJSON(t, r, http.MethodGet, "/api/catalog/genres", "")
	if w.Code != http.StatusOK {
		t.Fatalf("genres status = %d", w.Code)
	}
	var genres struct {
		Genres []string `json:"genres"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &genres); err != nil {
		t.Fatalf("decode genres response: %v", err)
	}
	if len(genres.Genres) == 0 || genres.Genres[0] != "Comedies" {
		t.Fatalf("genres = %v", genres.Genres)
	}
}

func TestRecommendEndToEnd(t *testing.T) {
	oracle := &stubOracle{respond: func(schemaName, user string) (map[string]any, error) {
		switch schemaName {
		case "genre_extraction":
			return map[string]any{"genre": "TV Comedies", "confidence": 0.9, "rationale": "comedy cues"}, nil
		case "viewing_type_extraction":
			return map[string]any{"view_types": []any{"Movie"}, "confidence": 0.9, "rationale": ""}, nil
		case "audience_category_extraction":
			return map[string]any{"category": "TEEN", "cues": []any{}, "confidence": 0.9, "rationale": ""}, nil
		case "tone_extraction":
			return map[string]any{
				"vad":        map[string]any{"valence": 0.8, "arousal": 0.4, "dominance": 0.5},
				"confidence": 0.9,
				"rationale":  "light and upbeat",
			}, nil
		}
		return nil, errors.New("unexpected schema " + schemaName)
	}}
	r, store := testRouter(t, oracle)

	csv := "type,title,listed_in,rating,description\nMovie,Funny One,Comedies,PG-13,A laugh riot.\n"
	if _, err := store.ImportCSV(context.Background(), strings.NewReader(csv)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/recommendations", `{"query":"a light comedy movie for teens"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Turn recommend.Turn `json:"turn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Turn.Unsatisfiable != nil {
		t.Fatalf("unexpected unsatisfiable: %+v", resp.Turn.Unsatisfiable)
	}
	if resp.Turn.Ranked == nil || len(resp.Turn.Ranked.Items) != 1 {
		t.Fatalf("ranked = %+v", resp.Turn.Ranked)
	}
	if resp.Turn.Ranked.Items[0].Title != "Funny One" {
		t.Fatalf("top item = %q", resp.Turn.Ranked.Items[0].Title)
	}
}
