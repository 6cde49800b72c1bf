// Package extract maps free text to typed, confidence-scored criteria
// by calling the classification oracle with fixed schemas and worked
// examples.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/moodpick/moodpick-backend/internal/domain"
	"github.com/moodpick/moodpick-backend/internal/extract/prompts"
	"github.com/moodpick/moodpick-backend/internal/platform/logger"
	"github.com/moodpick/moodpick-backend/internal/platform/openai"
)

// ConfidenceThreshold is the minimum confidence at which an extracted
// genre or audience category is applied. A result at exactly the
// threshold is accepted. This is the single most load-bearing tunable
// in the pipeline; keep it here and nowhere else.
const ConfidenceThreshold = 0.6

// Rejection explains why an extraction produced no usable criterion.
// It is an ordinary outcome, not an error.
type Rejection struct {
	Reason string
}

type Extractor struct {
	oracle openai.Client
	log    *logger.Logger
}

func New(oracle openai.Client, baseLog *logger.Logger) *Extractor {
	prompts.RegisterAll()
	return &Extractor{
		oracle: oracle,
		log:    baseLog.With("service", "Extractor"),
	}
}

func (e *Extractor) generate(ctx context.Context, name prompts.PromptName, in prompts.Input) (map[string]any, error) {
	p, err := prompts.Build(name, in)
	if err != nil {
		return nil, err
	}

	shots := make([]openai.Shot, 0, len(p.Shots))
	for _, s := range p.Shots {
		shots = append(shots, openai.Shot{Role: s.Role, Content: s.Content})
	}

	e.log.Debug("Oracle extraction call",
		"prompt", p.Name,
		"prompt_fingerprint", p.Fingerprint(),
	)

	obj, err := e.oracle.GenerateJSON(ctx, p.System, shots, p.User, p.SchemaName, p.Schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrOracleUnavailable, p.Name, err)
	}
	return obj, nil
}

// Genre extracts exactly one label from the fixed vocabulary. Results
// below the confidence threshold come back as a Rejection.
func (e *Extractor) Genre(ctx context.Context, text string) (*domain.Criterion[string], *Rejection, error) {
	obj, err := e.generate(ctx, prompts.PromptGenre, prompts.Input{
		Text:          text,
		AllowedGenres: prompts.AllowedGenresCSV(),
	})
	if err != nil {
		return nil, nil, err
	}

	label := strings.TrimSpace(str(obj, "genre"))
	conf, ok := num(obj, "confidence")
	rationale := str(obj, "rationale")
	if label == "" || !ok {
		return nil, &Rejection{Reason: "oracle returned no usable genre"}, nil
	}
	if !allowedGenre(label) {
		return nil, &Rejection{Reason: fmt.Sprintf("genre %q is not in the catalog vocabulary", label)}, nil
	}
	if conf < ConfidenceThreshold {
		return nil, &Rejection{Reason: fmt.Sprintf("genre %q below confidence threshold (%.2f < %.2f)", label, conf, ConfidenceThreshold)}, nil
	}

	c := domain.NewCriterion(label, conf, rationale)
	return &c, nil, nil
}

// ViewingType extracts zero, one or two canonical labels in order of
// first mention. No confidence threshold applies; an empty list means
// the attribute is absent.
func (e *Extractor) ViewingType(ctx context.Context, text string) (*domain.Criterion[[]string], *Rejection, error) {
	obj, err := e.generate(ctx, prompts.PromptViewingType, prompts.Input{Text: text})
	if err != nil {
		return nil, nil, err
	}

	raw, _ := obj["view_types"].([]any)
	labels := make([]string, 0, 2)
	seen := map[string]bool{}
	for _, v := range raw {
		s, _ := v.(string)
		s = canonicalViewingType(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		labels = append(labels, s)
		if len(labels) == 2 {
			break
		}
	}
	if len(labels) == 0 {
		return nil, &Rejection{Reason: "no viewing type mentioned"}, nil
	}

	conf, ok := num(obj, "confidence")
	if !ok {
		conf = 1
	}
	c := domain.NewCriterion(labels, conf, str(obj, "rationale"))
	return &c, nil, nil
}

// AudienceCategory extracts the maturity band. When the oracle's cues
// conflict, the most restrictive band wins regardless of the oracle's
// chosen category; that ordering is enforced here, not trusted.
func (e *Extractor) AudienceCategory(ctx context.Context, text string) (*domain.Criterion[domain.AudienceCategory], *Rejection, error) {
	obj, err := e.generate(ctx, prompts.PromptAudienceCategory, prompts.Input{Text: text})
	if err != nil {
		return nil, nil, err
	}

	category := domain.ParseAudienceCategory(str(obj, "category"))
	if cues, ok := obj["cues"].([]any); ok {
		for _, cue := range cues {
			s, _ := cue.(string)
			category = domain.MostRestrictive(category, domain.ParseAudienceCategory(s))
		}
	}
	if category == domain.AudienceUnknown {
		return nil, &Rejection{Reason: "no audience maturity signal in the request"}, nil
	}

	conf, ok := num(obj, "confidence")
	if !ok {
		return nil, &Rejection{Reason: "oracle returned no confidence for audience category"}, nil
	}
	if conf < ConfidenceThreshold {
		return nil, &Rejection{Reason: fmt.Sprintf("audience category %s below confidence threshold (%.2f < %.2f)", category, conf, ConfidenceThreshold)}, nil
	}

	c := domain.NewCriterion(category, conf, str(obj, "rationale"))
	return &c, nil, nil
}

// Tone extracts an affective vector. A missing axis or any value
// outside [0,1] rejects the result; vectors are never clamped at this
// boundary. The oracle's rationale is reported verbatim.
func (e *Extractor) Tone(ctx context.Context, text string) (*domain.Criterion[domain.AffectiveVector], *Rejection, error) {
	obj, err := e.generate(ctx, prompts.PromptTone, prompts.Input{Text: text})
	if err != nil {
		return nil, nil, err
	}

	vadObj, ok := obj["vad"].(map[string]any)
	if !ok {
		return nil, &Rejection{Reason: "oracle response missing vad object"}, nil
	}

	axes := make(map[string]float64, 3)
	for _, axis := range []string{"valence", "arousal", "dominance"} {
		v, ok := num(vadObj, axis)
		if !ok {
			return nil, &Rejection{Reason: fmt.Sprintf("oracle response missing %s axis", axis)}, nil
		}
		axes[axis] = v
	}

	vec, err := domain.NewAffectiveVector(axes["valence"], axes["arousal"], axes["dominance"])
	if err != nil {
		return nil, &Rejection{Reason: err.Error()}, nil
	}

	conf, ok := num(obj, "confidence")
	if !ok {
		conf = 1
	}
	c := domain.NewCriterion(vec, conf, str(obj, "rationale"))
	return &c, nil, nil
}

func allowedGenre(label string) bool {
	for _, g := range prompts.AllowedGenres {
		if g == label {
			return true
		}
	}
	return false
}

func canonicalViewingType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return domain.TypeMovie
	case "tv series":
		return domain.TypeTVSeries
	case "miniseries":
		return domain.TypeMiniseries
	default:
		return ""
	}
}

func str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func num(obj map[string]any, key string) (float64, bool) {
	switch v := obj[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
