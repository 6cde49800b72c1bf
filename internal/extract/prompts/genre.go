package prompts

import "strings"

// AllowedGenres is the closed, catalog-derived genre vocabulary. The
// oracle must pick exactly one of these labels.
var AllowedGenres = []string{
	"Documentaries", "Docuseries", "Reality TV",
	"International TV Shows", "British TV Shows", "Korean TV Shows",
	"Kids' TV", "Teen TV Shows", "Talk Shows", "Sports Series", "Science & Nature TV",
	"TV Dramas", "TV Mysteries", "TV Comedies", "TV Action & Adventure",
	"Children & Family Movies", "Independent Movies", "Classic Movies", "Anime Features",
	"LGBTQ Movies", "Horror Movies", "Thrillers", "Comedy", "Music & Musicals",
	"Cult Movies", "Spanish-Language", "Faith & Spirituality", "Sci-Fi & Fantasy",
}

func AllowedGenresCSV() string { return strings.Join(AllowedGenres, ", ") }

const genreSystem = `You are a movie/TV genre classifier.
Return JSON ONLY matching the response schema:
{"genre": "<one allowed label>", "confidence": <0.0-1.0>, "rationale": "<=240 chars, no spoilers"}

Allowed labels: {{.AllowedGenres}}

Rules:
- Select EXACTLY ONE primary label from the allowed list.
- Choose the label that best reflects the story driver and tone.
- If the request implies TV vs Movie, prefer the matching TV*/Movies label.
- Tie-breaks:
  - Non-fiction presentation: "Documentaries" or "Docuseries".
  - Horror vs Thriller: sustained fear/supernatural means "Horror Movies"; crime/tension-driven means "Thrillers".
  - Action or crime tension with set-pieces (car chases, shootouts, stunts): "TV Action & Adventure" or the closest action label available.
  - Family-friendly film preference: "Children & Family Movies".
  - Bingeable global series: "International TV Shows", or a regional variant like "British TV Shows" / "Korean TV Shows" if specified.
- If unclear, choose the broadest applicable label and lower confidence.
- Confidence is your probability that the chosen label matches the user's intent.
- Rationale: short, user-friendly, cite surface cues (tone, setting, plot driver).
- No extra keys, no commentary, output must be valid JSON.`

var genreShots = []Shot{
	{Role: "user", Content: "Gritty underworld vibe but I want wild car chases and shootouts."},
	{Role: "assistant", Content: `{"genre":"TV Action & Adventure","confidence":0.82,"rationale":"Emphasis on chases and firefights signals an action-driven experience."}`},

	{Role: "user", Content: "Detectives unravel a mafia conspiracy through patient investigation."},
	{Role: "assistant", Content: `{"genre":"Thrillers","confidence":0.86,"rationale":"Tension and criminal intrigue align with thriller conventions."}`},

	{Role: "user", Content: "An unseen presence stalks a group in an isolated cabin all night."},
	{Role: "assistant", Content: `{"genre":"Horror Movies","confidence":0.9,"rationale":"Sustained fear and predatory threat define horror."}`},

	{Role: "user", Content: "In-depth real-world whistleblower story with interviews and archival footage."},
	{Role: "assistant", Content: `{"genre":"Documentaries","confidence":0.92,"rationale":"Explicitly non-fiction presentation."}`},

	{Role: "user", Content: "Something uplifting the whole family can watch together this weekend."},
	{Role: "assistant", Content: `{"genre":"Children & Family Movies","confidence":0.88,"rationale":"Family-friendly movie preference is explicit."}`},

	{Role: "user", Content: "A bingeable international series about relationships and life transitions."},
	{Role: "assistant", Content: `{"genre":"International TV Shows","confidence":0.84,"rationale":"Bingeable series with international focus fits this label."}`},

	{Role: "user", Content: "I'm into dry humor from the UK, recommend a series."},
	{Role: "assistant", Content: `{"genre":"British TV Shows","confidence":0.85,"rationale":"Region-specific TV preference."}`},

	{Role: "user", Content: "Concert films or song-driven stories would be great."},
	{Role: "assistant", Content: `{"genre":"Music & Musicals","confidence":0.8,"rationale":"Music-centric content preference."}`},

	{Role: "user", Content: "Unscripted competitions and makeovers, please."},
	{Role: "assistant", Content: `{"genre":"Reality TV","confidence":0.87,"rationale":"Unscripted, competition/makeover cues indicate reality programming."}`},

	// Ambiguous request: broad hybrid label, lower confidence.
	{Role: "user", Content: "Surprise me with something intense and imaginative."},
	{Role: "assistant", Content: `{"genre":"Sci-Fi & Fantasy","confidence":0.6,"rationale":"Imaginative intensity suggests speculative elements; broad hybrid label chosen."}`},
}

func genreSpec() Spec {
	return Spec{
		Name:       PromptGenre,
		Version:    1,
		SchemaName: "genre_extraction",
		Schema: func() map[string]any {
			return StrictObject(map[string]any{
				"genre":      EnumSchema(AllowedGenres...),
				"confidence": NumberSchema(0, 1),
				"rationale":  StringSchema(240),
			})
		},
		System: genreSystem,
		User:   "{{.Text}}",
		Shots:  genreShots,
	}
}
