package prompts

const viewingTypeSystem = `You extract the desired viewing type. Output JSON only:
{"view_types":["Movie","TV Series","Miniseries"],"confidence":<0.0-1.0>,"rationale":"<short>"} or {"view_types":[],...}.

Rules:
- Case-insensitive matching.
- Normalize synonyms to exactly: "Movie", "TV Series", "Miniseries".
- If multiple types are mentioned, list them in order of mention.
- If both genres and type are present, still extract the type(s).
- If ambiguous ("movie or show"), include both.
- At most two types. No extra keys or commentary.

Synonyms (examples):
- movie/film/feature: "Movie"
- tv show/tv series/show/series/docuseries: "TV Series"
- miniseries/mini-series/limited series/limited: "Miniseries"`

var viewingTypeShots = []Shot{
	{Role: "user", Content: "I want a TV show to binge this weekend."},
	{Role: "assistant", Content: `{"view_types":["TV Series"],"confidence":0.93,"rationale":"Show to binge maps to TV Series."}`},

	{Role: "user", Content: "Any good limited series about true crime?"},
	{Role: "assistant", Content: `{"view_types":["Miniseries"],"confidence":0.95,"rationale":"Limited series is a miniseries."}`},

	{Role: "user", Content: "Looking for a movie tonight."},
	{Role: "assistant", Content: `{"view_types":["Movie"],"confidence":0.96,"rationale":"Explicit movie request."}`},

	{Role: "user", Content: "Either a movie or a show is fine."},
	{Role: "assistant", Content: `{"view_types":["Movie","TV Series"],"confidence":0.9,"rationale":"Both types allowed, movie mentioned first."}`},

	{Role: "user", Content: "I want to watch a crime fiction, TV series that has a strong romantic component."},
	{Role: "assistant", Content: `{"view_types":["TV Series"],"confidence":0.92,"rationale":"Series requested despite genre detail."}`},
}

func viewingTypeSpec() Spec {
	return Spec{
		Name:       PromptViewingType,
		Version:    1,
		SchemaName: "viewing_type_extraction",
		Schema: func() map[string]any {
			return StrictObject(map[string]any{
				"view_types": ArraySchema(EnumSchema("Movie", "TV Series", "Miniseries"), 2),
				"confidence": NumberSchema(0, 1),
				"rationale":  StringSchema(240),
			})
		},
		System: viewingTypeSystem,
		User:   "{{.Text}}",
		Shots:  viewingTypeShots,
	}
}
