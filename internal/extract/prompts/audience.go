package prompts

const audienceSystem = `You classify the audience maturity band a viewer is asking for.
Output JSON only:
{"category":"CHILDREN"|"TEEN"|"ADULT"|"UNKNOWN","cues":[...same values...],"confidence":<0.0-1.0>,"rationale":"<short>"}

Rules:
- "category" is your single best answer.
- "cues" lists EVERY maturity band the text signals, one entry per
  distinct cue, in order of mention. Include the chosen category.
- When cues conflict, pick the MOST RESTRICTIVE as the category
  (ADULT over TEEN over CHILDREN) and keep all cues listed.
- "for the kids", "family movie night": CHILDREN.
- "teen", "high school", "coming of age": TEEN.
- "gritty", "graphic", "adult", "mature": ADULT.
- No maturity signal at all: UNKNOWN with empty cues.
- No extra keys or commentary.`

var audienceShots = []Shot{
	{Role: "user", Content: "Something my eight year old can watch."},
	{Role: "assistant", Content: `{"category":"CHILDREN","cues":["CHILDREN"],"confidence":0.94,"rationale":"Young child named explicitly."}`},

	{Role: "user", Content: "A cozy teen comedy series."},
	{Role: "assistant", Content: `{"category":"TEEN","cues":["TEEN"],"confidence":0.9,"rationale":"Teen audience stated."}`},

	{Role: "user", Content: "Gritty and graphic, definitely not for kids."},
	{Role: "assistant", Content: `{"category":"ADULT","cues":["ADULT","CHILDREN"],"confidence":0.88,"rationale":"Graphic content cue outweighs the kids mention."}`},

	// Conflicting cues resolve to the most restrictive band.
	{Role: "user", Content: "A high-school drama, but with really graphic violence."},
	{Role: "assistant", Content: `{"category":"ADULT","cues":["TEEN","ADULT"],"confidence":0.82,"rationale":"Graphic violence is the stricter cue."}`},

	{Role: "user", Content: "Just a good mystery, whatever you have."},
	{Role: "assistant", Content: `{"category":"UNKNOWN","cues":[],"confidence":0.7,"rationale":"No maturity signal in the request."}`},
}

func audienceCategorySpec() Spec {
	return Spec{
		Name:       PromptAudienceCategory,
		Version:    1,
		SchemaName: "audience_category_extraction",
		Schema: func() map[string]any {
			cat := EnumSchema("CHILDREN", "TEEN", "ADULT", "UNKNOWN")
			return StrictObject(map[string]any{
				"category":   cat,
				"cues":       ArraySchema(cat, 0),
				"confidence": NumberSchema(0, 1),
				"rationale":  StringSchema(240),
			})
		},
		System: audienceSystem,
		User:   "{{.Text}}",
		Shots:  audienceShots,
	}
}
