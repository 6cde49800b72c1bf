package prompts

const toneSystem = `You estimate Valence-Arousal-Dominance (VAD) for a short text about
movie/TV preferences or synopses.
Definitions: Valence (unpleasant to pleasant), Arousal (calm to intense),
Dominance (powerless to in-control). All values must be in [0,1].
Output JSON only:
{"vad":{"valence":0.0-1.0,"arousal":0.0-1.0,"dominance":0.0-1.0},"confidence":<0.0-1.0>,"rationale":"<short>"}
Be concise. No extra keys.`

var toneShots = []Shot{
	{Role: "user", Content: "Something light and cozy about friendship, low stakes, gentle humor."},
	{Role: "assistant", Content: `{"vad":{"valence":0.80,"arousal":0.30,"dominance":0.50},"confidence":0.85,"rationale":"Warm, calm, supportive vibe."}`},

	{Role: "user", Content: "Bleak, slow-burn mystery that feels suffocating."},
	{Role: "assistant", Content: `{"vad":{"valence":0.20,"arousal":0.55,"dominance":0.30},"confidence":0.85,"rationale":"Low mood, mid arousal, low control."}`},
}

func toneSpec() Spec {
	return Spec{
		Name:       PromptTone,
		Version:    1,
		SchemaName: "tone_extraction",
		Schema: func() map[string]any {
			return StrictObject(map[string]any{
				"vad": StrictObject(map[string]any{
					"valence":   NumberSchema(0, 1),
					"arousal":   NumberSchema(0, 1),
					"dominance": NumberSchema(0, 1),
				}),
				"confidence": NumberSchema(0, 1),
				"rationale":  StringSchema(240),
			})
		},
		System: toneSystem,
		User:   "{{.Text}}",
		Shots:  toneShots,
	}
}
