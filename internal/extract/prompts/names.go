package prompts

type PromptName string

const (
	PromptGenre            PromptName = "genre"
	PromptViewingType      PromptName = "viewing_type"
	PromptAudienceCategory PromptName = "audience_category"
	PromptTone             PromptName = "tone"
)
