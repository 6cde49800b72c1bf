package prompts

// Input carries the fields any template may reference. Missing fields
// render empty strings (templates use missingkey=zero).
type Input struct {
	// Text is the raw user request or an item synopsis.
	Text string
	// AllowedGenres is the catalog-derived genre vocabulary, rendered
	// into the genre system prompt.
	AllowedGenres string
}
