package domain

// CriteriaSet is the per-turn record of accepted criteria. One instance
// per in-flight turn, built strictly sequentially by the orchestrator
// and never shared across turns. A nil field means the attribute was
// not extracted (or was rejected below the acceptance threshold).
type CriteriaSet struct {
	Genre        *Criterion[string]           `json:"genre,omitempty"`
	ViewingTypes *Criterion[[]string]         `json:"viewing_types,omitempty"`
	Audience     *Criterion[AudienceCategory] `json:"audience,omitempty"`
	Tone         *Criterion[AffectiveVector]  `json:"tone,omitempty"`

	// Rejections records why a field stayed absent, for display.
	Rejections []Rejection `json:"rejections,omitempty"`
}

// Rejection explains a criterion that was extracted but not applied.
type Rejection struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (c *CriteriaSet) Reject(field, reason string) {
	c.Rejections = append(c.Rejections, Rejection{Field: field, Reason: reason})
}
