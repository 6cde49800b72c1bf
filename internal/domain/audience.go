package domain

// AudienceCategory is the maturity band inferred from a request.
type AudienceCategory string

const (
	AudienceChildren AudienceCategory = "CHILDREN"
	AudienceTeen     AudienceCategory = "TEEN"
	AudienceAdult    AudienceCategory = "ADULT"
	AudienceUnknown  AudienceCategory = "UNKNOWN"
)

// restrictiveness orders categories so conflicting cues can resolve to
// the most restrictive one (ADULT > TEEN > CHILDREN). UNKNOWN carries
// no restriction.
var restrictiveness = map[AudienceCategory]int{
	AudienceUnknown:  0,
	AudienceChildren: 1,
	AudienceTeen:     2,
	AudienceAdult:    3,
}

func ParseAudienceCategory(s string) AudienceCategory {
	switch AudienceCategory(s) {
	case AudienceChildren, AudienceTeen, AudienceAdult:
		return AudienceCategory(s)
	default:
		return AudienceUnknown
	}
}

// MostRestrictive returns the stricter of the two categories.
func MostRestrictive(a, b AudienceCategory) AudienceCategory {
	if restrictiveness[b] > restrictiveness[a] {
		return b
	}
	return a
}
