package model

// ProfileID identifies one of the three persona profiles.
type ProfileID string

const (
	ProfileExcelEx        ProfileID = "Excel-ex"
	ProfileDashboardDater ProfileID = "Dashboard Dater"
	ProfileBIHunter       ProfileID = "BI-hunter"
)

// ProfileOrder is the canonical profile ordering. It is also the
// tie-break order when tally scores are equal.
var ProfileOrder = []ProfileID{
	ProfileExcelEx,
	ProfileDashboardDater,
	ProfileBIHunter,
}

// Dilemma is a single swipeable statement. Dilemmas are static
// configuration data; IDs define the presentation order ascending.
type Dilemma struct {
	ID              int         `json:"id"`
	Text            string      `json:"text"`
	Persona         string      `json:"persona"` // display name on the card
	Image           string      `json:"image"`   // path relative to the asset base URL
	LikeProfile     ProfileID   `json:"likeProfile"`
	DislikeProfiles []ProfileID `json:"dislikeProfiles"`
}

// Profile is the static descriptive content for one persona.
type Profile struct {
	ID          ProfileID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tip         string    `json:"tip"`
}

// Decision is the agree/disagree outcome of one dilemma. Exactly one
// decision is produced per dilemma, in dilemma order.
type Decision struct {
	DilemmaID int  `json:"dilemmaId"`
	Agreed    bool `json:"agreed"`
}

// Tally is the running score per profile. Values only ever increase.
type Tally map[ProfileID]float64

// NewTally returns a tally with every profile at zero.
func NewTally() Tally {
	t := make(Tally, len(ProfileOrder))
	for _, p := range ProfileOrder {
		t[p] = 0
	}
	return t
}

// Clone returns an independent copy of the tally.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for p, v := range t {
		out[p] = v
	}
	return out
}
