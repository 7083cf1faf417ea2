package domain

import "time"

// Agent is a recruiting agency contact who introduces candidates.
type Agent struct {
	Id           string
	CompanyName  string
	ContactName  string
	ContactEmail string
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedFlag  bool
}

func (a *Agent) Equal(other *Agent) bool {
	if (a == nil) || (other == nil) {
		return (a == nil) && (other == nil)
	}
	return a.Id == other.Id &&
		a.CompanyName == other.CompanyName &&
		a.ContactName == other.ContactName &&
		a.ContactEmail == other.ContactEmail &&
		a.Note == other.Note &&
		a.DeletedFlag == other.DeletedFlag
}

type AgentPatch struct {
	CompanyName  *string
	ContactName  *string
	ContactEmail *string
	Note         *string
}

// AgentStats is the per-agent slice of the recruiting funnel.
// Rates are percentages rounded to one decimal, 0 when the agent
// has no referrals.
type AgentStats struct {
	AgentId         string
	CompanyName     string
	ContactName     string
	ReferralCount   int
	Stage05PassRate float64
	FinalOfferRate  float64
	MismatchRate    float64
}

type NewAgent struct {
	CompanyName  string
	ContactName  string
	ContactEmail string
	Note         string
}
