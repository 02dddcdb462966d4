package model

// StaticCrewID is the reserved sentinel crew id used for externally-fixed
// assignments. It is excluded from fairness, workload, and preference terms.
const StaticCrewID = 99

// JuryTeam is a roster entity that can be assigned to officiate a match.
type JuryTeam struct {
	ID               int     `json:"id" validate:"required"`
	Name             string  `json:"name" validate:"required,min=1,max=100"`
	Active           bool    `json:"active"`
	DedicatedToTeam  *string `json:"dedicated_to_team,omitempty"`
	CapacityWeight   float64 `json:"capacity_weight" validate:"min=0"`
}

// IsStatic reports whether this team is the reserved STATIC sentinel crew.
func (t JuryTeam) IsStatic() bool {
	return t.ID == StaticCrewID
}
