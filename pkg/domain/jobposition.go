package domain

import "time"

// JobPosition is an open position at a client company.
// Positions are never hard-deleted; closed ones turn IsActive off.
type JobPosition struct {
	Id          string
	CompanyId   string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *JobPosition) Equal(other *JobPosition) bool {
	if (p == nil) || (other == nil) {
		return (p == nil) && (other == nil)
	}
	return p.Id == other.Id &&
		p.CompanyId == other.CompanyId &&
		p.Name == other.Name &&
		p.Description == other.Description &&
		p.IsActive == other.IsActive
}

type JobPositionPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type NewJobPosition struct {
	CompanyId   string
	Name        string
	Description string
	IsActive    bool
}
