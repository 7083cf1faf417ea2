package domain

import "time"

// Company is a client company whose open positions we evaluate candidates for.
// Soft-deleted rows (DeletedFlag) are invisible to every query.
type Company struct {
	Id          string
	Name        string
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedFlag bool
}

func (c *Company) Equal(other *Company) bool {
	if (c == nil) || (other == nil) {
		return (c == nil) && (other == nil)
	}
	return c.Id == other.Id &&
		c.Name == other.Name &&
		c.Note == other.Note &&
		c.DeletedFlag == other.DeletedFlag
}

type CompanyPatch struct {
	Name *string
	Note *string
}

// NewCompany is the parameter of company creation. Id and timestamps are
// assigned by the row store.
type NewCompany struct {
	Name string
	Note string
}
