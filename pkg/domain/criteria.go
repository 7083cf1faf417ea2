package domain

import "time"

// CriteriaGroup is one rubric section of a job position.
// Groups list in ascending SortOrder; ties break by arrival (created_at).
type CriteriaGroup struct {
	Id            string
	JobPositionId string
	Label         string
	Description   string
	SortOrder     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedFlag   bool
}

func (g *CriteriaGroup) Equal(other *CriteriaGroup) bool {
	if (g == nil) || (other == nil) {
		return (g == nil) && (other == nil)
	}
	return g.Id == other.Id &&
		g.JobPositionId == other.JobPositionId &&
		g.Label == other.Label &&
		g.Description == other.Description &&
		g.SortOrder == other.SortOrder &&
		g.DeletedFlag == other.DeletedFlag
}

type CriteriaGroupPatch struct {
	Label       *string
	Description *string
	SortOrder   *int
}

// CriteriaItem is a single evaluated requirement inside a group.
//
// Items have no delete flag. Deactivated items are excluded from new
// scoring but historical interview details keep referring to them.
type CriteriaItem struct {
	Id                   string
	CriteriaGroupId      string
	Label                string
	Description          string
	BehaviorExamplesText string
	SortOrder            int
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (i *CriteriaItem) Equal(other *CriteriaItem) bool {
	if (i == nil) || (other == nil) {
		return (i == nil) && (other == nil)
	}
	return i.Id == other.Id &&
		i.CriteriaGroupId == other.CriteriaGroupId &&
		i.Label == other.Label &&
		i.Description == other.Description &&
		i.BehaviorExamplesText == other.BehaviorExamplesText &&
		i.SortOrder == other.SortOrder &&
		i.IsActive == other.IsActive
}

// CriteriaItemPatch allows moving an item to another group;
// no cross-group validation is performed.
type CriteriaItemPatch struct {
	CriteriaGroupId      *string
	Label                *string
	Description          *string
	BehaviorExamplesText *string
	SortOrder            *int
	IsActive             *bool
}

type NewCriteriaGroup struct {
	JobPositionId string
	Label         string
	Description   string
	SortOrder     int
}

type NewCriteriaItem struct {
	CriteriaGroupId      string
	Label                string
	Description          string
	BehaviorExamplesText string
	SortOrder            int
	IsActive             bool
}
