package report

import (
	"github.com/bandq-jp/hirelog/pkg/domain"
)

// ItemScore is one criteria item joined with its scored detail, if any.
// Scored is false when the interview has no detail for the item; Symbol
// is "-" then.
type ItemScore struct {
	Item            *domain.CriteriaItem
	Scored          bool
	ScoreValue      int
	Symbol          string
	CommentExternal string
	CommentInternal string
}

// GroupScore is one criteria group with its items in rubric order.
type GroupScore struct {
	Group *domain.CriteriaGroup
	Items []ItemScore
}

// Aggregate left-joins interview details onto the position's rubric.
//
// Groups and the per-group item lists must already be in rubric order;
// the output preserves it. Every item appears exactly once whether or
// not it was scored. When the same item occurs more than once in
// details, the last one wins.
func Aggregate(
	groups []*domain.CriteriaGroup,
	itemsByGroup map[string][]*domain.CriteriaItem,
	details []*domain.InterviewDetail,
) []GroupScore {
	byItem := map[string]*domain.InterviewDetail{}
	for _, d := range details {
		byItem[d.CriteriaItemId] = d
	}

	scores := []GroupScore{}
	for _, g := range groups {
		gs := GroupScore{Group: g, Items: []ItemScore{}}
		for _, item := range itemsByGroup[g.Id] {
			is := ItemScore{Item: item, Symbol: domain.ScoreNone}
			if d, ok := byItem[item.Id]; ok {
				is.Scored = true
				is.ScoreValue = d.ScoreValue
				is.Symbol = domain.ScoreSymbol(d.ScoreValue)
				is.CommentExternal = d.CommentExternal
				is.CommentInternal = d.CommentInternal
			}
			gs.Items = append(gs.Items, is)
		}
		scores = append(scores, gs)
	}
	return scores
}

// GapItem is a scored requirement the candidate fell short on.
type GapItem struct {
	GroupLabel string
	ItemLabel  string
	Symbol     string
	Comment    string // external comment only
}

// Gaps selects scored items with a score of 2 or lower,
// in group-then-item order.
func Gaps(scores []GroupScore) []GapItem {
	gaps := []GapItem{}
	for _, gs := range scores {
		for _, is := range gs.Items {
			if !is.Scored || 2 < is.ScoreValue {
				continue
			}
			gaps = append(gaps, GapItem{
				GroupLabel: gs.Group.Label,
				ItemLabel:  is.Item.Label,
				Symbol:     is.Symbol,
				Comment:    is.CommentExternal,
			})
		}
	}
	return gaps
}
