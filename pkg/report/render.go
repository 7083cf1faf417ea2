package report

import (
	"fmt"
	"strings"

	"github.com/bandq-jp/hirelog/pkg/domain"
)

// ReportInput carries everything a renderer needs, already fetched
// and ordered. CompanyName and PositionName are empty when the
// referenced row is gone; renderers fall back to "-".
type ReportInput struct {
	Interview    *domain.Interview
	Candidate    *domain.Candidate
	CompanyName  string
	PositionName string
	Scores       []GroupScore
	Questions    []*domain.InterviewQuestionResponse
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orEmptyNote(s string) string {
	if s == "" {
		return "(未入力)"
	}
	return s
}

// ClientReport renders the markdown report shown to the client company.
//
// Only external-safe fields appear: external comments, highlighted Q&A
// without hypotheses, external Will and attract texts. The output is
// byte-deterministic for a given input.
func ClientReport(in ReportInput) string {
	if in.Interview == nil || in.Candidate == nil {
		return ""
	}

	lines := []string{
		"# 0.5次面談 評価レポート（クライアント提出用）",
		"",
		"## 候補者情報",
		fmt.Sprintf("- **氏名**: %s", in.Candidate.Name),
		fmt.Sprintf("- **応募企業**: %s", orDash(in.CompanyName)),
		fmt.Sprintf("- **応募ポジション**: %s", orDash(in.PositionName)),
		fmt.Sprintf("- **面談日**: %s", in.Interview.InterviewDate.Format("2006-01-02")),
		"",
		"## 総合評価",
		orEmptyNote(in.Interview.OverallCommentExternal),
		"",
		"## 定性要件別評価",
	}

	for _, gs := range in.Scores {
		lines = append(lines, fmt.Sprintf("\n### %s", gs.Group.Label))
		if gs.Group.Description != "" {
			lines = append(lines, fmt.Sprintf("_%s_", gs.Group.Description))
		}
		for _, is := range gs.Items {
			lines = append(lines, fmt.Sprintf("- **%s**: %s", is.Item.Label, is.Symbol))
			if is.Scored && is.CommentExternal != "" {
				lines = append(lines, fmt.Sprintf("  - %s", is.CommentExternal))
			}
		}
	}

	highlighted := []*domain.InterviewQuestionResponse{}
	for _, q := range in.Questions {
		if q.IsHighlight {
			highlighted = append(highlighted, q)
		}
	}
	if 0 < len(highlighted) {
		lines = append(lines, "\n## 主な質問と回答")
		for _, q := range highlighted {
			lines = append(lines, fmt.Sprintf("\n**Q: %s**", q.QuestionText))
			if q.AnswerSummary != "" {
				lines = append(lines, fmt.Sprintf("A: %s", q.AnswerSummary))
			}
		}
	}

	if in.Interview.WillTextExternal != "" {
		lines = append(lines, "\n## Will（志向性）", in.Interview.WillTextExternal)
	}

	if in.Interview.AttractTextExternal != "" {
		lines = append(lines, "\n## アトラクトポイント", in.Interview.AttractTextExternal)
	}

	return strings.Join(lines, "\n")
}

// AgentReport renders the markdown feedback returned to the
// referring agent. It discloses the pass/fail outcome and the
// requirements the candidate fell short on, nothing internal.
func AgentReport(in ReportInput) string {
	if in.Interview == nil || in.Candidate == nil {
		return ""
	}

	result := "見送り"
	if in.Candidate.Stage05Result == domain.StagePassed {
		result = "通過"
	}

	lines := []string{
		"# 0.5次面談 フィードバック（エージェント向け）",
		"",
		"## 候補者情報",
		fmt.Sprintf("- **氏名**: %s", in.Candidate.Name),
		fmt.Sprintf("- **応募企業**: %s", orDash(in.CompanyName)),
		fmt.Sprintf("- **応募ポジション**: %s", orDash(in.PositionName)),
		fmt.Sprintf("- **面談日**: %s", in.Interview.InterviewDate.Format("2006-01-02")),
		fmt.Sprintf("- **結果**: %s", result),
		"",
		"## 総合所感",
		orEmptyNote(in.Interview.OverallCommentExternal),
	}

	gaps := Gaps(in.Scores)
	if 0 < len(gaps) {
		lines = append(lines, "\n## ギャップのあった要件")
		for _, gap := range gaps {
			lines = append(lines, fmt.Sprintf("- **%s / %s**: %s", gap.GroupLabel, gap.ItemLabel, gap.Symbol))
			if gap.Comment != "" {
				lines = append(lines, fmt.Sprintf("  - %s", gap.Comment))
			}
		}
	}

	lines = append(
		lines,
		"\n## 今後のご紹介について",
		"上記の要件を満たす候補者様のご紹介をお待ちしております。",
	)

	return strings.Join(lines, "\n")
}
