package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bandq-jp/hirelog/pkg/domain"
	"github.com/bandq-jp/hirelog/pkg/report"
)

func fullInput() report.ReportInput {
	groupA := &domain.CriteriaGroup{Id: "group-a", Label: "論理性", Description: "思考の筋道"}
	groupB := &domain.CriteriaGroup{Id: "group-b", Label: "主体性"}
	itemA1 := &domain.CriteriaItem{Id: "item-a1", Label: "構造化"}
	itemA2 := &domain.CriteriaItem{Id: "item-a2", Label: "仮説思考"}
	itemB1 := &domain.CriteriaItem{Id: "item-b1", Label: "当事者意識"}

	return report.ReportInput{
		Interview: &domain.Interview{
			Id:                     "interview-1",
			CandidateId:            "candidate-1",
			InterviewDate:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			OverallCommentExternal: "論理性が高く、推薦できる水準です。",
			OverallCommentInternal: "社内メモ: 年収要件は要確認。",
			WillTextExternal:       "事業づくりに携わりたい。",
			WillTextInternal:       "本音は年収重視。",
			AttractTextExternal:    "裁量の大きさが刺さっている。",
			AttractTextInternal:    "他社選考は進んでいない。",
		},
		Candidate: &domain.Candidate{
			Id:            "candidate-1",
			Name:          "山田 太郎",
			Stage05Result: domain.StagePassed,
		},
		CompanyName:  "株式会社サンプル",
		PositionName: "セールス",
		Scores: []report.GroupScore{
			{Group: groupA, Items: []report.ItemScore{
				{Item: itemA1, Scored: true, ScoreValue: 4, Symbol: "◎", CommentExternal: "構造化は申し分ない。", CommentInternal: "甘め評価かも。"},
				{Item: itemA2, Symbol: "-"},
			}},
			{Group: groupB, Items: []report.ItemScore{
				{Item: itemB1, Scored: true, ScoreValue: 2, Symbol: "△", CommentExternal: "受け身な場面があった。"},
			}},
		},
		Questions: []*domain.InterviewQuestionResponse{
			{
				Id: "q1", QuestionText: "転職理由を教えてください",
				AnswerSummary:  "裁量を求めて",
				HypothesisText: "現職への不満が主因では",
				IsHighlight:    true,
			},
			{
				Id: "q2", QuestionText: "年収の希望は",
				AnswerSummary: "600万円以上",
				IsHighlight:   false,
			},
		},
	}
}

func TestClientReport(t *testing.T) {
	t.Run("it renders the full client report", func(t *testing.T) {
		actual := report.ClientReport(fullInput())

		expected := strings.Join([]string{
			"# 0.5次面談 評価レポート（クライアント提出用）",
			"",
			"## 候補者情報",
			"- **氏名**: 山田 太郎",
			"- **応募企業**: 株式会社サンプル",
			"- **応募ポジション**: セールス",
			"- **面談日**: 2025-01-15",
			"",
			"## 総合評価",
			"論理性が高く、推薦できる水準です。",
			"",
			"## 定性要件別評価",
			"\n### 論理性",
			"_思考の筋道_",
			"- **構造化**: ◎",
			"  - 構造化は申し分ない。",
			"- **仮説思考**: -",
			"\n### 主体性",
			"- **当事者意識**: △",
			"  - 受け身な場面があった。",
			"\n## 主な質問と回答",
			"\n**Q: 転職理由を教えてください**",
			"A: 裁量を求めて",
			"\n## Will（志向性）",
			"事業づくりに携わりたい。",
			"\n## アトラクトポイント",
			"裁量の大きさが刺さっている。",
		}, "\n")

		if actual != expected {
			t.Errorf("unexpected report:\n===actual===\n%s\n===expected===\n%s", actual, expected)
		}
	})

	t.Run("it never leaks internal fields or non-highlight questions", func(t *testing.T) {
		in := fullInput()
		actual := report.ClientReport(in)

		for _, leaked := range []string{
			in.Interview.OverallCommentInternal,
			in.Interview.WillTextInternal,
			in.Interview.AttractTextInternal,
			"甘め評価かも。",
			"現職への不満が主因では", // hypothesis of a highlighted question
			"年収の希望は",        // non-highlight question
		} {
			if strings.Contains(actual, leaked) {
				t.Errorf("internal text leaked into client report: %s", leaked)
			}
		}
	})

	t.Run("it falls back to placeholders", func(t *testing.T) {
		in := fullInput()
		in.CompanyName = ""
		in.PositionName = ""
		in.Interview.OverallCommentExternal = ""
		in.Interview.WillTextExternal = ""
		in.Interview.AttractTextExternal = ""
		in.Questions = nil

		actual := report.ClientReport(in)

		if !strings.Contains(actual, "- **応募企業**: -") {
			t.Error("missing company placeholder")
		}
		if !strings.Contains(actual, "- **応募ポジション**: -") {
			t.Error("missing position placeholder")
		}
		if !strings.Contains(actual, "(未入力)") {
			t.Error("missing empty-comment placeholder")
		}
		for _, section := range []string{"主な質問と回答", "Will（志向性）", "アトラクトポイント"} {
			if strings.Contains(actual, section) {
				t.Errorf("section should be omitted when empty: %s", section)
			}
		}
	})

	t.Run("it is deterministic", func(t *testing.T) {
		first := report.ClientReport(fullInput())
		second := report.ClientReport(fullInput())
		if first != second {
			t.Error("rendering the same input twice differs")
		}
	})

	t.Run("it renders empty when interview or candidate is missing", func(t *testing.T) {
		in := fullInput()
		in.Interview = nil
		if actual := report.ClientReport(in); actual != "" {
			t.Errorf("expected empty report, got: %s", actual)
		}

		in = fullInput()
		in.Candidate = nil
		if actual := report.ClientReport(in); actual != "" {
			t.Errorf("expected empty report, got: %s", actual)
		}
	})
}

func TestAgentReport(t *testing.T) {
	t.Run("it renders the full agent feedback", func(t *testing.T) {
		actual := report.AgentReport(fullInput())

		expected := strings.Join([]string{
			"# 0.5次面談 フィードバック（エージェント向け）",
			"",
			"## 候補者情報",
			"- **氏名**: 山田 太郎",
			"- **応募企業**: 株式会社サンプル",
			"- **応募ポジション**: セールス",
			"- **面談日**: 2025-01-15",
			"- **結果**: 通過",
			"",
			"## 総合所感",
			"論理性が高く、推薦できる水準です。",
			"\n## ギャップのあった要件",
			"- **主体性 / 当事者意識**: △",
			"  - 受け身な場面があった。",
			"\n## 今後のご紹介について",
			"上記の要件を満たす候補者様のご紹介をお待ちしております。",
		}, "\n")

		if actual != expected {
			t.Errorf("unexpected report:\n===actual===\n%s\n===expected===\n%s", actual, expected)
		}
	})

	t.Run("it reports 見送り unless the stage was passed", func(t *testing.T) {
		for _, result := range []domain.StageResult{domain.StageNotDone, domain.StageRejected} {
			in := fullInput()
			in.Candidate.Stage05Result = result
			actual := report.AgentReport(in)
			if !strings.Contains(actual, "- **結果**: 見送り") {
				t.Errorf("expected 見送り for %s", result)
			}
			if strings.Contains(actual, "通過") {
				t.Errorf("unexpected 通過 for %s", result)
			}
		}
	})

	t.Run("it omits the gap section when no scored item is 2 or lower", func(t *testing.T) {
		in := fullInput()
		for gi := range in.Scores {
			for ii := range in.Scores[gi].Items {
				if in.Scores[gi].Items[ii].Scored {
					in.Scores[gi].Items[ii].ScoreValue = 4
					in.Scores[gi].Items[ii].Symbol = "◎"
				}
			}
		}

		actual := report.AgentReport(in)
		if strings.Contains(actual, "ギャップのあった要件") {
			t.Error("gap section should be omitted")
		}
		if !strings.Contains(actual, "今後のご紹介について") {
			t.Error("closing section is mandatory")
		}
	})

	t.Run("it never renders questions or internal fields", func(t *testing.T) {
		in := fullInput()
		actual := report.AgentReport(in)

		for _, leaked := range []string{
			"転職理由を教えてください",
			in.Interview.OverallCommentInternal,
			in.Interview.WillTextInternal,
		} {
			if strings.Contains(actual, leaked) {
				t.Errorf("text leaked into agent report: %s", leaked)
			}
		}
	})

	t.Run("it renders empty when interview or candidate is missing", func(t *testing.T) {
		in := fullInput()
		in.Candidate = nil
		if actual := report.AgentReport(in); actual != "" {
			t.Errorf("expected empty report, got: %s", actual)
		}
	})
}
