// Package export renders the candidate roster as downloadable CSV or
// XLSX files for staff users.
package export

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	types "github.com/bandq-jp/hirelog/pkg/domain"
	kagent "github.com/bandq-jp/hirelog/pkg/domain/agent/db"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kcompany "github.com/bandq-jp/hirelog/pkg/domain/company/db"
	kinterview "github.com/bandq-jp/hirelog/pkg/domain/interview/db"
	kjobposition "github.com/bandq-jp/hirelog/pkg/domain/jobposition/db"
	kuser "github.com/bandq-jp/hirelog/pkg/domain/user/db"
	xe "github.com/bandq-jp/hirelog/pkg/errors"
)

// Header is the column set of the candidate export, shared by the CSV
// and the XLSX rendition.
var Header = []string{
	"候補者ID",
	"氏名",
	"企業名",
	"ポジション名",
	"エージェント会社",
	"エージェント担当",
	"担当者",
	"0.5次結果",
	"0.5次日付",
	"一次結果",
	"一次日付",
	"二次結果",
	"最終結果",
	"最終決定日",
	"入社状況",
	"ミスマッチ",
	"Will（外向き）",
	"アトラクト（外向き）",
}

const dateLayout = "2006-01-02"

type Service struct {
	candidate   kcandidate.CandidateInterface
	company     kcompany.CompanyInterface
	jobPosition kjobposition.JobPositionInterface
	agent       kagent.AgentInterface
	user        kuser.UserInterface
	interview   kinterview.InterviewInterface
}

func New(
	candidate kcandidate.CandidateInterface,
	company kcompany.CompanyInterface,
	jobPosition kjobposition.JobPositionInterface,
	agent kagent.AgentInterface,
	user kuser.UserInterface,
	interview kinterview.InterviewInterface,
) *Service {
	return &Service{
		candidate:   candidate,
		company:     company,
		jobPosition: jobPosition,
		agent:       agent,
		user:        user,
		interview:   interview,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// Rows builds the export rows (header excluded) for the candidates of
// companyId; empty companyId means all companies. Related records that
// have vanished leave their cells blank rather than failing the export.
func (s *Service) Rows(ctx context.Context, companyId string) ([][]string, error) {
	candidates, err := s.candidate.List(ctx, types.CandidateFilter{CompanyId: companyId})
	if err != nil {
		return nil, xe.Wrap(err)
	}

	// Companies, positions, agents and owners repeat across candidates.
	companyNames := map[string]string{}
	positionNames := map[string]string{}
	agents := map[string]*types.Agent{}
	ownerNames := map[string]string{}

	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		companyName, ok := companyNames[c.CompanyId]
		if !ok {
			if com, err := s.company.Get(ctx, c.CompanyId); err != nil {
				return nil, xe.Wrap(err)
			} else if com != nil {
				companyName = com.Name
			}
			companyNames[c.CompanyId] = companyName
		}

		positionName, ok := positionNames[c.JobPositionId]
		if !ok {
			if pos, err := s.jobPosition.Get(ctx, c.JobPositionId); err != nil {
				return nil, xe.Wrap(err)
			} else if pos != nil {
				positionName = pos.Name
			}
			positionNames[c.JobPositionId] = positionName
		}

		agentCompany, agentContact := "", ""
		if c.AgentId != "" {
			ag, ok := agents[c.AgentId]
			if !ok {
				ag, err = s.agent.Get(ctx, c.AgentId)
				if err != nil {
					return nil, xe.Wrap(err)
				}
				agents[c.AgentId] = ag
			}
			if ag != nil {
				agentCompany, agentContact = ag.CompanyName, ag.ContactName
			}
		}

		ownerName, ok := ownerNames[c.OwnerUserId]
		if !ok {
			if owner, err := s.user.Get(ctx, c.OwnerUserId); err != nil {
				return nil, xe.Wrap(err)
			} else if owner != nil {
				ownerName = owner.Name
			}
			ownerNames[c.OwnerUserId] = ownerName
		}

		willExternal, attractExternal := "", ""
		if iv, err := s.interview.GetByCandidate(ctx, c.Id); err != nil {
			return nil, xe.Wrap(err)
		} else if iv != nil {
			willExternal = iv.WillTextExternal
			attractExternal = iv.AttractTextExternal
		}

		mismatch := ""
		if c.MismatchFlag {
			mismatch = "あり"
		}

		rows = append(rows, []string{
			c.Id,
			c.Name,
			companyName,
			positionName,
			agentCompany,
			agentContact,
			ownerName,
			c.Stage05Result.String(),
			formatDate(c.Stage05Date),
			c.StageFirstResult.String(),
			formatDate(c.StageFirstDate),
			c.StageSecondResult.String(),
			c.StageFinalResult.String(),
			formatDate(c.StageFinalDecisionDate),
			c.HireStatus.String(),
			mismatch,
			willExternal,
			attractExternal,
		})
	}

	return rows, nil
}

// CSV writes the candidate export as CSV.
func (s *Service) CSV(ctx context.Context, w io.Writer, companyId string) error {
	rows, err := s.Rows(ctx, companyId)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return xe.Wrap(err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return xe.Wrap(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return xe.Wrap(err)
	}
	return nil
}

const xlsxSheet = "Candidates"

// XLSX writes the candidate export as an Excel workbook with the same
// columns as CSV.
func (s *Service) XLSX(ctx context.Context, w io.Writer, companyId string) error {
	rows, err := s.Rows(ctx, companyId)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", xlsxSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return xe.Wrap(err)
	}

	for col, h := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return xe.Wrap(err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return xe.Wrap(err)
		}
		if err := f.SetCellStyle(xlsxSheet, cell, cell, headerStyle); err != nil {
			return xe.Wrap(err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return xe.Wrap(err)
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return xe.Wrap(err)
			}
		}
	}

	if err := f.SetPanes(xlsxSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return xe.Wrap(err)
	}

	if err := f.Write(w); err != nil {
		return xe.Wrap(err)
	}
	return nil
}
