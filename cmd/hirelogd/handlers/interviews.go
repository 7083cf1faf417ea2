package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/auth"
	"github.com/bandq-jp/hirelog/pkg/domain"
	kcandidate "github.com/bandq-jp/hirelog/pkg/domain/candidate/db"
	kinterview "github.com/bandq-jp/hirelog/pkg/domain/interview/db"
	"github.com/bandq-jp/hirelog/pkg/utils"
)

// composeInterviewWithDetails loads the detail and question lists of an
// interview eagerly, in rubric and arrival order respectively.
func composeInterviewWithDetails(
	ctx context.Context,
	dbinterview kinterview.InterviewInterface,
	interview *domain.Interview,
) (apitypes.InterviewWithDetails, error) {
	resp := apitypes.InterviewWithDetails{Interview: apitypes.FromInterview(interview)}

	details, err := dbinterview.ListDetails(ctx, interview.Id)
	if err != nil {
		return resp, err
	}
	resp.Details = utils.Map(details, apitypes.FromInterviewDetail)

	questions, err := dbinterview.ListQuestions(ctx, interview.Id)
	if err != nil {
		return resp, err
	}
	resp.QuestionResponses = utils.Map(questions, apitypes.FromInterviewQuestionResponse)

	return resp, nil
}

// checkCandidateAccess loads the candidate and verifies that the caller
// may touch interviews under it. Missing candidate is a 404; foreign
// candidates are a 403 for non-admin users.
func checkCandidateAccess(
	c echo.Context, dbcandidate kcandidate.CandidateInterface, candidateId string,
) error {
	cand, err := dbcandidate.Get(c.Request().Context(), candidateId)
	if err != nil {
		return binderr.InternalServerError(err)
	}
	if cand == nil {
		return binderr.NotFound()
	}
	if !canEditCandidate(auth.UserFrom(c), cand) {
		return binderr.Forbidden("not authorized")
	}
	return nil
}

// GetInterviewByCandidateHandler returns the interview of a candidate,
// or a JSON null when none has been recorded yet.
func GetInterviewByCandidateHandler(
	dbinterview kinterview.InterviewInterface, paramCandidateId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		interview, err := dbinterview.GetByCandidate(ctx, c.Param(paramCandidateId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if interview == nil {
			return c.JSON(http.StatusOK, nil)
		}

		resp, err := composeInterviewWithDetails(ctx, dbinterview, interview)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func GetInterviewHandler(dbinterview kinterview.InterviewInterface, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		interview, err := dbinterview.Get(ctx, c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if interview == nil {
			return binderr.NotFound()
		}

		resp, err := composeInterviewWithDetails(ctx, dbinterview, interview)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func CreateInterviewHandler(
	dbinterview kinterview.InterviewInterface,
	dbcandidate kcandidate.CandidateInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.InterviewCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.CandidateId == "" {
			return binderr.BadRequest("candidate_id is required", nil)
		}

		date, err := apitypes.ParseDate(req.InterviewDate)
		if err != nil {
			return binderr.BadRequest("interview_date should be YYYY-MM-DD", err)
		}

		if err := checkCandidateAccess(c, dbcandidate, req.CandidateId); err != nil {
			return err
		}

		interviewer := req.InterviewerId
		if interviewer == "" {
			user := auth.UserFrom(c)
			if user == nil {
				return binderr.Unauthorized("not authenticated", nil)
			}
			interviewer = user.Id
		}

		created, err := dbinterview.Create(c.Request().Context(), domain.NewInterview{
			CandidateId:   req.CandidateId,
			InterviewerId: interviewer,
			InterviewDate: date,
		})
		if errors.Is(err, domain.ErrConflict) {
			return binderr.Conflict("the candidate already has an interview")
		}
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromInterview(created))
	}
}

func PatchInterviewHandler(
	dbinterview kinterview.InterviewInterface,
	dbcandidate kcandidate.CandidateInterface,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(paramId)

		req := new(apitypes.InterviewPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		interview, err := dbinterview.Get(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if interview == nil {
			return binderr.NotFound()
		}
		if err := checkCandidateAccess(c, dbcandidate, interview.CandidateId); err != nil {
			return err
		}

		patch := domain.InterviewPatch{
			OverallCommentExternal: req.OverallCommentExternal,
			OverallCommentInternal: req.OverallCommentInternal,
			WillTextExternal:       req.WillTextExternal,
			WillTextInternal:       req.WillTextInternal,
			AttractTextExternal:    req.AttractTextExternal,
			AttractTextInternal:    req.AttractTextInternal,
			TranscriptRawText:      req.TranscriptRawText,
			TranscriptSource:       req.TranscriptSource,
			TranscriptUrl:          req.TranscriptUrl,
		}
		if req.InterviewDate != nil {
			date, err := apitypes.ParseDate(*req.InterviewDate)
			if err != nil {
				return binderr.BadRequest("interview_date should be YYYY-MM-DD", err)
			}
			patch.InterviewDate = &date
		}

		updated, err := dbinterview.Update(ctx, id, patch)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromInterview(updated))
	}
}

// SaveInterviewDetailsHandler upserts the whole score sheet of an
// interview in one transaction. The request body is a JSON array.
func SaveInterviewDetailsHandler(
	dbinterview kinterview.InterviewInterface,
	dbcandidate kcandidate.CandidateInterface,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(paramId)

		inputs := []apitypes.DetailInput{}
		if err := json.NewDecoder(c.Request().Body).Decode(&inputs); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		interview, err := dbinterview.Get(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if interview == nil {
			return binderr.NotFound()
		}
		if err := checkCandidateAccess(c, dbcandidate, interview.CandidateId); err != nil {
			return err
		}

		saved, err := dbinterview.SaveDetails(
			ctx, id,
			utils.Map(inputs, func(in apitypes.DetailInput) domain.DetailInput {
				return domain.DetailInput{
					CriteriaItemId:  in.CriteriaItemId,
					ScoreValue:      in.ScoreValue,
					CommentExternal: in.CommentExternal,
					CommentInternal: in.CommentInternal,
				}
			}),
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, utils.Map(saved, apitypes.FromInterviewDetail))
	}
}

func AddInterviewQuestionHandler(
	dbinterview kinterview.InterviewInterface,
	dbcandidate kcandidate.CandidateInterface,
	paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(paramId)

		req := new(apitypes.QuestionCreateRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if req.QuestionText == "" {
			return binderr.BadRequest("question_text is required", nil)
		}

		interview, err := dbinterview.Get(ctx, id)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if interview == nil {
			return binderr.NotFound()
		}
		if err := checkCandidateAccess(c, dbcandidate, interview.CandidateId); err != nil {
			return err
		}

		created, err := dbinterview.AddQuestion(ctx, id, domain.QuestionInput{
			CriteriaItemId:      req.CriteriaItemId,
			QuestionText:        req.QuestionText,
			AnswerSummary:       req.AnswerSummary,
			HypothesisText:      req.HypothesisText,
			TranscriptReference: req.TranscriptReference,
			IsHighlight:         req.IsHighlight,
		})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apitypes.FromInterviewQuestionResponse(created))
	}
}

func PatchInterviewQuestionHandler(
	dbinterview kinterview.InterviewInterface, paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(apitypes.QuestionPatchRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		updated, err := dbinterview.UpdateQuestion(
			c.Request().Context(), c.Param(paramId),
			domain.QuestionPatch{
				CriteriaItemId:      req.CriteriaItemId,
				QuestionText:        req.QuestionText,
				AnswerSummary:       req.AnswerSummary,
				HypothesisText:      req.HypothesisText,
				TranscriptReference: req.TranscriptReference,
				IsHighlight:         req.IsHighlight,
			},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if updated == nil {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, apitypes.FromInterviewQuestionResponse(updated))
	}
}

func DeleteInterviewQuestionHandler(
	dbinterview kinterview.InterviewInterface, paramId string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		deleted, err := dbinterview.DeleteQuestion(c.Request().Context(), c.Param(paramId))
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if !deleted {
			return binderr.NotFound()
		}
		return c.NoContent(http.StatusNoContent)
	}
}
