package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	apitypes "github.com/bandq-jp/hirelog/pkg/api/types"
	"github.com/bandq-jp/hirelog/pkg/report"
)

// GetClientReportHandler renders the client-facing markdown report.
// The rendering is also cached on the interview row so exports and the
// client portal can reuse it without re-rendering.
func GetClientReportHandler(reports *report.Service, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		interviewId := c.Param(paramId)

		markdown, err := reports.Client(ctx, interviewId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if markdown == "" {
			return binderr.NotFound()
		}
		if err := reports.SaveRendered(ctx, interviewId); err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitypes.ReportResponse{Markdown: markdown})
	}
}

func GetAgentReportHandler(reports *report.Service, paramId string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		interviewId := c.Param(paramId)

		markdown, err := reports.Agent(ctx, interviewId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		if markdown == "" {
			return binderr.NotFound()
		}
		if err := reports.SaveRendered(ctx, interviewId); err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apitypes.ReportResponse{Markdown: markdown})
	}
}
