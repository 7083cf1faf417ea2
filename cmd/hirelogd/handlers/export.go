package handlers

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	binderr "github.com/bandq-jp/hirelog/pkg/api/bind/errors"
	"github.com/bandq-jp/hirelog/pkg/export"
)

const xlsxMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func ExportCandidatesCSVHandler(exporter *export.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		buf := new(bytes.Buffer)
		if err := exporter.CSV(c.Request().Context(), buf, c.QueryParam("company_id")); err != nil {
			return binderr.InternalServerError(err)
		}

		c.Response().Header().Set(
			echo.HeaderContentDisposition, `attachment; filename=candidates_export.csv`,
		)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}

func ExportCandidatesXLSXHandler(exporter *export.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		buf := new(bytes.Buffer)
		if err := exporter.XLSX(c.Request().Context(), buf, c.QueryParam("company_id")); err != nil {
			return binderr.InternalServerError(err)
		}

		c.Response().Header().Set(
			echo.HeaderContentDisposition, `attachment; filename=candidates_export.xlsx`,
		)
		return c.Blob(http.StatusOK, xlsxMIMEType, buf.Bytes())
	}
}
