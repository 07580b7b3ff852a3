package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auction-ledger/backend/internal/application/usecase/report"
	domainerror "github.com/auction-ledger/backend/internal/domain/error"
	"github.com/auction-ledger/backend/internal/integration/entrypoint/dto"
)

const dateLayout = "2006-01-02"

// ReportController handles the financial report endpoints.
type ReportController struct {
	generateReportsUseCase *report.GenerateReportsUseCase
	listSnapshotsUseCase   *report.ListSnapshotsUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	generateReportsUseCase *report.GenerateReportsUseCase,
	listSnapshotsUseCase *report.ListSnapshotsUseCase,
) *ReportController {
	return &ReportController{
		generateReportsUseCase: generateReportsUseCase,
		listSnapshotsUseCase:   listSnapshotsUseCase,
	}
}

// GetReports handles GET /reports requests.
// It returns every report computed over the same range and instant.
func (c *ReportController) GetReports(ctx *gin.Context) {
	input, err := parseGenerateReportsInput(ctx)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	bundle, err := c.generateReportsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Data: bundle})
}

// GetReport handles GET /reports/:kind requests.
func (c *ReportController) GetReport(ctx *gin.Context) {
	kind := report.Kind(ctx.Param("kind"))
	if !isKnownKind(kind) {
		c.handleReportError(ctx, domainerror.NewReportError(
			domainerror.ErrCodeUnknownReport,
			domainerror.ErrUnknownReport.Error()+": "+string(kind),
			domainerror.ErrUnknownReport,
		))
		return
	}

	input, err := parseGenerateReportsInput(ctx)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	bundle, err := c.generateReportsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	selected, _ := bundle.Select(kind)
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: selected})
}

// ListSnapshots handles GET /reports/snapshots requests.
func (c *ReportController) ListSnapshots(ctx *gin.Context) {
	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.handleReportError(ctx, domainerror.NewReportError(
				domainerror.ErrCodeInvalidLimit,
				domainerror.ErrInvalidLimit.Error(),
				domainerror.ErrInvalidLimit,
			))
			return
		}
		limit = parsed
	}

	snapshots, err := c.listSnapshotsUseCase.Execute(ctx.Request.Context(), limit)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportSnapshotListResponse(snapshots))
}

// parseGenerateReportsInput reads range, from, to and as_of from the query string.
func parseGenerateReportsInput(ctx *gin.Context) (report.GenerateReportsInput, error) {
	input := report.GenerateReportsInput{
		RangeType: report.RangeType(ctx.DefaultQuery("range", string(report.RangeMonth))),
	}

	for _, param := range []struct {
		name string
		dest **time.Time
	}{
		{"from", &input.From},
		{"to", &input.To},
	} {
		value := ctx.Query(param.name)
		if value == "" {
			continue
		}
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return input, domainerror.NewReportError(
				domainerror.ErrCodeInvalidDateFormat,
				param.name+": "+domainerror.ErrInvalidDateFormat.Error(),
				err,
			)
		}
		*param.dest = &parsed
	}

	if asOfStr := ctx.Query("as_of"); asOfStr != "" {
		asOf, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			return input, domainerror.NewReportError(
				domainerror.ErrCodeInvalidAsOf,
				domainerror.ErrInvalidAsOf.Error(),
				err,
			)
		}
		input.AsOf = &asOf
	}

	return input, nil
}

func isKnownKind(kind report.Kind) bool {
	for _, k := range report.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// handleReportError maps report errors to HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(c.getStatusCodeForReportError(reportErr.Code), dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	slog.Error("Failed to serve report request", "error", err, "path", ctx.FullPath())
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeReportInternalError),
	})
}

// getStatusCodeForReportError maps report error codes to HTTP status codes.
func (c *ReportController) getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidRangeType,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidAsOf,
		domainerror.ErrCodeUnknownReport,
		domainerror.ErrCodeInvalidLimit:
		return http.StatusBadRequest
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
