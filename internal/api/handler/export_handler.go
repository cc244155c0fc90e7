package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-timetable/backend/internal/service"
	"course-timetable/backend/pkg/response"
)

const codeExportFormat = 24002

// ExportHandler 课表导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPDF 导出 PDF
// GET /api/v1/timetables/:course_id/pdf
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.export(c, service.FormatPDF)
}

// ExportExcel 导出 Excel
// GET /api/v1/timetables/:course_id/excel
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	h.export(c, service.FormatExcel)
}

// ExportICS 导出日历（每周重复事件）
// GET /api/v1/timetables/:course_id/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	h.export(c, service.FormatICS)
}

func (h *ExportHandler) export(c *gin.Context, format service.ExportFormat) {
	courseID, ok := MustGetParam(c, "course_id")
	if !ok {
		return
	}

	file, err := h.exportSvc.Export(c.Request.Context(), courseID, format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportFormat):
		response.BadRequest(c, codeExportFormat, err.Error())
	default:
		if !handleNotFound(c, err) {
			response.InternalError(c)
		}
	}
}
