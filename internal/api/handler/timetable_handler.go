package handler

import (
	"github.com/gin-gonic/gin"

	"course-timetable/backend/internal/service"
	"course-timetable/backend/pkg/response"
)

// TimetableHandler 课表视图 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// GetTimetable 交互式课表网格
// GET /api/v1/timetables/:course_id
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	courseID, ok := MustGetParam(c, "course_id")
	if !ok {
		return
	}

	view, err := h.timetableSvc.View(c.Request.Context(), courseID)
	if err != nil {
		if !handleNotFound(c, err) {
			response.InternalError(c)
		}
		return
	}

	response.OK(c, view)
}
