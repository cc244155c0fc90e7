package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/service"
	"course-timetable/backend/pkg/response"
)

const codeCourseSubjectsNeedTrack = 20002

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 获取课程列表
// GET /api/v1/courses?q=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// UpdateCourse 更新课程
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse 删除课程（级联删除科目、课表条目与生效日期）
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetPrintDate 获取课表生效日期
// GET /api/v1/courses/:id/print-date
func (h *CourseHandler) GetPrintDate(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	pd, err := h.courseSvc.GetPrintDate(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, pd)
}

// UpsertPrintDate 设置课表生效日期
// PUT /api/v1/courses/:id/print-date
func (h *CourseHandler) UpsertPrintDate(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpsertPrintDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	pd, err := h.courseSvc.UpsertPrintDate(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, pd)
}

// handleCourseError 将课程业务错误映射为 HTTP 响应
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCourseSubjectsNeedTrack) {
		response.BadRequest(c, codeCourseSubjectsNeedTrack, err.Error())
		return
	}
	if handleNotFound(c, err) || handleWriteConflict(c, err) {
		return
	}
	response.InternalError(c)
}
