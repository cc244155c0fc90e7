package handler

import (
	"github.com/gin-gonic/gin"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/service"
	"course-timetable/backend/pkg/response"
)

// FacultyHandler 教师模块 HTTP 处理器
type FacultyHandler struct {
	facultySvc service.FacultyService
}

// NewFacultyHandler 创建 FacultyHandler
func NewFacultyHandler(facultySvc service.FacultyService) *FacultyHandler {
	return &FacultyHandler{facultySvc: facultySvc}
}

// ListFaculties 获取教师列表
// GET /api/v1/faculties?keyword=
func (h *FacultyHandler) ListFaculties(c *gin.Context) {
	var req dto.FacultyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	faculties, err := h.facultySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": faculties})
}

// GetFaculty 获取教师详情
// GET /api/v1/faculties/:id
func (h *FacultyHandler) GetFaculty(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	faculty, err := h.facultySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleFacultyError(c, err)
		return
	}

	response.OK(c, faculty)
}

// CreateFaculty 创建教师
// POST /api/v1/faculties
func (h *FacultyHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	faculty, err := h.facultySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleFacultyError(c, err)
		return
	}

	response.Created(c, faculty)
}

// UpdateFaculty 更新教师
// PUT /api/v1/faculties/:id
func (h *FacultyHandler) UpdateFaculty(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	faculty, err := h.facultySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleFacultyError(c, err)
		return
	}

	response.OK(c, faculty)
}

// DeleteFaculty 删除教师（引用该教师的科目与条目置空）
// DELETE /api/v1/faculties/:id
func (h *FacultyHandler) DeleteFaculty(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	if err := h.facultySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleFacultyError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *FacultyHandler) handleFacultyError(c *gin.Context, err error) {
	if handleNotFound(c, err) || handleWriteConflict(c, err) {
		return
	}
	response.InternalError(c)
}
