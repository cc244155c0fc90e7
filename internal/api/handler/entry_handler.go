package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/service"
	"course-timetable/backend/pkg/response"
)

const (
	codeEntryKindAmbiguous = 23002
	codeInvalidEntryInput  = 23003
)

// EntryHandler 课表条目模块 HTTP 处理器
type EntryHandler struct {
	entrySvc service.EntryService
}

// NewEntryHandler 创建 EntryHandler
func NewEntryHandler(entrySvc service.EntryService) *EntryHandler {
	return &EntryHandler{entrySvc: entrySvc}
}

// ListEntries 获取课表条目列表
// GET /api/v1/entries?course_id=&day=&faculty_id=&is_break=&is_lab=&lab_choice=
func (h *EntryHandler) ListEntries(c *gin.Context) {
	var req dto.EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	entries, err := h.entrySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// GetEntry 获取课表条目详情
// GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.entrySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// CreateEntry 创建课表条目（先冲突校验，通过后落库）
// POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	entry, err := h.entrySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.Created(c, entry)
}

// UpdateEntry 更新课表条目（整体替换，version 不一致返回 409）
// PUT /api/v1/entries/:id
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	entry, err := h.entrySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// DeleteEntry 删除课表条目
// DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	id, ok := MustGetParam(c, "id")
	if !ok {
		return
	}

	if err := h.entrySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, nil)
}

// ValidateEntry 冲突预校验，不落库；冲突以 200 + valid=false 返回
// POST /api/v1/entries/validate
func (h *EntryHandler) ValidateEntry(c *gin.Context) {
	var req dto.ValidateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.entrySvc.Validate(c.Request.Context(), &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *EntryHandler) handleEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryKindAmbiguous):
		response.BadRequest(c, codeEntryKindAmbiguous, err.Error())
	case errors.Is(err, service.ErrInvalidEntryInput):
		response.BadRequest(c, codeInvalidEntryInput, err.Error())
	default:
		if !handleWriteConflict(c, err) && !handleNotFound(c, err) {
			response.InternalError(c)
		}
	}
}
