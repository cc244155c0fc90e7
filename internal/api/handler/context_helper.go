package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-timetable/backend/internal/api/middleware"
	"course-timetable/backend/internal/service"
	pkgerrors "course-timetable/backend/pkg/errors"
	"course-timetable/backend/pkg/response"
	"course-timetable/backend/pkg/validation"
)

// 通用业务码
const (
	codeInvalidParam     = 10001
	codeOptimisticLock   = 10009
	codeTxConflict       = 10010
	codeCourseNotFound   = 20001
	codeFacultyNotFound  = 21001
	codeSubjectNotFound  = 22001
	codeEntryNotFound    = 23001
	codeConflictBaseCode = 23100
)

// 冲突类型 → 业务码；CourseSlotConflict / FacultyDoubleBooked 为 409，其余为 400
var conflictCodes = map[service.ConflictKind]int{
	service.KindIncompleteLecture:   codeConflictBaseCode + 1,
	service.KindMissingLabChoice:    codeConflictBaseCode + 2,
	service.KindInvalidTimeRange:    codeConflictBaseCode + 3,
	service.KindCourseSlotConflict:  codeConflictBaseCode + 4,
	service.KindFacultyDoubleBooked: codeConflictBaseCode + 5,
}

// MustGetParam 读取 UUID 路径参数，为空或格式错误时写入 400 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if v == "" {
		response.BadRequest(c, codeInvalidParam, name+" is required")
		return "", false
	}
	if err := uuid.Validate(v); err != nil {
		response.BadRequest(c, codeInvalidParam, name+" must be a valid UUID")
		return "", false
	}
	return v, true
}

// bindFailed 请求体 / 查询参数绑定失败
func bindFailed(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, middleware.CodeBodyTooLarge, "request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, codeInvalidParam, "invalid request parameters", validation.Describe(err))
}

// handleNotFound 处理各实体的“不存在”错误，已处理时返回 true
func handleNotFound(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, codeCourseNotFound, err.Error())
	case errors.Is(err, service.ErrFacultyNotFound):
		response.NotFound(c, codeFacultyNotFound, err.Error())
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, codeSubjectNotFound, err.Error())
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, codeEntryNotFound, err.Error())
	default:
		return false
	}
	return true
}

// handleWriteConflict 处理校验冲突与并发写冲突，已处理时返回 true
func handleWriteConflict(c *gin.Context, err error) bool {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		code := conflictCodes[conflict.Kind]
		if conflict.Kind == service.KindCourseSlotConflict || conflict.Kind == service.KindFacultyDoubleBooked {
			response.Conflict(c, code, conflict.Message)
		} else {
			response.BadRequest(c, code, conflict.Message)
		}
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, codeOptimisticLock, err.Error())
	case errors.Is(err, pkgerrors.ErrTxConflict):
		response.Conflict(c, codeTxConflict, err.Error())
	default:
		return false
	}
	return true
}
