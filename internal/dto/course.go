package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name      string  `json:"name"      binding:"required,min=1,max=100"`
	Semester  int     `json:"semester"  binding:"required,min=1,max=20"`
	Classroom *string `json:"classroom" binding:"omitempty,max=50"`
}

// UpdateCourseRequest 更新课程请求（classroom 传空字符串表示清空）
type UpdateCourseRequest struct {
	Name      *string `json:"name"      binding:"omitempty,min=1,max=100"`
	Semester  *int    `json:"semester"  binding:"omitempty,min=1,max=20"`
	Classroom *string `json:"classroom" binding:"omitempty,max=50"`
}

// CourseListRequest 课程列表查询参数
// q 为纯数字时按学期精确过滤，否则按名称模糊匹配
type CourseListRequest struct {
	Query string `form:"q" binding:"omitempty,max=100"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Semester  int     `json:"semester"`
	Classroom *string `json:"classroom,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CourseBrief 课程简要信息（嵌入其他响应）
type CourseBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Semester int    `json:"semester"`
}

// ── 打印日期 ──

// UpsertPrintDateRequest 设置课表生效日期（effective_date 为空表示清除）
type UpsertPrintDateRequest struct {
	EffectiveDate *string `json:"effective_date" binding:"omitempty,datetime=2006-01-02"`
}

// PrintDateResponse 课表生效日期响应
type PrintDateResponse struct {
	CourseID      string  `json:"course_id"`
	EffectiveDate *string `json:"effective_date"` // "2006-01-02"
}
