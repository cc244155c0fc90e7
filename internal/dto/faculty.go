package dto

// ── 教师模块 DTO ──

// CreateFacultyRequest 创建教师请求
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateFacultyRequest 更新教师请求
type UpdateFacultyRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

// FacultyListRequest 教师列表查询参数
type FacultyListRequest struct {
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

// FacultyResponse 教师信息响应
type FacultyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FacultyBrief 教师简要信息
type FacultyBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
