package dto

// ── 科目模块 DTO ──

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Name      string  `json:"name"       binding:"required,min=1,max=100"`
	CourseID  string  `json:"course_id"  binding:"required,uuid"`
	FacultyID *string `json:"faculty_id" binding:"omitempty,uuid"`
	Track     *string `json:"track"      binding:"omitempty,track"`
	IsCommon  bool    `json:"is_common"`
}

// UpdateSubjectRequest 更新科目请求（faculty_id / track 传空字符串表示清空）
type UpdateSubjectRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	FacultyID *string `json:"faculty_id" binding:"omitempty,uuid"`
	Track     *string `json:"track"      binding:"omitempty,track|eq="`
	IsCommon  *bool   `json:"is_common"`
}

// SubjectListRequest 科目列表查询参数
type SubjectListRequest struct {
	CourseID string `form:"course_id" binding:"omitempty,uuid"`
	Track    string `form:"track"     binding:"omitempty,track"`
	IsCommon *bool  `form:"is_common"`
}

// SubjectResponse 科目信息响应
type SubjectResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Course    CourseBrief   `json:"course"`
	Faculty   *FacultyBrief `json:"faculty,omitempty"`
	Track     *string       `json:"track,omitempty"`
	IsCommon  bool          `json:"is_common"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// SubjectBrief 科目简要信息
type SubjectBrief struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Track    *string `json:"track,omitempty"`
	IsCommon bool    `json:"is_common"`
}
