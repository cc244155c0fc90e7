package dto

// ── 课表条目模块 DTO ──

// EntryRequest 创建 / 整体替换课表条目请求
type EntryRequest struct {
	CourseID  string  `json:"course_id"  binding:"required,uuid"`
	Day       string  `json:"day"        binding:"required,weekday"`
	StartTime string  `json:"start_time" binding:"required,clock"` // "09:00"
	EndTime   string  `json:"end_time"   binding:"required,clock"` // "10:00"
	SubjectID *string `json:"subject_id" binding:"omitempty,uuid"`
	FacultyID *string `json:"faculty_id" binding:"omitempty,uuid"`
	IsBreak   bool    `json:"is_break"`
	IsLab     bool    `json:"is_lab"`
	LabChoice *string `json:"lab_choice" binding:"omitempty,labchoice"`
}

// UpdateEntryRequest 更新课表条目（整体替换 + 乐观锁版本号）
type UpdateEntryRequest struct {
	EntryRequest
	Version int `json:"version" binding:"required,min=1"`
}

// ValidateEntryRequest 冲突预校验（不落库）；EntryID 非空时排除自身
type ValidateEntryRequest struct {
	EntryRequest
	EntryID string `json:"entry_id" binding:"omitempty,uuid"`
}

// EntryListRequest 课表条目列表查询参数
type EntryListRequest struct {
	CourseID  string `form:"course_id"  binding:"omitempty,uuid"`
	Day       string `form:"day"        binding:"omitempty,weekday"`
	FacultyID string `form:"faculty_id" binding:"omitempty,uuid"`
	IsBreak   *bool  `form:"is_break"`
	IsLab     *bool  `form:"is_lab"`
	LabChoice string `form:"lab_choice" binding:"omitempty,labchoice"`
}

// EntryResponse 课表条目响应
type EntryResponse struct {
	ID        string        `json:"id"`
	Course    *CourseBrief  `json:"course,omitempty"`
	Day       string        `json:"day"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
	Faculty   *FacultyBrief `json:"faculty,omitempty"`
	IsBreak   bool          `json:"is_break"`
	IsLab     bool          `json:"is_lab"`
	LabChoice *string       `json:"lab_choice,omitempty"`
	Display   string        `json:"display"` // 与导出一致的单元格文本
	Version   int           `json:"version"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// ValidateEntryResponse 冲突预校验结果
type ValidateEntryResponse struct {
	Valid   bool   `json:"valid"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
