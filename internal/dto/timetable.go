package dto

// ── 课表视图 DTO ──

// TimetableViewResponse 交互式课表视图（按 时间段 × 星期 的网格）
type TimetableViewResponse struct {
	Course          CourseBrief           `json:"course"`
	Classroom       *string               `json:"classroom,omitempty"`
	CurrentDate     string                `json:"current_date"`             // "02-01-2006"
	EffectiveFrom   *string               `json:"effective_from,omitempty"` // "02-01-2006"
	Days            []string              `json:"days"`
	Rows            []TimetableRow        `json:"rows"`
	SubjectsFaculty []SubjectFacultyEntry `json:"subjects_faculty"`
}

// TimetableRow 网格中的一行（一个时间段）
type TimetableRow struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Label     string   `json:"label"` // "09:00 AM - 10:00 AM"
	Cells     [][]Cell `json:"cells"` // 与 Days 一一对应；每格可能有多条记录
}

// Cell 网格单元格中的一条记录
type Cell struct {
	EntryID string `json:"entry_id"`
	Text    string `json:"text"`
	IsBreak bool   `json:"is_break"`
	IsLab   bool   `json:"is_lab"`
}

// SubjectFacultyEntry 科目 → 教师（首次出现优先）
type SubjectFacultyEntry struct {
	Subject string `json:"subject"`
	Faculty string `json:"faculty"`
}
