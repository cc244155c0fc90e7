package model

// TimetableEntry 课表条目，对应 timetable_entries
// 每条记录语义上只能是 课间休息 / 实验 / 普通授课 之一
type TimetableEntry struct {
	EntryID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	CourseID  string     `gorm:"type:uuid;not null"                             json:"course_id"`
	Day       Weekday    `gorm:"type:varchar(10);not null"                      json:"day"`
	StartTime ClockTime  `gorm:"type:time;not null"                             json:"start_time"`
	EndTime   ClockTime  `gorm:"type:time;not null"                             json:"end_time"`
	SubjectID *string    `gorm:"type:uuid"                                      json:"subject_id,omitempty"`
	FacultyID *string    `gorm:"type:uuid"                                      json:"faculty_id,omitempty"`
	IsBreak   bool       `gorm:"not null;default:false"                         json:"is_break"`
	IsLab     bool       `gorm:"not null;default:false"                         json:"is_lab"`
	LabChoice *LabChoice `gorm:"type:varchar(10)"                               json:"lab_choice,omitempty"`
	VersionedModel

	// 关联
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable_entries" }

// IsLecture 既不是课间休息也不是实验
func (e TimetableEntry) IsLecture() bool {
	return !e.IsBreak && !e.IsLab
}

// Overlaps 半开区间 [start, end) 重叠判断，首尾相接不算冲突
func (e TimetableEntry) Overlaps(start, end ClockTime) bool {
	return e.StartTime < end && e.EndTime > start
}
