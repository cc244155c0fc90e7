package model

// Subject 科目，对应 subjects
type Subject struct {
	SubjectID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"`
	FacultyID *string `gorm:"type:uuid"                                      json:"faculty_id,omitempty"` // 教师删除后置 NULL
	CourseID  string  `gorm:"type:uuid;not null"                             json:"course_id"`
	Track     *Track  `gorm:"type:varchar(10)"                               json:"track,omitempty"`
	IsCommon  bool    `gorm:"not null;default:false"                         json:"is_common"`
	BaseModel

	// 关联
	Faculty *Faculty `gorm:"foreignKey:FacultyID;references:FacultyID" json:"faculty,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// TrackRequired 非公共课且学期 > 1 时必须指定方向
func (s Subject) TrackRequired(semester int) bool {
	return !s.IsCommon && semester > 1
}

// SameTrack 两个方向是否相同（均未设置也视为相同）
func SameTrack(a, b *Track) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
