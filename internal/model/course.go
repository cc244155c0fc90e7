package model

import "fmt"

// Course 课程（专业 + 学期），对应 courses
type Course struct {
	CourseID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Semester  int     `gorm:"not null"                                       json:"semester"` // >= 1
	Classroom *string `gorm:"type:varchar(50)"                               json:"classroom,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// DisplayName 如 "BCA (Sem 3)"
func (c Course) DisplayName() string {
	return fmt.Sprintf("%s (Sem %d)", c.Name, c.Semester)
}
