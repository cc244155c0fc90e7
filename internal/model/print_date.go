package model

import "time"

// TimetablePrintDate 课表生效日期（每门课程至多一条），对应 timetable_print_dates
type TimetablePrintDate struct {
	PrintDateID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"print_date_id"`
	CourseID      string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"course_id"`
	EffectiveDate *time.Time `gorm:"type:date"                                      json:"effective_date,omitempty"`
	BaseModel

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (TimetablePrintDate) TableName() string { return "timetable_print_dates" }
