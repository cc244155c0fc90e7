package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"course-timetable/backend/internal/model"
)

// PrintDateRepository 课表生效日期数据访问接口
type PrintDateRepository interface {
	GetByCourse(ctx context.Context, courseID string) (*model.TimetablePrintDate, error)
	// Upsert 以 course_id 为唯一键插入或更新
	Upsert(ctx context.Context, printDate *model.TimetablePrintDate) error
}

type printDateRepo struct {
	db *gorm.DB
}

// NewPrintDateRepo 创建 PrintDateRepository 实例
func NewPrintDateRepo(db *gorm.DB) PrintDateRepository {
	return &printDateRepo{db: db}
}

func (r *printDateRepo) GetByCourse(ctx context.Context, courseID string) (*model.TimetablePrintDate, error) {
	var pd model.TimetablePrintDate
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		First(&pd).Error
	if err != nil {
		return nil, err
	}
	return &pd, nil
}

func (r *printDateRepo) Upsert(ctx context.Context, printDate *model.TimetablePrintDate) error {
	printDate.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Omit("Course").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"effective_date", "updated_at"}),
		}).
		Create(printDate).Error
}
