package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"course-timetable/backend/internal/model"
)

// CourseFilter 课程列表过滤条件
type CourseFilter struct {
	Semester *int   // 精确匹配
	Name     string // 不区分大小写的包含匹配
}

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	// Delete 硬删除；科目、课表条目、打印日期由外键级联删除
	Delete(ctx context.Context, id string) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context, filter CourseFilter) ([]model.Course, error) {
	var courses []model.Course
	db := r.db.WithContext(ctx)

	if filter.Semester != nil {
		db = db.Where("semester = ?", *filter.Semester)
	}
	if filter.Name != "" {
		db = db.Where("name ILIKE ? ESCAPE '\\'", "%"+escapeLike(filter.Name)+"%")
	}

	err := db.Order("name ASC, semester ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
