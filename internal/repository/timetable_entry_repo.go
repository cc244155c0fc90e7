package repository

import (
	"context"

	"gorm.io/gorm"

	"course-timetable/backend/internal/model"
	pkgerrors "course-timetable/backend/pkg/errors"
)

// EntryFilter 课表条目列表过滤条件
type EntryFilter struct {
	CourseID  string
	Day       string
	FacultyID string
	IsBreak   *bool
	IsLab     *bool
	LabChoice string
}

// TimetableEntryRepository 课表条目数据访问接口
type TimetableEntryRepository interface {
	Create(ctx context.Context, entry *model.TimetableEntry) error
	GetByID(ctx context.Context, id string) (*model.TimetableEntry, error)
	List(ctx context.Context, filter EntryFilter) ([]model.TimetableEntry, error)
	// ListByCourse 按开始时间升序，同一开始时间按插入顺序
	ListByCourse(ctx context.Context, courseID string) ([]model.TimetableEntry, error)
	// ListCourseOverlapping 同一课程同一天与 [start, end) 重叠的条目，excludeID 非空时排除该条目
	ListCourseOverlapping(ctx context.Context, courseID string, day model.Weekday, start, end model.ClockTime, excludeID string) ([]model.TimetableEntry, error)
	// ListFacultyOverlapping 同一教师（跨课程）同一天与 [start, end) 重叠的条目
	ListFacultyOverlapping(ctx context.Context, facultyID string, day model.Weekday, start, end model.ClockTime, excludeID string) ([]model.TimetableEntry, error)
	// Update 乐观锁更新，version 不匹配返回 ErrOptimisticLock
	Update(ctx context.Context, entry *model.TimetableEntry) error
	Delete(ctx context.Context, id string) error
}

// dayOrder 按课程、周一至周六、开始时间排序
const dayOrder = "course_id ASC, array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday']::varchar[], day) ASC, start_time ASC, created_at ASC"

type timetableEntryRepo struct {
	db *gorm.DB
}

// NewTimetableEntryRepo 创建 TimetableEntryRepository 实例
func NewTimetableEntryRepo(db *gorm.DB) TimetableEntryRepository {
	return &timetableEntryRepo{db: db}
}

func (r *timetableEntryRepo) Create(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).Omit("Course", "Subject", "Faculty").Create(entry).Error
}

func (r *timetableEntryRepo) GetByID(ctx context.Context, id string) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Subject").
		Preload("Faculty").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timetableEntryRepo) List(ctx context.Context, filter EntryFilter) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	db := r.db.WithContext(ctx)

	if filter.CourseID != "" {
		db = db.Where("course_id = ?", filter.CourseID)
	}
	if filter.Day != "" {
		db = db.Where("day = ?", filter.Day)
	}
	if filter.FacultyID != "" {
		db = db.Where("faculty_id = ?", filter.FacultyID)
	}
	if filter.IsBreak != nil {
		db = db.Where("is_break = ?", *filter.IsBreak)
	}
	if filter.IsLab != nil {
		db = db.Where("is_lab = ?", *filter.IsLab)
	}
	if filter.LabChoice != "" {
		db = db.Where("lab_choice = ?", filter.LabChoice)
	}

	err := db.Preload("Course").Preload("Subject").Preload("Faculty").
		Order(dayOrder).
		Find(&entries).Error
	return entries, err
}

func (r *timetableEntryRepo) ListByCourse(ctx context.Context, courseID string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Faculty").
		Where("course_id = ?", courseID).
		Order("start_time ASC, created_at ASC, entry_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableEntryRepo) ListCourseOverlapping(ctx context.Context, courseID string, day model.Weekday, start, end model.ClockTime, excludeID string) ([]model.TimetableEntry, error) {
	db := r.db.WithContext(ctx).Where("course_id = ?", courseID)
	return r.listOverlapping(db, day, start, end, excludeID)
}

func (r *timetableEntryRepo) ListFacultyOverlapping(ctx context.Context, facultyID string, day model.Weekday, start, end model.ClockTime, excludeID string) ([]model.TimetableEntry, error) {
	db := r.db.WithContext(ctx).Where("faculty_id = ?", facultyID)
	return r.listOverlapping(db, day, start, end, excludeID)
}

func (r *timetableEntryRepo) listOverlapping(db *gorm.DB, day model.Weekday, start, end model.ClockTime, excludeID string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	db = db.Where("day = ? AND start_time < ? AND end_time > ?", day, end, start)
	if excludeID != "" {
		db = db.Where("entry_id <> ?", excludeID)
	}
	err := db.Preload("Course").Preload("Subject").Preload("Faculty").
		Order("start_time ASC, created_at ASC, entry_id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableEntryRepo) Update(ctx context.Context, entry *model.TimetableEntry) error {
	oldVersion := entry.Version
	result := r.db.WithContext(ctx).
		Model(&model.TimetableEntry{}).
		Where("entry_id = ? AND version = ?", entry.EntryID, oldVersion).
		Updates(map[string]interface{}{
			"course_id":  entry.CourseID,
			"day":        entry.Day,
			"start_time": entry.StartTime,
			"end_time":   entry.EndTime,
			"subject_id": entry.SubjectID,
			"faculty_id": entry.FacultyID,
			"is_break":   entry.IsBreak,
			"is_lab":     entry.IsLab,
			"lab_choice": entry.LabChoice,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	entry.Version = oldVersion + 1
	return nil
}

func (r *timetableEntryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.TimetableEntry{}).Error
}
