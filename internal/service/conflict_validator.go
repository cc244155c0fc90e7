package service

import (
	"context"
	"errors"
	"fmt"

	"course-timetable/backend/internal/model"
	"course-timetable/backend/internal/repository"
)

// ── 冲突校验错误 ──

// ConflictKind 冲突类型
type ConflictKind string

const (
	KindIncompleteLecture   ConflictKind = "IncompleteLecture"
	KindMissingLabChoice    ConflictKind = "MissingLabChoice"
	KindInvalidTimeRange    ConflictKind = "InvalidTimeRange"
	KindCourseSlotConflict  ConflictKind = "CourseSlotConflict"
	KindFacultyDoubleBooked ConflictKind = "FacultyDoubleBooked"
)

var (
	ErrIncompleteLecture   = errors.New("a lecture must have both a subject and a faculty unless it's a break or lab")
	ErrMissingLabChoice    = errors.New("please select a lab for the lab session")
	ErrInvalidTimeRange    = errors.New("start time must be before end time")
	ErrCourseSlotConflict  = errors.New("time slot already booked for this course in the same track")
	ErrFacultyDoubleBooked = errors.New("faculty is already allocated to another course at this time")
)

var kindSentinels = map[ConflictKind]error{
	KindIncompleteLecture:   ErrIncompleteLecture,
	KindMissingLabChoice:    ErrMissingLabChoice,
	KindInvalidTimeRange:    ErrInvalidTimeRange,
	KindCourseSlotConflict:  ErrCourseSlotConflict,
	KindFacultyDoubleBooked: ErrFacultyDoubleBooked,
}

// ConflictError 候选条目被拒绝的原因
type ConflictError struct {
	Kind    ConflictKind
	Message string
	Day     model.Weekday
	Start   model.ClockTime
	End     model.ClockTime
	Faculty string // 仅 FacultyDoubleBooked
}

func (e *ConflictError) Error() string { return e.Message }

// Unwrap 返回对应的哨兵错误，便于 errors.Is 判断
func (e *ConflictError) Unwrap() error { return kindSentinels[e.Kind] }

func newConflict(kind ConflictKind, c *model.TimetableEntry, msg string) *ConflictError {
	return &ConflictError{Kind: kind, Message: msg, Day: c.Day, Start: c.StartTime, End: c.EndTime}
}

// ── 纯函数校验 ──

// CheckConflicts 按固定顺序校验候选条目，遇到第一个错误即返回
//
// courseDay 为同课程同一天的已有条目，facultyDay 为同教师同一天（跨课程）的已有条目。
// 两者可以是超集：重叠判断与排除自身在此处重新执行。
// 候选条目的 Subject / Faculty 关联需已加载。
func CheckConflicts(c *model.TimetableEntry, courseDay, facultyDay []model.TimetableEntry) error {
	lecture := c.IsLecture()

	if lecture && (c.SubjectID == nil || c.FacultyID == nil) {
		return newConflict(KindIncompleteLecture, c, ErrIncompleteLecture.Error())
	}
	if c.IsLab && c.LabChoice == nil {
		return newConflict(KindMissingLabChoice, c, ErrMissingLabChoice.Error())
	}
	if c.StartTime >= c.EndTime {
		return newConflict(KindInvalidTimeRange, c,
			fmt.Sprintf("start time %s must be before end time %s", c.StartTime, c.EndTime))
	}

	if lecture {
		for i := range courseDay {
			e := &courseDay[i]
			if !sameSlotScope(c, e) || !e.IsLecture() || !e.Overlaps(c.StartTime, c.EndTime) {
				continue
			}
			if !isCommon(c) && !model.SameTrack(entryTrack(c), entryTrack(e)) {
				continue
			}
			return newConflict(KindCourseSlotConflict, c, fmt.Sprintf(
				"Time slot %s-%s on %s is already booked for this course in the same track.",
				c.StartTime, c.EndTime, c.Day))
		}
	}

	if c.FacultyID != nil {
		for i := range facultyDay {
			e := &facultyDay[i]
			if isSelf(c, e) || e.Day != c.Day || e.FacultyID == nil || *e.FacultyID != *c.FacultyID {
				continue
			}
			if !e.Overlaps(c.StartTime, c.EndTime) {
				continue
			}
			name := facultyName(c, e)
			err := newConflict(KindFacultyDoubleBooked, c, fmt.Sprintf(
				"Faculty %s is already allocated to another course at this time!", name))
			err.Faculty = name
			return err
		}
	}

	return nil
}

func isSelf(c, e *model.TimetableEntry) bool {
	return c.EntryID != "" && c.EntryID == e.EntryID
}

func sameSlotScope(c, e *model.TimetableEntry) bool {
	return !isSelf(c, e) && e.CourseID == c.CourseID && e.Day == c.Day
}

func isCommon(e *model.TimetableEntry) bool {
	return e.Subject != nil && e.Subject.IsCommon
}

// entryTrack 条目所属方向；科目被删除或未加载时视为未设置
func entryTrack(e *model.TimetableEntry) *model.Track {
	if e.Subject == nil {
		return nil
	}
	return e.Subject.Track
}

func facultyName(c, e *model.TimetableEntry) string {
	if c.Faculty != nil {
		return c.Faculty.Name
	}
	if e.Faculty != nil {
		return e.Faculty.Name
	}
	return *c.FacultyID
}

// ── 基于数据访问的校验 ──

// ConflictValidator 从数据源读取重叠条目并执行 CheckConflicts
type ConflictValidator struct{}

// Validate 校验候选条目；candidate.EntryID 非空时（更新）从比较集合中排除自身
func (ConflictValidator) Validate(ctx context.Context, repo *repository.Repository, c *model.TimetableEntry) error {
	var courseDay, facultyDay []model.TimetableEntry
	var err error

	// 结构性错误无需查询
	if err := CheckConflicts(c, nil, nil); err != nil {
		return err
	}

	if c.IsLecture() {
		courseDay, err = repo.Entry.ListCourseOverlapping(ctx, c.CourseID, c.Day, c.StartTime, c.EndTime, c.EntryID)
		if err != nil {
			return fmt.Errorf("list course overlaps: %w", err)
		}
	}
	if c.FacultyID != nil {
		facultyDay, err = repo.Entry.ListFacultyOverlapping(ctx, *c.FacultyID, c.Day, c.StartTime, c.EndTime, c.EntryID)
		if err != nil {
			return fmt.Errorf("list faculty overlaps: %w", err)
		}
	}

	return CheckConflicts(c, courseDay, facultyDay)
}
