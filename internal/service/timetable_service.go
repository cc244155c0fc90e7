package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-timetable/backend/config"
	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/model"
	"course-timetable/backend/internal/repository"
)

// displayDateLayout 页面与导出中展示的日期格式
const displayDateLayout = "02-01-2006"

// CourseTimetable 单门课程渲染所需的全部数据
type CourseTimetable struct {
	Course        model.Course
	EffectiveDate *time.Time
	Grid          *Grid
}

// Title 如 "Timetable for BCA (Sem 3)"
func (t *CourseTimetable) Title() string {
	return "Timetable for " + t.Course.DisplayName()
}

// TimetableService 课表读取与交互视图
type TimetableService interface {
	// Load 读取课程、生效日期与全部条目并投影为网格
	Load(ctx context.Context, courseID string) (*CourseTimetable, error)
	// View 交互式网格视图
	View(ctx context.Context, courseID string) (*dto.TimetableViewResponse, error)
}

type timetableService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) TimetableService {
	loc, err := time.LoadLocation(cfg.Export.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &timetableService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

func (s *timetableService) Load(ctx context.Context, courseID string) (*CourseTimetable, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("get course failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	entries, err := s.repo.Entry.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("list course entries failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	t := &CourseTimetable{Course: *course, Grid: ProjectGrid(entries)}

	pd, err := s.repo.PrintDate.GetByCourse(ctx, courseID)
	switch {
	case err == nil:
		t.EffectiveDate = pd.EffectiveDate
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		s.logger.Error("get print date failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	return t, nil
}

func (s *timetableService) View(ctx context.Context, courseID string) (*dto.TimetableViewResponse, error) {
	t, err := s.Load(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return BuildView(t, s.now().In(s.loc)), nil
}

// BuildView 将网格转换为交互视图；每格列出全部条目，空格为单个 "-"
func BuildView(t *CourseTimetable, now time.Time) *dto.TimetableViewResponse {
	resp := &dto.TimetableViewResponse{
		Course:          toCourseBrief(&t.Course),
		Classroom:       t.Course.Classroom,
		CurrentDate:     now.Format(displayDateLayout),
		Days:            make([]string, len(model.Weekdays)),
		Rows:            make([]dto.TimetableRow, 0, len(t.Grid.Slots)),
		SubjectsFaculty: make([]dto.SubjectFacultyEntry, 0, len(t.Grid.SubjectFaculty)),
	}
	if t.EffectiveDate != nil {
		d := t.EffectiveDate.Format(displayDateLayout)
		resp.EffectiveFrom = &d
	}
	for i, day := range model.Weekdays {
		resp.Days[i] = string(day)
	}

	for _, slot := range t.Grid.Slots {
		row := dto.TimetableRow{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
			Label:     SlotLabel(slot),
			Cells:     make([][]dto.Cell, len(model.Weekdays)),
		}
		for i, day := range model.Weekdays {
			entries := t.Grid.Entries(day, slot)
			if len(entries) == 0 {
				row.Cells[i] = []dto.Cell{{Text: EmptyCell}}
				continue
			}
			cells := make([]dto.Cell, 0, len(entries))
			for _, e := range entries {
				cells = append(cells, dto.Cell{
					EntryID: e.EntryID,
					Text:    FormatCell(e),
					IsBreak: e.IsBreak,
					IsLab:   e.IsLab,
				})
			}
			row.Cells[i] = cells
		}
		resp.Rows = append(resp.Rows, row)
	}

	for _, sf := range t.Grid.SubjectFaculty {
		resp.SubjectsFaculty = append(resp.SubjectsFaculty, dto.SubjectFacultyEntry{
			Subject: sf.Subject,
			Faculty: sf.Faculty,
		})
	}
	return resp
}
