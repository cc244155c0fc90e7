package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/model"
	"course-timetable/backend/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound          = errors.New("course not found")
	ErrCourseSubjectsNeedTrack = errors.New("assign a track (AI-ML or Web) to every non-common subject before moving past semester 1")
)

// CourseService 课程业务接口（含课表生效日期）
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
	GetPrintDate(ctx context.Context, courseID string) (*dto.PrintDateResponse, error)
	UpsertPrintDate(ctx context.Context, courseID string, req *dto.UpsertPrintDateRequest) (*dto.PrintDateResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	inv    *invalidator
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, inv *invalidator, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, inv: inv, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &model.Course{
		Name:      strings.TrimSpace(req.Name),
		Semester:  req.Semester,
		Classroom: normalizeOptional(req.Classroom),
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("create course failed", zap.Error(err))
		return nil, err
	}
	s.inv.Global(ctx)

	return toCourseResponse(course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx, parseCourseQuery(req.Query))
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// parseCourseQuery 纯数字按学期精确匹配，其余按名称包含匹配
func parseCourseQuery(q string) repository.CourseFilter {
	q = strings.TrimSpace(q)
	if q == "" {
		return repository.CourseFilter{}
	}
	if sem, err := strconv.Atoi(q); err == nil && isDigits(q) {
		return repository.CourseFilter{Semester: &sem}
	}
	return repository.CourseFilter{Name: q}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Semester != nil && *req.Semester != course.Semester {
		if err := s.checkSubjectTracks(ctx, course.CourseID, *req.Semester); err != nil {
			return nil, err
		}
		course.Semester = *req.Semester
	}
	if req.Classroom != nil {
		course.Classroom = normalizeOptional(req.Classroom)
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("update course failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.inv.Global(ctx)

	return toCourseResponse(course), nil
}

// checkSubjectTracks 学期调整到需要方向时，已有的非公共课必须都已指定方向
func (s *courseService) checkSubjectTracks(ctx context.Context, courseID string, semester int) error {
	if semester <= 1 {
		return nil
	}
	notCommon := false
	subjects, err := s.repo.Subject.List(ctx, repository.SubjectFilter{CourseID: courseID, IsCommon: &notCommon})
	if err != nil {
		s.logger.Error("list subjects failed", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	var missing []string
	for _, sub := range subjects {
		if sub.Track == nil && sub.TrackRequired(semester) {
			missing = append(missing, sub.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrCourseSubjectsNeedTrack, strings.Join(missing, ", "))
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.getCourse(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("delete course failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.inv.Global(ctx)
	s.inv.Course(ctx, id)
	return nil
}

// ────────────────────── PrintDate ──────────────────────

func (s *courseService) GetPrintDate(ctx context.Context, courseID string) (*dto.PrintDateResponse, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	pd, err := s.repo.PrintDate.GetByCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.PrintDateResponse{CourseID: courseID}, nil
		}
		s.logger.Error("get print date failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return toPrintDateResponse(pd), nil
}

func (s *courseService) UpsertPrintDate(ctx context.Context, courseID string, req *dto.UpsertPrintDateRequest) (*dto.PrintDateResponse, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return nil, err
	}

	pd := &model.TimetablePrintDate{CourseID: courseID}
	if req.EffectiveDate != nil && *req.EffectiveDate != "" {
		d, err := time.Parse(dateLayout, *req.EffectiveDate)
		if err != nil {
			return nil, err
		}
		pd.EffectiveDate = &d
	}

	if err := s.repo.PrintDate.Upsert(ctx, pd); err != nil {
		s.logger.Error("upsert print date failed", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	s.inv.Course(ctx, courseID)

	return toPrintDateResponse(pd), nil
}

// ── 内部方法 ──

func (s *courseService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("get course failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// normalizeOptional 去除首尾空白，空字符串视为未设置
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:        c.CourseID,
		Name:      c.Name,
		Semester:  c.Semester,
		Classroom: c.Classroom,
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestamp(c.UpdatedAt),
	}
}

func toCourseBrief(c *model.Course) dto.CourseBrief {
	return dto.CourseBrief{ID: c.CourseID, Name: c.Name, Semester: c.Semester}
}

func toPrintDateResponse(pd *model.TimetablePrintDate) *dto.PrintDateResponse {
	resp := &dto.PrintDateResponse{CourseID: pd.CourseID}
	if pd.EffectiveDate != nil {
		d := pd.EffectiveDate.Format(dateLayout)
		resp.EffectiveDate = &d
	}
	return resp
}
