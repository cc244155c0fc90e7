package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/model"
	"course-timetable/backend/internal/repository"
)

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectTrackRequired = errors.New("please specify a track (AI-ML or Web) for this subject in later semesters")
	ErrInvalidTrack         = errors.New("track must be one of AI-ML, Web")
)

// SubjectService 科目业务接口
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type subjectService struct {
	repo   *repository.Repository
	inv    *invalidator
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, inv *invalidator, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, inv: inv, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	course, err := s.getCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	subject := &model.Subject{
		Name:     strings.TrimSpace(req.Name),
		CourseID: course.CourseID,
		IsCommon: req.IsCommon,
	}
	if subject.Track, err = parseTrack(req.Track); err != nil {
		return nil, err
	}
	if subject.FacultyID, err = s.resolveFaculty(ctx, req.FacultyID); err != nil {
		return nil, err
	}
	if subject.Track == nil && subject.TrackRequired(course.Semester) {
		return nil, ErrSubjectTrackRequired
	}

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("create subject failed", zap.Error(err))
		return nil, err
	}
	s.inv.Global(ctx)

	return s.reload(ctx, subject.SubjectID)
}

// ────────────────────── GetByID / List ──────────────────────

func (s *subjectService) GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx, repository.SubjectFilter{
		CourseID: req.CourseID,
		Track:    req.Track,
		IsCommon: req.IsCommon,
	})
	if err != nil {
		s.logger.Error("list subjects failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *subjectService) Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsCommon != nil {
		subject.IsCommon = *req.IsCommon
	}
	if req.Track != nil {
		if subject.Track, err = parseTrack(req.Track); err != nil {
			return nil, err
		}
	}
	if req.FacultyID != nil {
		if subject.FacultyID, err = s.resolveFaculty(ctx, req.FacultyID); err != nil {
			return nil, err
		}
		subject.Faculty = nil
	}

	course := subject.Course
	if course == nil {
		if course, err = s.getCourse(ctx, subject.CourseID); err != nil {
			return nil, err
		}
	}
	if subject.Track == nil && subject.TrackRequired(course.Semester) {
		return nil, ErrSubjectTrackRequired
	}

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("update subject failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.inv.Global(ctx)

	return s.reload(ctx, id)
}

// ────────────────────── Delete ──────────────────────

// Delete 引用该科目的课表条目保留，subject 置空
func (s *subjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.getSubject(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		s.logger.Error("delete subject failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.inv.Global(ctx)
	return nil
}

// ── 内部方法 ──

func (s *subjectService) reload(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subject, err := s.getSubject(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) getSubject(ctx context.Context, id string) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("get subject failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// resolveFaculty 空字符串表示清空；非空时教师必须存在
func (s *subjectService) resolveFaculty(ctx context.Context, id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	if _, err := s.repo.Faculty.GetByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}
	v := *id
	return &v, nil
}

// parseTrack 空字符串表示未设置
func parseTrack(s *string) (*model.Track, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t := model.Track(*s)
	if !t.Valid() {
		return nil, ErrInvalidTrack
	}
	return &t, nil
}

func trackString(t *model.Track) *string {
	if t == nil {
		return nil
	}
	v := string(*t)
	return &v
}

func toSubjectResponse(sub *model.Subject) *dto.SubjectResponse {
	resp := &dto.SubjectResponse{
		ID:        sub.SubjectID,
		Name:      sub.Name,
		Course:    dto.CourseBrief{ID: sub.CourseID},
		Faculty:   toFacultyBrief(sub.Faculty),
		Track:     trackString(sub.Track),
		IsCommon:  sub.IsCommon,
		CreatedAt: formatTimestamp(sub.CreatedAt),
		UpdatedAt: formatTimestamp(sub.UpdatedAt),
	}
	if sub.Course != nil {
		resp.Course = toCourseBrief(sub.Course)
	}
	return resp
}

func toSubjectBrief(sub *model.Subject) *dto.SubjectBrief {
	if sub == nil {
		return nil
	}
	return &dto.SubjectBrief{
		ID:       sub.SubjectID,
		Name:     sub.Name,
		Track:    trackString(sub.Track),
		IsCommon: sub.IsCommon,
	}
}
