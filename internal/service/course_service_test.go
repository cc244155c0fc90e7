package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"course-timetable/backend/internal/dto"
	"course-timetable/backend/internal/model"
)

func TestParseCourseQuery(t *testing.T) {
	if f := parseCourseQuery(" 3 "); f.Semester == nil || *f.Semester != 3 || f.Name != "" {
		t.Errorf("纯数字应按学期过滤: %+v", f)
	}
	if f := parseCourseQuery("BCA"); f.Semester != nil || f.Name != "BCA" {
		t.Errorf("非数字应按名称过滤: %+v", f)
	}
	if f := parseCourseQuery("-3"); f.Semester != nil || f.Name != "-3" {
		t.Errorf("带符号不视为学期: %+v", f)
	}
	if f := parseCourseQuery(""); f.Semester != nil || f.Name != "" {
		t.Errorf("空查询不过滤: %+v", f)
	}
}

func TestCourseService_CRUD(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: " BCA ", Semester: 3, Classroom: strPtr("  ")})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if created.Name != "BCA" || created.Classroom != nil {
		t.Errorf("应去除空白且空教室视为未设置: %+v", created)
	}
	_, _ = f.svc.Course.Create(ctx, &dto.CreateCourseRequest{Name: "MCA", Semester: 1})

	bySem, _ := f.svc.Course.List(ctx, &dto.CourseListRequest{Query: "3"})
	if len(bySem) != 1 || bySem[0].Name != "BCA" {
		t.Errorf("按学期过滤结果不符: %+v", bySem)
	}
	byName, _ := f.svc.Course.List(ctx, &dto.CourseListRequest{Query: "mc"})
	if len(byName) != 1 || byName[0].Name != "MCA" {
		t.Errorf("按名称过滤结果不符: %+v", byName)
	}

	updated, err := f.svc.Course.Update(ctx, created.ID, &dto.UpdateCourseRequest{Classroom: strPtr("R-2")})
	if err != nil || updated.Classroom == nil || *updated.Classroom != "R-2" {
		t.Fatalf("更新失败: %+v, %v", updated, err)
	}

	if err := f.svc.Course.Delete(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := f.svc.Course.GetByID(ctx, created.ID); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，得到 %v", err)
	}
	if f.cache.revisions[globalScope] == 0 {
		t.Error("课程写操作应递增全局修订号")
	}
}

func TestCourseService_SemesterRaiseRequiresTracks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c := f.course("BCA", 1)
	f.subject(c, "English", nil, true, nil)
	maths := f.subject(c, "Maths", nil, false, nil)

	sem := 3
	_, err := f.svc.Course.Update(ctx, c.CourseID, &dto.UpdateCourseRequest{Semester: &sem})
	if !errors.Is(err, ErrCourseSubjectsNeedTrack) {
		t.Fatalf("期望 ErrCourseSubjectsNeedTrack，得到 %v", err)
	}
	if !strings.Contains(err.Error(), "Maths") || strings.Contains(err.Error(), "English") {
		t.Errorf("错误信息应只列出缺方向的非公共课: %v", err)
	}
	if got, _ := f.svc.Course.GetByID(ctx, c.CourseID); got.Semester != 1 {
		t.Errorf("被拒绝的更新不应落库，学期 = %d", got.Semester)
	}

	// 学期不变或仍为 1 时不检查
	one := 1
	if _, err := f.svc.Course.Update(ctx, c.CourseID, &dto.UpdateCourseRequest{Semester: &one, Classroom: strPtr("R-1")}); err != nil {
		t.Errorf("学期未变化时不应校验方向: %v", err)
	}

	maths.Track = trackPtr(model.TrackWeb)
	_ = f.repo.Subject.Update(ctx, maths)
	updated, err := f.svc.Course.Update(ctx, c.CourseID, &dto.UpdateCourseRequest{Semester: &sem})
	if err != nil || updated.Semester != 3 {
		t.Fatalf("补全方向后应允许调整学期: %+v, %v", updated, err)
	}
}

func TestCourseService_DeleteCascades(t *testing.T) {
	s := newScenario()
	ctx := context.Background()
	if err := s.f.svc.Course.Delete(ctx, s.c1.CourseID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := s.f.svc.Entry.GetByID(ctx, s.a.EntryID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("课程删除后条目应被删除，得到 %v", err)
	}
	if _, err := s.f.svc.Subject.GetByID(ctx, s.x.SubjectID); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("课程删除后科目应被删除，得到 %v", err)
	}
}

func TestCourseService_PrintDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.course("BCA", 2)

	empty, err := f.svc.Course.GetPrintDate(ctx, c.CourseID)
	if err != nil || empty.EffectiveDate != nil {
		t.Fatalf("未设置时应返回空日期: %+v, %v", empty, err)
	}

	set, err := f.svc.Course.UpsertPrintDate(ctx, c.CourseID, &dto.UpsertPrintDateRequest{EffectiveDate: strPtr("2025-07-01")})
	if err != nil || set.EffectiveDate == nil || *set.EffectiveDate != "2025-07-01" {
		t.Fatalf("设置失败: %+v, %v", set, err)
	}
	got, _ := f.svc.Course.GetPrintDate(ctx, c.CourseID)
	if got.EffectiveDate == nil || *got.EffectiveDate != "2025-07-01" {
		t.Errorf("读取结果不符: %+v", got)
	}

	cleared, _ := f.svc.Course.UpsertPrintDate(ctx, c.CourseID, &dto.UpsertPrintDateRequest{})
	if cleared.EffectiveDate != nil {
		t.Errorf("应清除日期: %+v", cleared)
	}

	if _, err := f.svc.Course.GetPrintDate(ctx, "nope"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，得到 %v", err)
	}
}
