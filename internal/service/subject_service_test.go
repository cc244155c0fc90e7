package service

import (
	"context"
	"errors"
	"testing"

	"course-timetable/backend/internal/dto"
)

func TestSubjectService_TrackRequired(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := f.course("BCA", 1)
	later := f.course("BCA", 3)

	tests := []struct {
		name     string
		courseID string
		track    *string
		common   bool
		wantErr  error
	}{
		{"first semester without track", first.CourseID, nil, false, nil},
		{"later semester common", later.CourseID, nil, true, nil},
		{"later semester with track", later.CourseID, strPtr("Web"), false, nil},
		{"later semester without track", later.CourseID, nil, false, ErrSubjectTrackRequired},
		{"later semester empty track", later.CourseID, strPtr(""), false, ErrSubjectTrackRequired},
		{"invalid track", later.CourseID, strPtr("Cloud"), false, ErrInvalidTrack},
		{"unknown course", "nope", nil, false, ErrCourseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Subject.Create(ctx, &dto.CreateSubjectRequest{
				Name: "Maths", CourseID: tt.courseID, Track: tt.track, IsCommon: tt.common,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，得到 %v", tt.wantErr, err)
			}
		})
	}
}

func TestSubjectService_UpdateRechecksTrack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.course("BCA", 3)
	rao := f.faculty("Rao")

	created, err := f.svc.Subject.Create(ctx, &dto.CreateSubjectRequest{
		Name: "Maths", CourseID: c.CourseID, IsCommon: true, FacultyID: &rao.FacultyID,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if created.Faculty == nil || created.Faculty.Name != "Rao" || created.Course.Semester != 3 {
		t.Errorf("响应不符: %+v", created)
	}

	notCommon := false
	if _, err := f.svc.Subject.Update(ctx, created.ID, &dto.UpdateSubjectRequest{IsCommon: &notCommon}); !errors.Is(err, ErrSubjectTrackRequired) {
		t.Errorf("改为非公共课且无方向应失败，得到 %v", err)
	}

	updated, err := f.svc.Subject.Update(ctx, created.ID, &dto.UpdateSubjectRequest{
		IsCommon: &notCommon, Track: strPtr("AI-ML"), FacultyID: strPtr(""),
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Track == nil || *updated.Track != "AI-ML" || updated.Faculty != nil {
		t.Errorf("响应不符: %+v", updated)
	}
}
