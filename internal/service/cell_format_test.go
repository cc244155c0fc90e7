package service

import (
	"testing"

	"course-timetable/backend/internal/model"
)

func TestFormatCell(t *testing.T) {
	lab3 := model.Lab3
	aiml := model.TrackAIML
	ml := &model.Subject{Name: "ML", Track: &aiml}
	maths := &model.Subject{Name: "Maths"}
	rao := &model.Faculty{Name: "Dr. Rao"}

	tests := []struct {
		name  string
		entry *model.TimetableEntry
		want  string
	}{
		{"absent", nil, "-"},
		{"break", &model.TimetableEntry{IsBreak: true, Subject: maths, Faculty: rao}, "Break"},
		{"lab with track", &model.TimetableEntry{IsLab: true, LabChoice: &lab3, Subject: ml}, "Lab 3\nML (AI-ML)"},
		{"lab without track", &model.TimetableEntry{IsLab: true, LabChoice: &lab3, Subject: maths, Faculty: rao}, "Lab 3\nMaths"},
		{"lab without subject", &model.TimetableEntry{IsLab: true, LabChoice: &lab3}, "Lab 3"},
		{"lecture", &model.TimetableEntry{Subject: maths, Faculty: rao}, "Maths\n(Dr. Rao)"},
		{"lecture with track", &model.TimetableEntry{Subject: ml, Faculty: rao}, "ML (AI-ML)\n(Dr. Rao)"},
		{"lecture missing faculty", &model.TimetableEntry{Subject: maths}, "-"},
		{"lecture missing subject", &model.TimetableEntry{Faculty: rao}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCell(tt.entry); got != tt.want {
				t.Errorf("FormatCell() = %q, want %q", got, tt.want)
			}
			if again := FormatCell(tt.entry); again != tt.want {
				t.Errorf("FormatCell() 非确定性: %q", again)
			}
		})
	}
}

func TestCellTitle(t *testing.T) {
	e := &model.TimetableEntry{Subject: &model.Subject{Name: "Maths"}, Faculty: &model.Faculty{Name: "Rao"}}
	if got := CellTitle(e); got != "Maths" {
		t.Errorf("CellTitle() = %q", got)
	}
	if got := CellTitle(&model.TimetableEntry{IsBreak: true}); got != "Break" {
		t.Errorf("CellTitle() = %q", got)
	}
}

func TestSlotLabel(t *testing.T) {
	if got := SlotLabel(slot("09:00", "13:30")); got != "09:00 AM - 01:30 PM" {
		t.Errorf("SlotLabel() = %q", got)
	}
}
