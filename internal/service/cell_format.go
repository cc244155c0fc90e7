package service

import (
	"fmt"
	"strings"

	"course-timetable/backend/internal/model"
)

// EmptyCell 空单元格 / 无法展示的条目
const EmptyCell = "-"

// FormatCell 课表单元格文本，交互视图、PDF、Excel 与日历导出共用
//
//	nil        → "-"
//	课间休息   → "Break"
//	实验       → "Lab {n}\n{科目}[ ({方向})]"
//	完整授课   → "{科目}[ ({方向})]\n({教师})"
//	其他       → "-"
func FormatCell(e *model.TimetableEntry) string {
	switch {
	case e == nil:
		return EmptyCell
	case e.IsBreak:
		return "Break"
	case e.IsLab:
		label := "Lab"
		if e.LabChoice != nil {
			label = e.LabChoice.Label()
		}
		if e.Subject == nil {
			return label
		}
		return label + "\n" + subjectText(e.Subject)
	case e.Subject != nil && e.Faculty != nil:
		return fmt.Sprintf("%s\n(%s)", subjectText(e.Subject), e.Faculty.Name)
	default:
		return EmptyCell
	}
}

// CellTitle 单元格文本首行（日历事件标题）
func CellTitle(e *model.TimetableEntry) string {
	text := FormatCell(e)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func subjectText(s *model.Subject) string {
	if s.Track != nil && *s.Track != "" {
		return fmt.Sprintf("%s (%s)", s.Name, *s.Track)
	}
	return s.Name
}

// SlotLabel 行标签，如 "09:00 AM - 10:00 AM"
func SlotLabel(slot Slot) string {
	return slot.Start.Format12h() + " - " + slot.End.Format12h()
}
