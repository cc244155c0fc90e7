package service

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"course-timetable/backend/internal/model"
)

// ── ICS 日历导出 ──────────────────────────────────────────
//
// 每个非课间休息、可展示的条目生成一个每周重复的 VEVENT：
//   - 首次发生在生效日期所在周（无生效日期时为 now 所在周）的对应星期
//   - SUMMARY 取单元格文本首行，DESCRIPTION 为教师
//   - LOCATION：实验为实验室编号，其余为课程教室
//   - DTSTART/DTEND 写本地时间并带 TZID，每周重复跨夏令时不漂移
// ─────────────────────────────────────────────────────────────

const (
	icsProductID   = "-//course-timetable//timetable export//EN"
	icsLocalLayout = "20060102T150405"
	icsUTCLayout   = "20060102T150405Z"
)

// RenderICS 渲染课表日历；loc 为课表所在时区
func RenderICS(t *CourseTimetable, loc *time.Location, now time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(t.Title())
	cal.SetXWRTimezone(loc.String())

	anchor := now.In(loc)
	if t.EffectiveDate != nil {
		y, m, d := t.EffectiveDate.Date()
		anchor = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	monday := weekMonday(anchor)
	stamp := now.UTC()

	for _, slot := range t.Grid.Slots {
		for _, day := range model.Weekdays {
			for _, e := range t.Grid.Entries(day, slot) {
				if e.IsBreak || FormatCell(e) == EmptyCell {
					continue
				}
				date := monday.AddDate(0, 0, day.Index())

				event := cal.AddEvent(fmt.Sprintf("%s@course-timetable", e.EntryID))
				event.SetDtStampTime(stamp)
				setLocalTime(event, ics.ComponentPropertyDtStart, e.StartTime.On(date))
				setLocalTime(event, ics.ComponentPropertyDtEnd, e.EndTime.On(date))
				event.SetSummary(CellTitle(e))
				event.AddRrule("FREQ=WEEKLY")
				if e.Faculty != nil {
					event.SetDescription("Faculty: " + e.Faculty.Name)
				}
				if where := eventLocation(t, e); where != "" {
					event.SetLocation(where)
				}
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

// setLocalTime 以 t 所在时区的墙上时间写入时间属性；UTC 仍写 Z 形式
func setLocalTime(event *ics.VEvent, prop ics.ComponentProperty, t time.Time) {
	if t.Location() == time.UTC {
		event.SetProperty(prop, t.Format(icsUTCLayout))
		return
	}
	tzid := &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{t.Location().String()}}
	event.SetProperty(prop, t.Format(icsLocalLayout), tzid)
}

// weekMonday 所在周的周一零点
func weekMonday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func eventLocation(t *CourseTimetable, e *model.TimetableEntry) string {
	if e.IsLab && e.LabChoice != nil {
		return e.LabChoice.Label()
	}
	if t.Course.Classroom != nil {
		return *t.Course.Classroom
	}
	return ""
}
