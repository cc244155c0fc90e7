package service

import (
	"sort"

	"course-timetable/backend/internal/model"
)

// Slot 时间段（行键），跨星期共享
type Slot struct {
	Start model.ClockTime
	End   model.ClockTime
}

func (s Slot) less(o Slot) bool {
	if s.Start != o.Start {
		return s.Start < o.Start
	}
	return s.End < o.End
}

// SubjectFaculty 科目 → 教师（首次出现优先）
type SubjectFaculty struct {
	Subject string
	Faculty string
}

// Grid 单门课程的 星期 × 时间段 投影
type Grid struct {
	// ByDay 星期 → 时间段 → 条目；同一格可能有多条，全部保留
	ByDay map[model.Weekday]map[Slot][]*model.TimetableEntry
	// Slots 所有星期出现过的时间段，按 (开始, 结束) 升序
	Slots []Slot
	// SubjectFaculty 按出现顺序，同名科目只记录第一次遇到的教师
	SubjectFaculty []SubjectFaculty
}

// ProjectGrid 将课程的条目列表投影为网格
// 条目先按开始时间稳定排序，开始时间相同时保持输入顺序
func ProjectGrid(entries []model.TimetableEntry) *Grid {
	ordered := make([]*model.TimetableEntry, len(entries))
	for i := range entries {
		ordered[i] = &entries[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime < ordered[j].StartTime
	})

	g := &Grid{ByDay: make(map[model.Weekday]map[Slot][]*model.TimetableEntry)}
	seenSlot := make(map[Slot]bool)
	seenSubject := make(map[string]bool)

	for _, e := range ordered {
		slot := Slot{Start: e.StartTime, End: e.EndTime}

		cells, ok := g.ByDay[e.Day]
		if !ok {
			cells = make(map[Slot][]*model.TimetableEntry)
			g.ByDay[e.Day] = cells
		}
		cells[slot] = append(cells[slot], e)

		if !seenSlot[slot] {
			seenSlot[slot] = true
			g.Slots = append(g.Slots, slot)
		}

		if e.Subject != nil && e.Faculty != nil && !seenSubject[e.Subject.Name] {
			seenSubject[e.Subject.Name] = true
			g.SubjectFaculty = append(g.SubjectFaculty, SubjectFaculty{
				Subject: e.Subject.Name,
				Faculty: e.Faculty.Name,
			})
		}
	}

	sort.Slice(g.Slots, func(i, j int) bool { return g.Slots[i].less(g.Slots[j]) })
	return g
}

// Entries 某一格的全部条目
func (g *Grid) Entries(day model.Weekday, slot Slot) []*model.TimetableEntry {
	return g.ByDay[day][slot]
}

// At 某一格的第一条条目，空格返回 nil
func (g *Grid) At(day model.Weekday, slot Slot) *model.TimetableEntry {
	if es := g.Entries(day, slot); len(es) > 0 {
		return es[0]
	}
	return nil
}

// Dense 导出用稠密网格：行为时间段，列为周一至周六，每格至多一条并已格式化
func (g *Grid) Dense() [][]string {
	rows := make([][]string, len(g.Slots))
	for i, slot := range g.Slots {
		row := make([]string, len(model.Weekdays))
		for j, day := range model.Weekdays {
			row[j] = FormatCell(g.At(day, slot))
		}
		rows[i] = row
	}
	return rows
}
