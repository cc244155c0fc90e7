package model

// Weekday 上课日（周一至周六）
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Weekdays 固定顺序的六个上课日，作为所有渲染的列顺序
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Valid 是否为合法上课日
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Index 在 Weekdays 中的位置，非法值返回 -1
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Track 专业方向
type Track string

const (
	TrackAIML Track = "AI-ML"
	TrackWeb  Track = "Web"
)

// Valid 是否为合法方向
func (t Track) Valid() bool {
	return t == TrackAIML || t == TrackWeb
}

// LabChoice 实验室编号
type LabChoice string

const (
	Lab1 LabChoice = "1"
	Lab2 LabChoice = "2"
	Lab3 LabChoice = "3"
	Lab4 LabChoice = "4"
)

// Valid 是否为合法实验室
func (l LabChoice) Valid() bool {
	switch l {
	case Lab1, Lab2, Lab3, Lab4:
		return true
	}
	return false
}

// Label 展示名，如 "Lab 2"
func (l LabChoice) Label() string {
	return "Lab " + string(l)
}
