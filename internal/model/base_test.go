package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"09:00", NewClockTime(9, 0), false},
		{"13:45:00", NewClockTime(13, 45), false},
		{" 07:05 ", NewClockTime(7, 5), false},
		{"25:00", 0, true},
		{"nine", 0, true},
		{"09:00:45", 0, true}, // 不允许丢弃秒
		{"09:00:00", NewClockTime(9, 0), false},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClockTime(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockTime_Scan(t *testing.T) {
	var c ClockTime
	if err := c.Scan([]byte("10:30:00")); err != nil || c != NewClockTime(10, 30) {
		t.Errorf("Scan([]byte) = %v, %v", c, err)
	}
	if err := c.Scan("08:15:00"); err != nil || c != NewClockTime(8, 15) {
		t.Errorf("Scan(string) = %v, %v", c, err)
	}
	if err := c.Scan(time.Date(0, 1, 1, 16, 20, 0, 0, time.UTC)); err != nil || c != NewClockTime(16, 20) {
		t.Errorf("Scan(time.Time) = %v, %v", c, err)
	}
	if err := c.Scan(42); err == nil {
		t.Error("Scan(int) 应返回错误")
	}
}

func TestClockTime_ValueAndFormat(t *testing.T) {
	c := NewClockTime(14, 5)
	v, err := c.Value()
	if err != nil || v != "14:05:00" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	if c.Format12h() != "02:05 PM" {
		t.Errorf("Format12h() = %s", c.Format12h())
	}
	if NewClockTime(9, 0).Format12h() != "09:00 AM" {
		t.Errorf("Format12h() = %s", NewClockTime(9, 0).Format12h())
	}
}

func TestClockTime_JSON(t *testing.T) {
	b, err := json.Marshal(NewClockTime(9, 30))
	if err != nil || string(b) != `"09:30"` {
		t.Errorf("Marshal = %s, %v", b, err)
	}
	var c ClockTime
	if err := json.Unmarshal([]byte(`"11:00:00"`), &c); err != nil || c != NewClockTime(11, 0) {
		t.Errorf("Unmarshal = %v, %v", c, err)
	}
}

func TestTimetableEntry_Overlaps(t *testing.T) {
	e := TimetableEntry{StartTime: MustClockTime("09:00"), EndTime: MustClockTime("10:00")}
	tests := []struct {
		start, end string
		want       bool
	}{
		{"09:30", "10:30", true},
		{"08:00", "09:30", true},
		{"09:00", "10:00", true},
		{"10:00", "11:00", false}, // 首尾相接
		{"08:00", "09:00", false},
	}
	for _, tt := range tests {
		if got := e.Overlaps(MustClockTime(tt.start), MustClockTime(tt.end)); got != tt.want {
			t.Errorf("Overlaps(%s,%s)=%v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSameTrack(t *testing.T) {
	ai, web := TrackAIML, TrackWeb
	if !SameTrack(nil, nil) {
		t.Error("均未设置应视为相同")
	}
	if SameTrack(&ai, nil) || SameTrack(nil, &web) {
		t.Error("一方未设置不应相同")
	}
	if SameTrack(&ai, &web) {
		t.Error("不同方向不应相同")
	}
	ai2 := TrackAIML
	if !SameTrack(&ai, &ai2) {
		t.Error("相同方向应相同")
	}
}
