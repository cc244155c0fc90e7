package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ── PostgreSQL TIME 自定义类型 ──

// ClockTime 一天内的挂钟时间（精确到分钟，不含日期），对应 PostgreSQL TIME。
// 以自零点起的分钟数存储，便于比较与排序。
type ClockTime int

// NewClockTime 由时、分构造 ClockTime
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime 解析 "15:04" 或 "15:04:05"；精度为分钟，秒必须为 0
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Second() != 0 {
				return 0, fmt.Errorf("invalid clock time %q: seconds must be 00", s)
			}
			return NewClockTime(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q", s)
}

// MustClockTime 解析失败时 panic，仅用于常量与测试
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hour 时
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute 分
func (c ClockTime) Minute() int { return int(c) % 60 }

// String 输出 24 小时制 "15:04"
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Format12h 输出 12 小时制 "03:04 PM"
func (c ClockTime) Format12h() string {
	return c.On(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)).Format("03:04 PM")
}

// On 将时间落到指定日期（保留 day 的时区）
func (c ClockTime) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, day.Location())
}

// Scan 将 PostgreSQL 返回的 TIME（"09:00:00" 文本或 time.Time）解析为 ClockTime。
func (c *ClockTime) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*c = 0
		return nil
	case []byte:
		s = string(v)
	case string:
		s = v
	case time.Time:
		*c = NewClockTime(v.Hour(), v.Minute())
		return nil
	default:
		return fmt.Errorf("ClockTime.Scan: unsupported type %T", src)
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return fmt.Errorf("ClockTime.Scan: %w", err)
	}
	*c = parsed
	return nil
}

// Value 序列化为 "15:04:05"
func (c ClockTime) Value() (driver.Value, error) {
	return c.String() + ":00", nil
}

// MarshalJSON 输出 "15:04"
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON 接受 "15:04" / "15:04:05"
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// VersionedModel 支持乐观锁的模型
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}
