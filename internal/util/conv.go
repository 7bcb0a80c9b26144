package util

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// LenientFloat 宽松解析的数值：null、非数字字符串等一律视为缺失，不报错
type LenientFloat struct {
	Value float64
	Valid bool
}

func (f *LenientFloat) UnmarshalJSON(data []byte) error {
	*f = LenientFloat{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if n, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return nil
		}
	}

	// NaN 与 Inf 视为缺失
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	*f = LenientFloat{Value: n, Valid: true}
	return nil
}

func (f LenientFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr 有效时返回指针，否则返回 nil
func (f LenientFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// Int 缺失或为负数时返回 0，超出 int32 范围时截断到 math.MaxInt32
func (f LenientFloat) Int() int {
	if !f.Valid || math.IsNaN(f.Value) || f.Value < 0 {
		return 0
	}
	return int(math.Min(f.Value, math.MaxInt32))
}

// LenientTime 宽松解析的时间：支持 RFC3339 字符串和毫秒时间戳，无法解析时为零值
type LenientTime struct {
	time.Time
}

var lenientLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	TimeFormat,
	DateFormat,
}

func (t *LenientTime) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil {
		t.Time = time.UnixMilli(int64(ms)).UTC()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range lenientLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return nil
}

func (t LenientTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}
