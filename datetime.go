package harbour

import (
	"database/sql/driver"
	"time"

	"github.com/pkg/errors"
)

// DateTime 可直接作为实体字段的时间类型，支持从时间或字符串列赋值
type DateTime time.Time

type DateFormatType string

const (
	Date            DateFormatType = "2006-01-02"
	DateSecond      DateFormatType = "2006-01-02 15:04:05"
	DateMillisecond DateFormatType = "2006-01-02 15:04:05.000"
)

var parseFormats = []string{string(DateMillisecond), string(DateSecond), string(Date), time.RFC3339Nano}

func (t *DateTime) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		*t = DateTime(v)
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return errors.Errorf("不支持的时间类型：%T", value)
}

func (t *DateTime) parse(s string) error {
	for _, format := range parseFormats {
		if parsed, err := time.ParseInLocation(format, s, time.Local); err == nil {
			*t = DateTime(parsed)
			return nil
		}
	}
	return errors.Errorf("时间格式错误：%v", s)
}

func (t *DateTime) UnmarshalJSON(data []byte) (err error) {
	if string(data) == "null" {
		return nil
	}
	now, err := time.ParseInLocation(`"`+string(DateSecond)+`"`, string(data), time.Local)
	*t = DateTime(now)
	return
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(DateSecond)+2)
	b = append(b, '"')
	b = time.Time(t).AppendFormat(b, string(DateSecond))
	b = append(b, '"')
	return b, nil
}

func (t DateTime) String() string {
	return time.Time(t).Format(string(DateSecond))
}

func (t DateTime) Value() (driver.Value, error) {
	return time.Time(t), nil
}

func (t DateTime) ToString(format DateFormatType) string {
	return time.Time(t).Format(string(format))
}
