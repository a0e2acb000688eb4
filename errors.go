package harbour

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	ErrTypeMismatch    = errors.New("单元格值与属性类型不匹配！")
	ErrInvalidEntity   = errors.New("实体类型必须是结构体！")
	ErrColumnNotFound  = errors.New("列不存在！")
	ErrDuplicateColumn = errors.New("列名重复！")
	ErrColumnCount     = errors.New("值的数量与列数不一致！")
)

// ConvertError 单行转换失败时返回的错误，携带出错的实体、字段和列
type ConvertError struct {
	Entity reflect.Type
	Field  string
	Column string
	Value  any
	Err    error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("实体[%v]属性[%v]赋值失败, 列:[%v] 值:[%v](%T): %v", e.Entity, e.Field, e.Column, e.Value, e.Value, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func typeMismatch(from any, to reflect.Type) error {
	return errors.Wrapf(ErrTypeMismatch, "%T 无法转换为 %v", from, to)
}

func typeMismatchWith(cause error, from any, to reflect.Type) error {
	return errors.Wrapf(ErrTypeMismatch, "%T 无法转换为 %v: %v", from, to, cause)
}
