package harbour

import (
	"database/sql"
	"reflect"
)

// assignFunc 将单元格值写入字段，值已保证非空
type assignFunc func(dst reflect.Value, value any) error

var scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

// assignerFor 按字段类型选定赋值策略，结果随实体计划一起缓存
func assignerFor(typ reflect.Type) assignFunc {
	if reflect.PointerTo(typ).Implements(scannerType) {
		return assignScanner
	}
	if typ.Kind() == reflect.Ptr {
		elem := assignerFor(typ.Elem())
		return func(dst reflect.Value, value any) error {
			v := reflect.New(typ.Elem())
			if err := elem(v.Elem(), value); err != nil {
				return err
			}
			dst.Set(v)
			return nil
		}
	}
	return assignValue
}

func assignScanner(dst reflect.Value, value any) error {
	if err := dst.Addr().Interface().(sql.Scanner).Scan(value); err != nil {
		return typeMismatchWith(err, value, dst.Type())
	}
	return nil
}

func assignValue(dst reflect.Value, value any) error {
	src := reflect.ValueOf(value)
	typ := dst.Type()
	for src.Kind() == reflect.Ptr && !src.IsNil() && !src.Type().AssignableTo(typ) {
		src = src.Elem()
	}
	// 字节切片可能与驱动缓冲区共享底层数组
	if isBytes(src.Type()) && !src.IsNil() {
		clone := reflect.New(src.Type()).Elem()
		clone.SetBytes(append(make([]byte, 0, src.Len()), src.Bytes()...))
		src = clone
	}

	if src.Type().AssignableTo(typ) {
		dst.Set(src)
		return nil
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !dst.OverflowInt(src.Int()) {
				dst.SetInt(src.Int())
				return nil
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if n := src.Uint(); n <= 1<<63-1 && !dst.OverflowInt(int64(n)) {
				dst.SetInt(int64(n))
				return nil
			}
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if n := src.Int(); n >= 0 && !dst.OverflowUint(uint64(n)) {
				dst.SetUint(uint64(n))
				return nil
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if !dst.OverflowUint(src.Uint()) {
				dst.SetUint(src.Uint())
				return nil
			}
		}
	case reflect.Float32, reflect.Float64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetFloat(float64(src.Int()))
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			dst.SetFloat(float64(src.Uint()))
			return nil
		case reflect.Float32, reflect.Float64:
			if !dst.OverflowFloat(src.Float()) {
				dst.SetFloat(src.Float())
				return nil
			}
		}
	case reflect.Bool:
		if src.Kind() == reflect.Bool {
			dst.SetBool(src.Bool())
			return nil
		}
	case reflect.String:
		switch {
		case src.Kind() == reflect.String:
			dst.SetString(src.String())
			return nil
		case isBytes(src.Type()):
			dst.SetString(string(src.Bytes()))
			return nil
		}
	case reflect.Slice:
		if isBytes(typ) {
			switch {
			case src.Kind() == reflect.String:
				dst.SetBytes([]byte(src.String()))
				return nil
			case isBytes(src.Type()):
				dst.SetBytes(src.Bytes())
				return nil
			}
		}
	default:
		// 具名结构体等同底层类型的值，例如 type Stamp time.Time
		if src.Type().ConvertibleTo(typ) && src.Kind() == typ.Kind() && src.Kind() == reflect.Struct {
			dst.Set(src.Convert(typ))
			return nil
		}
	}
	return typeMismatch(value, typ)
}

func isBytes(typ reflect.Type) bool {
	return typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8
}
