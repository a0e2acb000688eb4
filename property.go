package harbour

import (
	"reflect"
	"strings"
)

// property 实体上一个可写属性及其赋值函数
type property struct {
	name   string // 字段名
	column string // 匹配的列名
	index  []int
	assign assignFunc
}

// entityPlan 某个实体类型的全部可写属性
type entityPlan struct {
	typ        reflect.Type
	properties []property
}

func buildEntityPlan(typ reflect.Type, tagName string) *entityPlan {
	plan := &entityPlan{typ: typ}
	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || !reachable(typ, field.Index) {
			continue
		}
		if field.Anonymous && derefType(field.Type).Kind() == reflect.Struct {
			continue
		}
		column, skip := columnName(field, tagName)
		if skip {
			continue
		}
		plan.properties = append(plan.properties, property{
			name:   field.Name,
			column: column,
			index:  field.Index,
			assign: assignerFor(field.Type),
		})
	}
	return plan
}

// columnName 解析标签：`db:"-"` 忽略字段，`db:"col"` 改用列名 col
func columnName(field reflect.StructField, tagName string) (string, bool) {
	if tagName == "" {
		return field.Name, false
	}
	tag, ok := field.Tag.Lookup(tagName)
	if !ok {
		return field.Name, false
	}
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return field.Name, false
}

// reachable 经由未导出的嵌入指针无法分配内存，这类提升字段不可写
func reachable(typ reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		field := derefType(typ).Field(i)
		if field.Type.Kind() == reflect.Ptr && !field.IsExported() {
			return false
		}
		typ = field.Type
	}
	return true
}

func derefType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}

// fieldByIndexAlloc 沿索引路径取字段，途经的 nil 嵌入指针会被分配
func fieldByIndexAlloc(entity reflect.Value, index []int) reflect.Value {
	v := entity
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
