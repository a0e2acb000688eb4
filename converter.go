package harbour

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ConverterOptions 实体转换参数
type ConverterOptions struct {
	// TagName 用于改写列名的结构体标签，为空时只按字段名匹配
	TagName string
	// CacheSetters 是否按实体类型缓存属性赋值计划
	CacheSetters bool
}

func DefaultConverterOptions() ConverterOptions {
	return ConverterOptions{TagName: "db", CacheSetters: true}
}

// EntityConverter 将数据行转换为实体，可并发使用
type EntityConverter struct {
	options   ConverterOptions
	planCache sync.Map // reflect.Type -> *entityPlan
}

func NewEntityConverter(options ConverterOptions) *EntityConverter {
	return &EntityConverter{options: options}
}

var (
	converterMutex   sync.RWMutex
	defaultConverter = NewEntityConverter(DefaultConverterOptions())
)

func getConverter() *EntityConverter {
	converterMutex.RLock()
	defer converterMutex.RUnlock()
	return defaultConverter
}

func setConverter(converter *EntityConverter) {
	converterMutex.Lock()
	defer converterMutex.Unlock()
	defaultConverter = converter
}

// ============================================================================
// 转换入口
// ============================================================================

// ConvertRow 将 DataRow 转为实体，row 为 nil 时返回 nil
func ConvertRow[T any](row *DataRow) (*T, error) {
	return convertRow[T](getConverter(), row)
}

// ConvertCursor 读取游标的下一行并转为实体，没有数据时返回 nil。
// 只消费一行，不关闭游标。
func ConvertCursor[T any](reader DataReader) (*T, error) {
	return convertCursor[T](getConverter(), reader)
}

// ConvertTable 将 DataTable 的每一行按顺序转为实体，table 为 nil 或没有行时返回空列表
func ConvertTable[T any](table *DataTable) ([]*T, error) {
	return convertTable[T](getConverter(), table)
}

// ConvertAll 读取游标直到结束，按顺序转为实体列表
func ConvertAll[T any](reader DataReader) ([]*T, error) {
	return convertAll[T](getConverter(), reader)
}

func convertRow[T any](c *EntityConverter, row *DataRow) (*T, error) {
	if row == nil {
		return nil, nil
	}
	plan, err := c.planOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return populate[T](plan, tableLookup(row))
}

func convertCursor[T any](c *EntityConverter, reader DataReader) (*T, error) {
	plan, err := c.planOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	ok, err := reader.Read()
	if err != nil || !ok {
		return nil, err
	}
	return populate[T](plan, readerLookup(reader))
}

func convertTable[T any](c *EntityConverter, table *DataTable) ([]*T, error) {
	list := make([]*T, 0)
	if table == nil || table.Rows().Count() == 0 {
		return list, nil
	}
	plan, err := c.planOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	for _, row := range table.Rows().All() {
		entity, err := populate[T](plan, tableLookup(row))
		if err != nil {
			return nil, err
		}
		list = append(list, entity)
	}
	return list, nil
}

func convertAll[T any](c *EntityConverter, reader DataReader) ([]*T, error) {
	plan, err := c.planOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	list := make([]*T, 0)
	for {
		ok, err := reader.Read()
		if err != nil {
			return nil, err
		}
		if !ok {
			return list, nil
		}
		entity, err := populate[T](plan, readerLookup(reader))
		if err != nil {
			return nil, err
		}
		list = append(list, entity)
	}
}

// ============================================================================
// 单行赋值
// ============================================================================

// lookupFunc 按列名取当前行的值，列不存在时 found 为 false
type lookupFunc func(column string) (value any, found bool, err error)

func tableLookup(row *DataRow) lookupFunc {
	return func(column string) (any, bool, error) {
		if !row.Table().Columns().Contains(column) {
			return nil, false, nil
		}
		value, _ := row.Get(column)
		return value, true, nil
	}
}

func readerLookup(reader DataReader) lookupFunc {
	return func(column string) (any, bool, error) {
		value, err := reader.GetValue(column)
		if errors.Is(err, ErrColumnNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return value, true, nil
	}
}

func populate[T any](plan *entityPlan, lookup lookupFunc) (*T, error) {
	t := new(T)
	entity := reflect.ValueOf(t).Elem()
	for _, prop := range plan.properties {
		value, found, err := lookup(prop.column)
		if err != nil {
			return nil, err
		}
		if !found || IsNull(value) {
			continue
		}
		if err = prop.assign(fieldByIndexAlloc(entity, prop.index), value); err != nil {
			return nil, &ConvertError{Entity: plan.typ, Field: prop.name, Column: prop.column, Value: value, Err: err}
		}
	}
	return t, nil
}

// planOf 取实体类型的赋值计划，开启缓存时每个类型只构建一次
func (c *EntityConverter) planOf(typ reflect.Type) (*entityPlan, error) {
	if typ.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrInvalidEntity, "类型:[%v]", typ)
	}
	if !c.options.CacheSetters {
		return buildEntityPlan(typ, c.options.TagName), nil
	}
	if plan, ok := c.planCache.Load(typ); ok {
		return plan.(*entityPlan), nil
	}
	plan := buildEntityPlan(typ, c.options.TagName)
	actual, loaded := c.planCache.LoadOrStore(typ, plan)
	if !loaded {
		zap.L().Debug("构建实体赋值计划", zap.Stringer("entity", typ), zap.Int("properties", len(plan.properties)))
	}
	return actual.(*entityPlan), nil
}
