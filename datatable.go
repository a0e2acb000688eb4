package harbour

import (
	"reflect"

	"github.com/pkg/errors"
)

// ============================================================================
// 空值标记
// ============================================================================

type dbNull struct{}

func (dbNull) String() string {
	return ""
}

// DBNull 数据库空值标记，单元格持有它表示"没有值"
var DBNull = dbNull{}

// IsNull 判断单元格值是否为空：DBNull、nil 以及值为 nil 的指针都视为空
func IsNull(value any) bool {
	if value == nil || value == DBNull {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// ============================================================================
// 列
// ============================================================================

type DataColumn struct {
	Name    string
	Ordinal int
}

// DataColumnCollection 列集合，列名比较区分大小写
type DataColumnCollection struct {
	columns []*DataColumn
	index   map[string]int
}

func newDataColumnCollection() *DataColumnCollection {
	return &DataColumnCollection{index: make(map[string]int)}
}

func (c *DataColumnCollection) Add(name string) (*DataColumn, error) {
	if _, ok := c.index[name]; ok {
		return nil, errors.Wrapf(ErrDuplicateColumn, "列:[%v]", name)
	}
	column := &DataColumn{Name: name, Ordinal: len(c.columns)}
	c.columns = append(c.columns, column)
	c.index[name] = column.Ordinal
	return column, nil
}

func (c *DataColumnCollection) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// IndexOf 返回列序号，不存在时返回 -1
func (c *DataColumnCollection) IndexOf(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

func (c *DataColumnCollection) Count() int {
	return len(c.columns)
}

func (c *DataColumnCollection) Get(i int) *DataColumn {
	return c.columns[i]
}

func (c *DataColumnCollection) Names() []string {
	names := make([]string, len(c.columns))
	for i, column := range c.columns {
		names[i] = column.Name
	}
	return names
}

// ============================================================================
// 行
// ============================================================================

type DataRow struct {
	table  *DataTable
	values []any
}

func (row *DataRow) Table() *DataTable {
	return row.table
}

// Get 按列名取值，列不存在时 ok 为 false
func (row *DataRow) Get(name string) (value any, ok bool) {
	i := row.table.columns.IndexOf(name)
	if i < 0 {
		return nil, false
	}
	return row.Index(i), true
}

// Index 按列序号取值，新增列后旧行缺少的单元格视为 DBNull
func (row *DataRow) Index(i int) any {
	if i >= len(row.values) {
		return DBNull
	}
	return row.values[i]
}

func (row *DataRow) Set(name string, value any) error {
	i := row.table.columns.IndexOf(name)
	if i < 0 {
		return errors.Wrapf(ErrColumnNotFound, "列:[%v]", name)
	}
	row.grow()
	row.values[i] = value
	return nil
}

func (row *DataRow) IsNull(name string) bool {
	value, ok := row.Get(name)
	return !ok || IsNull(value)
}

// ItemArray 返回单元格值的副本
func (row *DataRow) ItemArray() []any {
	row.grow()
	return append([]any(nil), row.values...)
}

func (row *DataRow) grow() {
	for len(row.values) < row.table.columns.Count() {
		row.values = append(row.values, DBNull)
	}
}

// DataRowCollection 行集合，保持添加顺序
type DataRowCollection struct {
	table *DataTable
	rows  []*DataRow
}

func (c *DataRowCollection) Add(row *DataRow) error {
	if row == nil || row.table != c.table {
		return errors.Errorf("行不属于数据表[%v]！", c.table.Name)
	}
	c.rows = append(c.rows, row)
	return nil
}

func (c *DataRowCollection) Count() int {
	return len(c.rows)
}

func (c *DataRowCollection) Get(i int) *DataRow {
	return c.rows[i]
}

func (c *DataRowCollection) All() []*DataRow {
	return append([]*DataRow(nil), c.rows...)
}

// ============================================================================
// 数据表
// ============================================================================

// DataTable 内存数据表，所有行共享同一组列
type DataTable struct {
	Name    string
	columns *DataColumnCollection
	rows    *DataRowCollection
}

// NewDataTable 创建数据表，重复的列名会被忽略
func NewDataTable(name string, columns ...string) *DataTable {
	table := &DataTable{
		Name:    name,
		columns: newDataColumnCollection(),
	}
	table.rows = &DataRowCollection{table: table}
	for _, column := range columns {
		_, _ = table.columns.Add(column)
	}
	return table
}

func (table *DataTable) Columns() *DataColumnCollection {
	return table.columns
}

func (table *DataTable) Rows() *DataRowCollection {
	return table.rows
}

func (table *DataTable) AddColumn(name string) error {
	_, err := table.columns.Add(name)
	return err
}

// NewRow 创建一个属于该表但尚未加入行集合的空行
func (table *DataTable) NewRow() *DataRow {
	row := &DataRow{table: table}
	row.grow()
	return row
}

// AddRow 按列顺序追加一行
func (table *DataTable) AddRow(values ...any) (*DataRow, error) {
	if len(values) != table.columns.Count() {
		return nil, errors.Wrapf(ErrColumnCount, "期望 %d 个, 实际 %d 个", table.columns.Count(), len(values))
	}
	row := &DataRow{table: table, values: append([]any(nil), values...)}
	table.rows.rows = append(table.rows.rows, row)
	return row, nil
}

// LoadDataTable 读取游标中剩余的全部行填充新表，不关闭游标
func LoadDataTable(rows Rows) (*DataTable, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "读取列信息失败！")
	}
	table := NewDataTable("")
	for _, name := range names {
		if err = table.AddColumn(name); err != nil {
			return nil, err
		}
	}
	for rows.Next() {
		values, err := scanValues(rows, len(names))
		if err != nil {
			return nil, err
		}
		table.rows.rows = append(table.rows.rows, &DataRow{table: table, values: values})
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "读取数据行失败！")
	}
	return table, nil
}

// CreateDataReader 在当前行快照上创建只进游标
func (table *DataTable) CreateDataReader() *DataTableReader {
	return &DataTableReader{rows: table.rows.All(), position: -1}
}
