package harbour

import (
	"database/sql"

	"github.com/pkg/errors"
)

// Rows 数据库结果集游标，*sql.Rows 以及 gorm 的 DB.Rows() 结果都满足该接口
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

var _ Rows = (*sql.Rows)(nil)

// DataReader 只进游标，Read 前进到下一行，GetValue 读取当前行的列
type DataReader interface {
	Read() (bool, error)
	GetValue(name string) (any, error)
}

// ============================================================================
// 基于 database/sql 结果集的游标
// ============================================================================

type SqlDataReader struct {
	rows    Rows
	columns []string
	index   map[string]int
	current []any
}

func NewSqlDataReader(rows Rows) *SqlDataReader {
	return &SqlDataReader{rows: rows}
}

func (reader *SqlDataReader) Columns() ([]string, error) {
	if reader.columns == nil {
		columns, err := reader.rows.Columns()
		if err != nil {
			return nil, errors.Wrap(err, "读取列信息失败！")
		}
		reader.columns = columns
		reader.index = make(map[string]int, len(columns))
		for i, column := range columns {
			if _, ok := reader.index[column]; !ok {
				reader.index[column] = i
			}
		}
	}
	return reader.columns, nil
}

func (reader *SqlDataReader) Read() (bool, error) {
	reader.current = nil
	columns, err := reader.Columns()
	if err != nil {
		return false, err
	}
	if !reader.rows.Next() {
		if err = reader.rows.Err(); err != nil {
			return false, errors.Wrap(err, "读取数据行失败！")
		}
		return false, nil
	}
	values, err := scanValues(reader.rows, len(columns))
	if err != nil {
		return false, err
	}
	reader.current = values
	return true, nil
}

func (reader *SqlDataReader) GetValue(name string) (any, error) {
	if reader.current == nil {
		return nil, errors.New("游标未指向有效行，请先调用Read()！")
	}
	i, ok := reader.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrColumnNotFound, "列:[%v]", name)
	}
	return reader.current[i], nil
}

// Close 关闭底层结果集，转换方法不会调用它
func (reader *SqlDataReader) Close() error {
	return reader.rows.Close()
}

// scanValues 将当前行扫描到新的切片中，database/sql 会复制 []byte
func scanValues(rows Rows, count int) ([]any, error) {
	values := make([]any, count)
	dest := make([]any, count)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, errors.Wrap(err, "扫描数据行失败！")
	}
	return values, nil
}

// ============================================================================
// 基于 DataTable 的游标
// ============================================================================

type DataTableReader struct {
	rows     []*DataRow
	position int
}

func (reader *DataTableReader) Read() (bool, error) {
	if reader.position < len(reader.rows) {
		reader.position++
	}
	return reader.position < len(reader.rows), nil
}

func (reader *DataTableReader) GetValue(name string) (any, error) {
	if reader.position < 0 || reader.position >= len(reader.rows) {
		return nil, errors.New("游标未指向有效行，请先调用Read()！")
	}
	value, ok := reader.rows[reader.position].Get(name)
	if !ok {
		return nil, errors.Wrapf(ErrColumnNotFound, "列:[%v]", name)
	}
	return value, nil
}
