package catalog

import (
	"encoding/csv"
	"io"
)

// newCSVReader 返回按目录快照约定配置的 CSV Reader：
// 允许各行字段数不一致（导出工具偶发尾列缺失），懒引号兼容脏数据。
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}
