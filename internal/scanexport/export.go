// Package scanexport 读取网络扫描器导出的制表符分隔 UTF-16 文本。
//
// 第一条记录是表头。列从 0 开始编号：名称在第 1 列，IP 在第 2 列，MAC 在第 12 列。
// 导出的名称和 IP 末尾带一个子字段分隔符，读取时去掉最后一个字符。
package scanexport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/omeyang/macconv/pkg/batch/xbatch"
	"github.com/omeyang/macconv/pkg/util/xfile"
)

// 列位置
const (
	ColName = 1
	ColIP   = 2
	ColMAC  = 12

	// MinColumns 完整记录的最少列数
	MinColumns = ColMAC + 1
)

// ErrEmptyExport 导出文件没有表头
var ErrEmptyExport = errors.New("scanexport: empty export")

// Export 解析后的导出数据，实现 xbatch.Source。
type Export struct {
	header []string
	rows   []xbatch.Row
}

var _ xbatch.Source = (*Export)(nil)

// Open 读取 path 指向的导出文件
func Open(path string) (*Export, error) {
	cleaned, err := xfile.CleanPath(path)
	if err != nil {
		return nil, fmt.Errorf("scanexport: %w", err)
	}
	f, err := os.Open(cleaned)
	if err != nil {
		return nil, fmt.Errorf("scanexport: open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// maxLineSize 单行最大字节数（解码后）
const maxLineSize = 1 << 20

// Read 从 r 读取导出数据。
//
// 按 BOM 判断字节序，没有 BOM 时按小端解码。每行按制表符切分，
// 引号不做特殊处理，字段内容原样保留。空行跳过，行号按物理行计。
func Read(r io.Reader) (*Export, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	sc := bufio.NewScanner(transform.NewReader(r, dec))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var e *Export
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		rec := strings.Split(text, "\t")
		if e == nil {
			e = &Export{header: rec}
			continue
		}
		e.rows = append(e.rows, toRow(rec, line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanexport: read: %w", err)
	}
	if e == nil {
		return nil, ErrEmptyExport
	}
	return e, nil
}

func toRow(rec []string, line int) xbatch.Row {
	return xbatch.Row{
		Number: line,
		Name:   dropLast(field(rec, ColName)),
		IP:     dropLast(field(rec, ColIP)),
		MAC:    field(rec, ColMAC),
		Short:  len(rec) < MinColumns,
	}
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// dropLast 去掉最后一个字符（按 rune）
func dropLast(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// Header 返回表头
func (e *Export) Header() []string { return e.header }

// Total 数据行数，不含表头
func (e *Export) Total() int { return len(e.rows) }

// Rows 按文件顺序返回数据行
func (e *Export) Rows() iter.Seq[xbatch.Row] {
	return xbatch.SliceSource(e.rows).Rows()
}
