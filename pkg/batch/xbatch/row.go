package xbatch

import (
	"iter"
	"strings"

	"github.com/omeyang/macconv/pkg/lookup/xvendor"
)

// Row 输入的一行
type Row struct {
	// Number 源中的行号（从 1 开始），0 表示由处理器按顺序编号
	Number int
	Name   string
	IP     string
	MAC    string
	// Short 源行的列数不足，缺失字段为空
	Short bool
}

// Line 一行的处理结果
type Line struct {
	Row Row
	// Address 格式化后的地址，地址无效时为空
	Address string
	// Vendor 厂商查询结果，未查询时为 nil
	Vendor *xvendor.Result
	// Text 输出文本
	Text string
}

// Valid 报告地址是否有效
func (l Line) Valid() bool { return l.Address != "" }

func (l Line) String() string { return l.Text }

// Render 生成输出文本：各字段加双引号后以逗号连接，不做转义。
// withVendor 为 true 时追加厂商字段，vendor 为 nil 时该字段为空。
func Render(row Row, address string, vendor *xvendor.Result, withVendor bool) string {
	var b strings.Builder
	writeField(&b, row.Name)
	b.WriteByte(',')
	writeField(&b, row.IP)
	b.WriteByte(',')
	writeField(&b, address)
	if withVendor {
		var text string
		if vendor != nil {
			text = vendor.Text()
		}
		b.WriteByte(',')
		writeField(&b, text)
	}
	return b.String()
}

func writeField(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
}

// Source 行数据源
type Source interface {
	// Total 行总数，用于进度显示
	Total() int
	// Rows 按源顺序返回各行
	Rows() iter.Seq[Row]
}

// SliceSource 内存中的行
type SliceSource []Row

var _ Source = SliceSource(nil)

func (s SliceSource) Total() int { return len(s) }

func (s SliceSource) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}
