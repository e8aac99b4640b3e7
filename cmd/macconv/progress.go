package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	defaultTermWidth = 80
	barCells         = 20
)

// progressBar 在一行内重绘的进度条：[####....] 3/10 name
//
// Report 由 xbatch 调用记录计数，draw 在每行产出后重绘。
type progressBar struct {
	w       io.Writer
	width   int
	current int
	total   int
	drawn   bool
}

func newProgressBar(w io.Writer, width int) *progressBar {
	if width <= 0 {
		width = defaultTermWidth
	}
	return &progressBar{w: w, width: width}
}

// termWidth 从 COLUMNS 读取终端宽度
func termWidth(getenv func(string) string) int {
	n, err := strconv.Atoi(strings.TrimSpace(getenv("COLUMNS")))
	if err != nil || n <= 0 {
		return defaultTermWidth
	}
	return n
}

// Report 实现 xbatch.Progress
func (p *progressBar) Report(current, total int) {
	p.current = current
	p.total = total
}

// render 生成不含回车的进度行，宽度不超过终端宽度减一。
func (p *progressBar) render(name string) string {
	filled := 0
	if p.total > 0 {
		filled = min(p.current*barCells/p.total, barCells)
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat(".", barCells-filled))
	b.WriteString("] ")
	fmt.Fprintf(&b, "%d/%d", p.current, p.total)

	line := b.String()
	room := p.width - 1 - runewidth.StringWidth(line) - 1
	if name = strings.TrimSpace(name); name != "" && room > 0 {
		line += " " + runewidth.Truncate(name, room, "...")
	}
	return line
}

// draw 重绘当前进度
func (p *progressBar) draw(name string) {
	line := p.render(name)
	_, _ = fmt.Fprintf(p.w, "\r%s", runewidth.FillRight(line, p.width-1))
	p.drawn = true
}

// clear 擦除进度行，便于在同一终端输出其他内容
func (p *progressBar) clear() {
	if !p.drawn {
		return
	}
	_, _ = fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width-1))
	p.drawn = false
}

// finish 保留最终进度并换行
func (p *progressBar) finish() {
	if p.drawn {
		_, _ = fmt.Fprintln(p.w)
		p.drawn = false
	}
}
