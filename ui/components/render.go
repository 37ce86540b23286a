package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ashworthNate/SpiderSolitaire/internal/card"
	"github.com/ashworthNate/SpiderSolitaire/pkg/game"
)

// 颜色定义
var (
	// 牌面颜色
	suitRed   = lipgloss.Color("196") // 红桃 - 亮红色
	suitBlack = lipgloss.Color("15")  // 黑桃 - 亮白色
	backColor = lipgloss.Color("239") // 牌背 - 深灰色
	slotColor = lipgloss.Color("238") // 占位符 - 暗灰色

	// 边框与状态颜色
	borderColor    = lipgloss.Color("240") // 边框
	highlightColor = lipgloss.Color("214") // 高亮
	selectedColor  = lipgloss.Color("39")  // 选中状态
	cursorColor    = lipgloss.Color("46")  // 光标所在列
	errorColor     = lipgloss.Color("203") // 错误提示
	winColor       = lipgloss.Color("220") // 获胜提示
)

// 单元格固定宽度，保证各列对齐
const cellWidth = 5

// RenderCardCell 渲染单张牌的紧凑单元格
//
// 正面牌显示点数加花色符号并按花色着色，背面牌显示 [??]，
// 占位符显示 [--]。
func RenderCardCell(c card.Card) string {
	if c.IsPlaceholder() {
		return lipgloss.NewStyle().
			Foreground(slotColor).
			Width(cellWidth).
			Render("[--]")
	}
	if !c.FaceUp {
		return lipgloss.NewStyle().
			Foreground(backColor).
			Width(cellWidth).
			Render("[??]")
	}

	return lipgloss.NewStyle().
		Foreground(GetCardColor(c)).
		Bold(true).
		Width(cellWidth).
		Render(c.String())
}

// renderCell 渲染一格，选中或光标状态改变样式
func renderCell(c card.Card, cursor, selected bool) string {
	cell := RenderCardCell(c)
	switch {
	case selected:
		return lipgloss.NewStyle().Foreground(selectedColor).Bold(true).Width(cellWidth).Render(stripCellStyle(c))
	case cursor:
		return lipgloss.NewStyle().Foreground(cursorColor).Bold(true).Width(cellWidth).Render(stripCellStyle(c))
	}
	return cell
}

// stripCellStyle 返回无样式的单元格文本
func stripCellStyle(c card.Card) string {
	return c.String()
}

// RenderBoard 渲染整个牌桌
//
// 列纵向生长，行优先排布；cursorCol 为光标所在列（-1 表示无），
// selCol/selIndex 为已选中的序列起点（selCol 为 -1 表示未选中）。
func RenderBoard(state *game.GameState, cursorCol, selCol, selIndex int) string {
	var b strings.Builder

	// 列号标题行
	header := make([]string, len(state.Columns))
	for i := range state.Columns {
		label := fmt.Sprintf("%d", i+1)
		style := lipgloss.NewStyle().Foreground(borderColor).Width(cellWidth)
		if i == cursorCol {
			style = style.Foreground(cursorColor).Bold(true)
		}
		header[i] = style.Render(label)
	}
	b.WriteString(strings.Join(header, ""))
	b.WriteString("\n")

	rows := 0
	for _, col := range state.Columns {
		if len(col) > rows {
			rows = len(col)
		}
	}

	for row := 0; row < rows; row++ {
		cells := make([]string, len(state.Columns))
		for i, col := range state.Columns {
			if row >= len(col) {
				cells[i] = strings.Repeat(" ", cellWidth)
				continue
			}
			selected := i == selCol && selIndex >= 0 && row >= selIndex
			cells[i] = renderCell(col[row], i == cursorCol && row == len(col)-1, selected)
		}
		b.WriteString(strings.Join(cells, ""))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderFoundations 渲染回收区（已完成的序列）
func RenderFoundations(state *game.GameState) string {
	if state.FoundationCount == 0 {
		return fmt.Sprintf("回收区: 0/%d", game.WinFoundations)
	}

	parts := make([]string, 0, state.FoundationCount)
	for _, f := range state.Foundations {
		// 每组序列用其花色的 K 表示
		top := f[0]
		parts = append(parts, lipgloss.NewStyle().
			Foreground(GetCardColor(top)).
			Bold(true).
			Render(top.String()))
	}
	return fmt.Sprintf("回收区: %d/%d  %s",
		state.FoundationCount, game.WinFoundations, strings.Join(parts, " "))
}

// RenderStatus 渲染状态栏（牌堆、发牌次数、移动数）
func RenderStatus(state *game.GameState) string {
	return fmt.Sprintf("牌堆: %d张  发牌: %d/%d  移动: %d",
		state.Reserve, state.DealCount, state.MaxDraws, state.Moves)
}

// RenderMessage 渲染提示信息行
func RenderMessage(msg string, isError bool) string {
	if msg == "" {
		return ""
	}
	color := highlightColor
	if isError {
		color = errorColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(msg)
}

// RenderWinBanner 渲染获胜横幅
func RenderWinBanner(moves int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(winColor).
		Foreground(winColor).
		Bold(true).
		Padding(1, 4).
		Render(fmt.Sprintf("恭喜获胜！\n共用 %d 步", moves))
}

// RenderHelp 渲染按键帮助行
func RenderHelp() string {
	return lipgloss.NewStyle().
		Foreground(borderColor).
		Render("←/→ 移动光标  ↑/↓ 调整选牌  空格/回车 选中并移动  d 发牌  u 撤销  r 重开  q 退出")
}

// GetCardColor 获取牌面的颜色
func GetCardColor(c card.Card) lipgloss.Color {
	if c.IsRed() {
		return suitRed
	}
	return suitBlack
}

// highlightStyle 返回高亮样式
func highlightStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)
}

// RenderTitle 渲染标题栏
func RenderTitle() string {
	return highlightStyle().Render("蜘蛛纸牌（双花色）")
}
