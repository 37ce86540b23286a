package solitaire

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ashworthNate/SpiderSolitaire/internal/common/models"
	"github.com/ashworthNate/SpiderSolitaire/pkg/game"
	"github.com/ashworthNate/SpiderSolitaire/ui/components"
)

// ==================== 样式定义 ====================

var (
	// 副标题样式
	styleSubtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // 灰色
			Faint(true)

	// 边框样式
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	// 非激活状态样式
	styleInactive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")). // 暗灰色
			Faint(true)
)

// ==================== TUI 模型 ====================

// Model 蜘蛛纸牌 TUI 主模型
//
// 模型只通过引擎的公开操作修改牌桌，自己从不碰牌：
// 按键产生意图，引擎返回结果，View 根据最新快照重绘。
type Model struct {
	engine *game.GameEngine   // 游戏引擎
	stats  *game.StatsManager // 会话统计
	keys   KeyMap             // 按键绑定

	state *game.GameState // 最近一次的状态快照

	cursor int              // 光标所在列
	sel    *models.Position // 已选中序列的起点（nil 表示未选中）

	message string // 提示信息
	isError bool   // 提示是否为错误

	// 终端窗口尺寸
	winWidth  int // 终端宽度
	winHeight int // 终端高度
}

// NewModel 创建新的 TUI 模型
func NewModel(engine *game.GameEngine) *Model {
	stats := game.NewStatsManager()
	stats.RecordGameStarted()

	return &Model{
		engine: engine,
		stats:  stats,
		keys:   DefaultKeyMap(),
		state:  engine.GetState(),
	}
}

// Init 初始化模型
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update 更新模型状态
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		// 记录窗口尺寸，用于 View 填充保证每次输出行数一致
		m.winWidth = msg.Width
		m.winHeight = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKeyMsg 处理键盘消息
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		m.state = m.engine.Restart()
		m.stats.RecordGameStarted()
		m.clearSelection()
		m.setMessage("已重新开始", false)
		return m, nil
	}

	// 获胜后只响应重开和退出
	if m.state.Won {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(m.state.Columns)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		m.extendSelection()

	case key.Matches(msg, m.keys.Down):
		m.shrinkSelection()

	case key.Matches(msg, m.keys.Confirm):
		m.confirm()

	case key.Matches(msg, m.keys.Cancel):
		m.clearSelection()
		m.setMessage("", false)

	case key.Matches(msg, m.keys.Deal):
		m.deal()

	case key.Matches(msg, m.keys.Undo):
		m.undo()
	}

	return m, nil
}

// confirm 处理选中/移动：未选中时选中光标列的顶牌，已选中时尝试移动
func (m *Model) confirm() {
	if m.sel == nil {
		col := m.state.Columns[m.cursor]
		index := len(col) - 1
		res := m.engine.Select(m.cursor, index)
		if !res.Selectable {
			m.setMessage(res.Reason.Error(), true)
			return
		}
		m.sel = &models.Position{Column: m.cursor, Index: index}
		m.setMessage("", false)
		return
	}

	// 在已选中的列上再次确认视为取消
	if m.sel.Column == m.cursor {
		m.clearSelection()
		return
	}

	res := m.engine.AttemptMove(m.sel.Column, m.sel.Index, m.cursor)
	if !res.Applied {
		m.setMessage(res.Reason.Error(), true)
		return
	}

	m.stats.RecordMove()
	m.refresh()
	m.clearSelection()
	m.setMessage("", false)
}

// extendSelection 向列底方向多选一张（必须仍构成合法序列）
func (m *Model) extendSelection() {
	if m.sel == nil {
		return
	}
	if res := m.engine.Select(m.sel.Column, m.sel.Index-1); res.Selectable {
		m.sel.Index--
	}
}

// shrinkSelection 向列顶方向少选一张，只剩一张时取消选中
func (m *Model) shrinkSelection() {
	if m.sel == nil {
		return
	}
	col := m.state.Columns[m.sel.Column]
	if m.sel.Index < len(col)-1 {
		m.sel.Index++
	} else {
		m.clearSelection()
	}
}

// deal 发一行新牌
func (m *Model) deal() {
	res := m.engine.DealAdditionalRow()
	if !res.Applied {
		m.setMessage(res.Reason.Error(), true)
		return
	}
	m.stats.RecordDeal()
	m.refresh()
	m.clearSelection()
	m.setMessage("发了一行新牌", false)
}

// undo 撤销最近的一次操作
func (m *Model) undo() {
	res := m.engine.Undo()
	if !res.Applied {
		m.setMessage(res.Reason.Error(), true)
		return
	}
	m.stats.RecordUndo()
	m.refresh()
	m.clearSelection()
	m.setMessage("已撤销", false)
}

// refresh 拉取最新的状态快照并记入统计
func (m *Model) refresh() {
	prev := m.state
	m.state = m.engine.GetState()

	// 撤销会使完成数下降，只统计新增的完成序列
	for i := prev.FoundationCount; i < m.state.FoundationCount; i++ {
		m.stats.RecordCompletedRun()
	}
	if m.state.Won && !prev.Won {
		m.stats.RecordWin(m.state.Moves)
	}
}

// clearSelection 取消当前选中
func (m *Model) clearSelection() {
	m.sel = nil
}

// setMessage 设置提示信息
func (m *Model) setMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

// ==================== 视图 ====================

// View 渲染视图
func (m *Model) View() string {
	var content strings.Builder

	content.WriteString(components.RenderTitle())
	content.WriteString("\n\n")

	selCol, selIndex := -1, -1
	if m.sel != nil {
		selCol, selIndex = m.sel.Column, m.sel.Index
	}
	content.WriteString(styleBox.Render(
		components.RenderBoard(m.state, m.cursor, selCol, selIndex)))
	content.WriteString("\n")

	content.WriteString(components.RenderFoundations(m.state))
	content.WriteString("\n")
	content.WriteString(components.RenderStatus(m.state))
	content.WriteString("\n\n")

	if m.state.Won {
		content.WriteString(components.RenderWinBanner(m.state.Moves))
		content.WriteString("\n")
		content.WriteString(styleSubtitle.Render(m.statsSummary()))
		content.WriteString("\n")
		content.WriteString(styleInactive.Render("r 再来一局  q 退出"))
	} else {
		if m.message != "" {
			content.WriteString(components.RenderMessage(m.message, m.isError))
			content.WriteString("\n")
		}
		content.WriteString(components.RenderHelp())
	}

	// 用空行填充到终端高度，防止旧内容残留（Bubble Tea 渲染行数减少时不会清除多余行）
	return m.padToWindowHeight(content.String())
}

// padToWindowHeight 将内容填充到终端窗口高度，避免渲染残留
func (m *Model) padToWindowHeight(content string) string {
	if m.winHeight <= 0 {
		return content
	}
	lines := strings.Count(content, "\n") + 1
	if lines < m.winHeight {
		content += strings.Repeat("\n", m.winHeight-lines)
	}
	return content
}

// Stats 返回会话统计快照（退出时打印用）
func (m *Model) Stats() game.SessionStats {
	return m.stats.Snapshot()
}

// statsSummary 格式化统计摘要
func (m *Model) statsSummary() string {
	s := m.stats.Snapshot()
	return fmt.Sprintf("本次会话: %d局 胜%d 移动%d 撤销%d 发牌%d",
		s.GamesStarted, s.GamesWon, s.TotalMoves, s.TotalUndos, s.TotalDeals)
}
