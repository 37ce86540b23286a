package solitaire

import "github.com/charmbracelet/bubbles/key"

// KeyMap 游戏界面的按键绑定
type KeyMap struct {
	Left    key.Binding // 光标左移
	Right   key.Binding // 光标右移
	Up      key.Binding // 向下扩展选中的序列
	Down    key.Binding // 收缩选中的序列
	Confirm key.Binding // 选中/移动
	Cancel  key.Binding // 取消选中
	Deal    key.Binding // 发一行新牌
	Undo    key.Binding // 撤销
	Restart key.Binding // 重新开始
	Quit    key.Binding // 退出
}

// DefaultKeyMap 返回默认按键绑定
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "左移"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "右移"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "多选一张"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "少选一张"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("回车/空格", "选中并移动"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "取消选中"),
		),
		Deal: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "发牌"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "撤销"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "重开"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "退出"),
		),
	}
}
