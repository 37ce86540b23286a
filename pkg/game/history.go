package game

import (
	"github.com/ashworthNate/SpiderSolitaire/internal/card"
	"github.com/ashworthNate/SpiderSolitaire/internal/common/models"
)

// EntryKind 表示历史记录条目的种类（封闭的标签联合）
type EntryKind int

const (
	EntryMove       EntryKind = iota // 序列移动
	EntryDeal                        // 发一行新牌
	EntryCompletion                  // 完整序列移入回收区
)

// Entry 表示一条可精确逆转的历史记录
//
// 每种条目只携带逆转自身所需的数据；撤销是对 Kind 的一次分发，
// 不依赖任何"重放"机制。占位符的增删不记录，撤销后重新推导。
type Entry struct {
	Kind   EntryKind         // 条目种类
	Action models.ActionType // 对应的动作类型（用于显示）

	// 序列移动：从 FromColumn 移了 Count 张牌到 ToColumn，
	// Flipped 表示移动后源列顶是否发生了翻面
	FromColumn int  // 源列索引
	ToColumn   int  // 目标列索引
	Count      int  // 移动的牌数
	Flipped    bool // 是否翻开了新暴露的牌（完成条目复用此字段）

	// 发牌：按列序记录发出的每张牌（用于放回牌堆）
	DealtCards []card.Card

	// 序列完成：从 Column 列顶移除的13张牌（按列内原顺序）
	Column int
	Run    []card.Card
}

// NewMoveEntry 创建一条序列移动记录
func NewMoveEntry(fromCol, toCol, count int, flipped bool) Entry {
	return Entry{
		Kind:       EntryMove,
		Action:     models.ActionMove,
		FromColumn: fromCol,
		ToColumn:   toCol,
		Count:      count,
		Flipped:    flipped,
	}
}

// NewDealEntry 创建一条发牌记录
func NewDealEntry(dealt []card.Card) Entry {
	cards := make([]card.Card, len(dealt))
	copy(cards, dealt)
	return Entry{
		Kind:       EntryDeal,
		Action:     models.ActionDeal,
		DealtCards: cards,
	}
}

// NewCompletionEntry 创建一条序列完成记录
func NewCompletionEntry(column int, run []card.Card, flipped bool) Entry {
	cards := make([]card.Card, len(run))
	copy(cards, run)
	return Entry{
		Kind:    EntryCompletion,
		Action:  models.ActionCompletion,
		Column:  column,
		Run:     cards,
		Flipped: flipped,
	}
}

// History 管理游戏内的撤销历史（后进先出）
type History struct {
	entries []Entry // 历史记录栈
}

// NewHistory 创建历史记录栈
func NewHistory() *History {
	return &History{
		entries: make([]Entry, 0),
	}
}

// Push 压入一条新记录
func (h *History) Push(e Entry) {
	h.entries = append(h.entries, e)
}

// Pop 弹出最近的一条记录，历史为空时返回 false
func (h *History) Pop() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	e := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return e, true
}

// Peek 查看最近的一条记录但不弹出
func (h *History) Peek() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len 返回历史记录条数
func (h *History) Len() int {
	return len(h.entries)
}

// Clear 清空历史记录（重新开始时调用）
func (h *History) Clear() {
	h.entries = h.entries[:0]
}
