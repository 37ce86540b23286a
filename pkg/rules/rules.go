package rules

import (
	"github.com/ashworthNate/SpiderSolitaire/internal/card"
)

// Rules 蜘蛛纸牌（双花色）走牌规则判定器
//
// 所有方法均为纯函数：只读取传入的列切片（index 0 为列底，
// 最后一个元素为列顶），不修改任何状态。
type Rules struct{}

// NewRules 创建规则判定器
func NewRules() *Rules {
	return &Rules{}
}

// RunLength 一组完整同花色序列的长度（K 到 A）
const RunLength = 13

// MovableSequence 提取从 start 到列顶的可移动序列
//
// 序列可整体移动的条件：起始牌为正面朝上的真实牌，且从起始牌到
// 列顶的每一张都与起始牌同花色、正面朝上、点数恰好依次递减1。
// 列顶单张牌总是可移动的（不要求与下方的牌连续）。
// 条件不满足时返回 nil。
func (r *Rules) MovableSequence(col []card.Card, start int) []card.Card {
	if start < 0 || start >= len(col) {
		return nil
	}
	first := col[start]
	if first.IsPlaceholder() || !first.FaceUp {
		return nil
	}

	seq := col[start:]
	for i := 0; i < len(seq)-1; i++ {
		next := seq[i+1]
		if next.IsPlaceholder() || !next.FaceUp {
			return nil
		}
		if !seq[i].SameSuit(next) || seq[i].Rank != next.Rank+1 {
			return nil
		}
	}
	return seq
}

// CanPlace 判断一个序列能否放到目标列上
//
// 目标列为空或只有占位符时无条件允许；否则目标列顶必须是
// 正面朝上的真实牌，且点数恰好比序列首牌大1。放置合法性与
// 花色无关（标准蜘蛛规则：花色只影响序列整体移动，不影响放置）。
func (r *Rules) CanPlace(seq []card.Card, dest []card.Card) bool {
	if len(seq) == 0 || seq[0].IsPlaceholder() {
		return false
	}
	if len(dest) == 0 {
		return true
	}
	top := dest[len(dest)-1]
	if top.IsPlaceholder() {
		// 只允许"仅占位符"的列；占位符下压着真实牌属于非法状态
		return len(dest) == 1
	}
	if !top.FaceUp {
		return false
	}
	return top.Rank == seq[0].Rank+1
}

// CanMove 判断能否把源列 start 起的序列移动到目标列
func (r *Rules) CanMove(src []card.Card, start int, dest []card.Card) bool {
	seq := r.MovableSequence(src, start)
	if seq == nil {
		return false
	}
	return r.CanPlace(seq, dest)
}

// IsFullRun 判断一组牌是否构成完整的同花色序列（K 到 A 共13张，全部正面朝上）
func (r *Rules) IsFullRun(cards []card.Card) bool {
	if len(cards) != RunLength {
		return false
	}
	first := cards[0]
	if first.IsPlaceholder() || first.Rank != card.King {
		return false
	}
	expected := card.King
	for _, c := range cards {
		if c.IsPlaceholder() || !c.FaceUp {
			return false
		}
		if !c.SameSuit(first) || c.Rank != expected {
			return false
		}
		expected--
	}
	return true
}
