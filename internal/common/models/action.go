package models

// ActionType 表示玩家可以执行的动作类型
type ActionType int

const (
	ActionMove       ActionType = iota // 移动序列
	ActionDeal                         // 发一行新牌
	ActionCompletion                   // 完整序列移入回收区
	ActionUndo                         // 撤销
	ActionRestart                      // 重新开始
)

func (a ActionType) String() string {
	names := []string{"移动序列", "发牌", "序列完成", "撤销", "重新开始"}
	if a >= 0 && int(a) < len(names) {
		return names[a]
	}
	return "未知"
}

func (a ActionType) ShortName() string {
	names := []string{"M", "D", "S", "U", "R"}
	if a >= 0 && int(a) < len(names) {
		return names[a]
	}
	return "?"
}

// Position 表示牌桌上的一个位置：第 Column 列中自底向上第 Index 张牌
type Position struct {
	Column int // 列索引（从0开始）
	Index  int // 列内索引（0 为列底）
}
