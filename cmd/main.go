package main

import (
	"fmt"

	"github.com/ashworthNate/SpiderSolitaire/pkg/game"
)

// 简单控制台蜘蛛纸牌演示
//
// 用固定种子开一局，演示移动、发牌和撤销，
// 交互式界面见 cmd/solitaire。
func main() {
	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║     蜘蛛纸牌（双花色）- 演示版       ║")
	fmt.Println("╚══════════════════════════════════════╝")
	fmt.Println()

	// 创建游戏配置（固定种子保证可重现）
	config := &game.Config{
		Columns:  10,
		MaxDraws: 5,
		Seed:     42,
	}

	engine := game.NewEngine(config)
	stats := game.NewStatsManager()
	stats.RecordGameStarted()

	fmt.Println("游戏配置:")
	fmt.Printf("  列数: %d\n", config.Columns)
	fmt.Printf("  最多发牌: %d 次\n", config.MaxDraws)
	fmt.Printf("  种子: %d\n", config.Seed)
	fmt.Println()

	fmt.Println("═══════════════════════════════════════")
	fmt.Println("初始布局")
	fmt.Println("═══════════════════════════════════════")
	printBoard(engine.GetState())

	// 扫描牌桌，执行第一个找到的合法移动
	fmt.Println("\n--- 尝试移动 ---")
	if from, index, to, ok := findLegalMove(engine); ok {
		state := engine.GetState()
		moving := state.Columns[from][index]
		res := engine.AttemptMove(from, index, to)
		if res.Applied {
			stats.RecordMove()
			fmt.Printf("把 %s 从第 %d 列移到第 %d 列\n", moving.String(), from+1, to+1)
		}
	} else {
		fmt.Println("没有找到合法移动")
	}

	// 演示一次被拒绝的移动
	res := engine.AttemptMove(0, 0, 1)
	if !res.Applied {
		fmt.Printf("非法移动被拒绝: %v\n", res.Reason)
	}

	// 发一行新牌
	fmt.Println("\n--- 发牌 ---")
	deal := engine.DealAdditionalRow()
	if deal.Applied {
		stats.RecordDeal()
		fmt.Println("发了一行新牌")
	} else {
		fmt.Printf("发牌被拒绝: %v\n", deal.Reason)
	}
	printBoard(engine.GetState())

	// 撤销刚才的操作
	fmt.Println("\n--- 撤销 ---")
	for i := 0; i < 2; i++ {
		undo := engine.Undo()
		if !undo.Applied {
			fmt.Printf("撤销停止: %v\n", undo.Reason)
			break
		}
		stats.RecordUndo()
		fmt.Println("撤销了一步")
	}
	printBoard(engine.GetState())

	// 打印会话统计
	s := stats.Snapshot()
	fmt.Printf("\n本次会话: 移动%d 撤销%d 发牌%d\n",
		s.TotalMoves, s.TotalUndos, s.TotalDeals)
	fmt.Println("\n演示完成！运行 cmd/solitaire 体验完整界面。")
}

// findLegalMove 扫描牌桌，返回第一个合法的单张牌移动
func findLegalMove(engine *game.GameEngine) (from, index, to int, ok bool) {
	state := engine.GetState()
	for f := range state.Columns {
		i := len(state.Columns[f]) - 1
		for t := range state.Columns {
			if engine.CanMove(f, i, t) {
				return f, i, t, true
			}
		}
	}
	return 0, 0, 0, false
}

// printBoard 打印整个牌桌
func printBoard(state *game.GameState) {
	fmt.Printf("\n牌堆: %d张  发牌: %d/%d  移动: %d  回收区: %d/%d\n",
		state.Reserve, state.DealCount, state.MaxDraws,
		state.Moves, state.FoundationCount, game.WinFoundations)

	rows := 0
	for _, col := range state.Columns {
		if len(col) > rows {
			rows = len(col)
		}
	}

	// 列号标题
	for i := range state.Columns {
		fmt.Printf("%-6d", i+1)
	}
	fmt.Println()

	for row := 0; row < rows; row++ {
		for _, col := range state.Columns {
			if row < len(col) {
				fmt.Printf("%-6s", col[row].String())
			} else {
				fmt.Printf("%-6s", "")
			}
		}
		fmt.Println()
	}
}
