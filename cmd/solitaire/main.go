package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ashworthNate/SpiderSolitaire/internal/config"
	"github.com/ashworthNate/SpiderSolitaire/pkg/game"
	"github.com/ashworthNate/SpiderSolitaire/ui/solitaire"
)

// 命令行参数
var (
	configPath = flag.String("config", "", "配置文件路径（YAML，可选）")
	seed       = flag.Int64("seed", 0, "洗牌种子（0 表示随机，覆盖配置文件）")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	engine := game.NewEngine(&game.Config{
		Columns:  cfg.Columns,
		MaxDraws: cfg.MaxDraws,
		Seed:     cfg.Seed,
	})

	model := solitaire.NewModel(engine)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "运行界面失败: %v\n", err)
		os.Exit(1)
	}

	// 退出时打印会话统计
	s := model.Stats()
	fmt.Printf("本次会话: %d局 胜%d 移动%d 撤销%d 发牌%d 完成序列%d\n",
		s.GamesStarted, s.GamesWon, s.TotalMoves, s.TotalUndos, s.TotalDeals, s.CompletedRuns)
}
