package game

import (
	"sync"
	"time"
)

// SessionStats 本次会话的累计统计信息
type SessionStats struct {
	GamesStarted  int       `json:"games_started"`  // 开始的局数
	GamesWon      int       `json:"games_won"`      // 获胜的局数
	TotalMoves    int       `json:"total_moves"`    // 累计移动次数
	TotalUndos    int       `json:"total_undos"`    // 累计撤销次数
	TotalDeals    int       `json:"total_deals"`    // 累计发牌次数
	CompletedRuns int       `json:"completed_runs"` // 累计完成的序列数
	BestWinMoves  int       `json:"best_win_moves"` // 获胜时的最少移动数（0表示尚未获胜）
	CreatedAt     time.Time `json:"created_at"`     // 统计开始时间
	UpdatedAt     time.Time `json:"updated_at"`     // 最后更新时间
}

// StatsManager 管理会话统计数据（线程安全）
type StatsManager struct {
	mu    sync.RWMutex // 读写锁
	stats SessionStats // 累计数据
}

// NewStatsManager 创建统计管理器
func NewStatsManager() *StatsManager {
	now := time.Now()
	return &StatsManager{
		stats: SessionStats{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// RecordGameStarted 记录新开一局
func (s *StatsManager) RecordGameStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.GamesStarted++
	s.stats.UpdatedAt = time.Now()
}

// RecordMove 记录一次成功的移动
func (s *StatsManager) RecordMove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalMoves++
	s.stats.UpdatedAt = time.Now()
}

// RecordUndo 记录一次成功的撤销
func (s *StatsManager) RecordUndo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalUndos++
	s.stats.UpdatedAt = time.Now()
}

// RecordDeal 记录一次成功的发牌
func (s *StatsManager) RecordDeal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalDeals++
	s.stats.UpdatedAt = time.Now()
}

// RecordCompletedRun 记录完成一组完整序列
func (s *StatsManager) RecordCompletedRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.CompletedRuns++
	s.stats.UpdatedAt = time.Now()
}

// RecordWin 记录一次获胜（moves 为获胜时的移动数）
func (s *StatsManager) RecordWin(moves int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.GamesWon++
	if s.stats.BestWinMoves == 0 || moves < s.stats.BestWinMoves {
		s.stats.BestWinMoves = moves
	}
	s.stats.UpdatedAt = time.Now()
}

// Snapshot 返回当前统计数据的副本
func (s *StatsManager) Snapshot() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
