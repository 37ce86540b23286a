package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ashworthNate/SpiderSolitaire/internal/card"
	"github.com/ashworthNate/SpiderSolitaire/pkg/rules"
)

// ==================== 测试辅助 ====================

// 构造一张正面朝上的牌
func faceUpCard(suit card.Suit, rank card.Rank) card.Card {
	c := card.NewCard(suit, rank)
	c.FaceUp = true
	return c
}

// 构造一张背面朝上的牌
func faceDownCard(suit card.Suit, rank card.Rank) card.Card {
	return card.NewCard(suit, rank)
}

// 构造一条正面朝上的同花色递减序列，从 top 开始共 n 张
func descendingRun(suit card.Suit, top card.Rank, n int) []card.Card {
	cards := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, faceUpCard(suit, top-card.Rank(i)))
	}
	return cards
}

// newBoardEngine 构造一个指定列布局的引擎
//
// 牌堆会自动缩减，使"列中牌 + 回收区 + 牌堆 == 104"的不变量成立；
// foundations 为回收区中预置的完整序列数。
func newBoardEngine(t *testing.T, columns [][]card.Card, foundations, maxDraws int) *GameEngine {
	t.Helper()

	e := NewEngine(&Config{Seed: 1, MaxDraws: maxDraws})

	inPlay := foundations * rules.RunLength
	cols := make([][]card.Card, len(columns))
	for i, col := range columns {
		c := make([]card.Card, len(col))
		copy(c, col)
		cols[i] = c
		inPlay += len(col)
	}

	d := card.NewDeck()
	if _, err := d.Deal(inPlay); err != nil {
		t.Fatalf("test board uses more than %d cards", card.DeckSize)
	}

	e.deck = d
	e.state.Columns = cols
	e.state.Foundations = make([][]card.Card, 0, foundations)
	for i := 0; i < foundations; i++ {
		e.state.Foundations = append(e.state.Foundations, descendingRun(card.Spades, card.King, rules.RunLength))
	}
	e.state.Moves = 0
	e.state.DealCount = 0
	e.history.Clear()
	e.addPlaceholders()
	return e
}

// countCards 统计快照中的真实牌总数（列 + 回收区 + 牌堆）
func countCards(state *GameState) int {
	total := state.Reserve
	for _, col := range state.Columns {
		for _, c := range col {
			if !c.IsPlaceholder() {
				total++
			}
		}
	}
	for _, f := range state.Foundations {
		total += len(f)
	}
	return total
}

// ==================== 初始布局测试 ====================

func TestNewEngine_InitialLayout(t *testing.T) {
	engine := NewEngine(&Config{Seed: 42})
	state := engine.GetState()

	if len(state.Columns) != 10 {
		t.Fatalf("expected 10 columns, got %d", len(state.Columns))
	}

	for i, col := range state.Columns {
		want := 5
		if i >= 6 {
			want = 6
		}
		if len(col) != want {
			t.Errorf("column %d: expected %d cards, got %d", i, want, len(col))
		}
		for j, c := range col {
			if j == len(col)-1 {
				if !c.FaceUp {
					t.Errorf("column %d: top card should be face up", i)
				}
			} else if c.FaceUp {
				t.Errorf("column %d card %d: should be face down", i, j)
			}
		}
	}

	if state.Reserve != 50 {
		t.Errorf("expected 50 cards in reserve, got %d", state.Reserve)
	}
	if state.DealCount != 0 || state.MaxDraws != 5 {
		t.Errorf("expected deal 0/5, got %d/%d", state.DealCount, state.MaxDraws)
	}
	if state.Moves != 0 {
		t.Errorf("expected 0 moves, got %d", state.Moves)
	}
	if state.Won {
		t.Error("fresh game must not be won")
	}
}

func TestNewEngine_CardConservation(t *testing.T) {
	engine := NewEngine(&Config{Seed: 7})
	if got := countCards(engine.GetState()); got != card.DeckSize {
		t.Errorf("expected %d cards in play, got %d", card.DeckSize, got)
	}
}

func TestNewEngine_NilConfig(t *testing.T) {
	engine := NewEngine(nil)
	state := engine.GetState()

	if len(state.Columns) != 10 {
		t.Errorf("expected default 10 columns, got %d", len(state.Columns))
	}
	if state.MaxDraws != 5 {
		t.Errorf("expected default 5 max draws, got %d", state.MaxDraws)
	}
}

func TestNewEngine_SameSeedSameLayout(t *testing.T) {
	s1 := NewEngine(&Config{Seed: 99}).GetState()
	s2 := NewEngine(&Config{Seed: 99}).GetState()

	if !reflect.DeepEqual(s1.Columns, s2.Columns) {
		t.Error("same seed should produce the same layout")
	}
}

// ==================== 选牌测试 ====================

func TestSelect(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceDownCard(card.Hearts, card.Two), faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Spades, card.Five), faceUpCard(card.Hearts, card.Four)},
		{},
	}, 0, 5)

	// 列顶的牌可选
	if res := engine.Select(0, 1); !res.Selectable {
		t.Errorf("top card should be selectable, got %v", res.Reason)
	}

	// 背面朝上的牌不可选
	if res := engine.Select(0, 0); res.Selectable || !errors.Is(res.Reason, ErrFaceDownCard) {
		t.Errorf("expected ErrFaceDownCard, got %v", res.Reason)
	}

	// 混合花色的序列不可选
	if res := engine.Select(1, 0); res.Selectable || !errors.Is(res.Reason, ErrBrokenSequence) {
		t.Errorf("expected ErrBrokenSequence, got %v", res.Reason)
	}

	// 占位符不可选
	if res := engine.Select(2, 0); res.Selectable || !errors.Is(res.Reason, ErrPlaceholderSource) {
		t.Errorf("expected ErrPlaceholderSource, got %v", res.Reason)
	}

	// 索引越界
	if res := engine.Select(9, 0); res.Selectable || !errors.Is(res.Reason, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", res.Reason)
	}
	if res := engine.Select(0, 5); res.Selectable || !errors.Is(res.Reason, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for card index, got %v", res.Reason)
	}
}

// ==================== 移动测试 ====================

func TestAttemptMove_SingleCard(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Hearts, card.Ten)},
	}, 0, 5)

	res := engine.AttemptMove(0, 0, 1)
	if !res.Applied {
		t.Fatalf("9♠ onto 10♥ should be legal, got %v", res.Reason)
	}

	state := engine.GetState()
	if state.Moves != 1 {
		t.Errorf("expected 1 move, got %d", state.Moves)
	}
	if len(state.Columns[1]) != 2 {
		t.Errorf("destination should hold 2 cards, got %d", len(state.Columns[1]))
	}
	// 源列空了，应补占位符
	if len(state.Columns[0]) != 1 || !state.Columns[0][0].IsPlaceholder() {
		t.Error("emptied source column should hold a single placeholder")
	}
}

func TestAttemptMove_NineOntoFive(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Hearts, card.Five)},
	}, 0, 5)

	res := engine.AttemptMove(0, 0, 1)
	if res.Applied || !errors.Is(res.Reason, ErrIllegalDestination) {
		t.Errorf("9 onto 5 must be rejected with ErrIllegalDestination, got %v", res.Reason)
	}
	if engine.GetState().Moves != 0 {
		t.Error("rejected move must not count")
	}
}

func TestAttemptMove_KingRunOntoEmptyColumn(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		descendingRun(card.Hearts, card.King, 5),
		{},
	}, 0, 5)

	res := engine.AttemptMove(0, 0, 1)
	if !res.Applied {
		t.Fatalf("King-high run onto empty column should always be legal, got %v", res.Reason)
	}

	state := engine.GetState()
	if len(state.Columns[1]) != 5 {
		t.Errorf("expected 5 cards on destination, got %d", len(state.Columns[1]))
	}
	for _, c := range state.Columns[1] {
		if c.IsPlaceholder() {
			t.Fatal("placeholder must be removed when real cards arrive")
		}
	}
}

func TestAttemptMove_SequencePreservesOrder(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		descendingRun(card.Spades, card.Eight, 3), // 8♠ 7♠ 6♠
		{faceUpCard(card.Hearts, card.Nine)},
	}, 0, 5)

	res := engine.AttemptMove(0, 0, 1)
	if !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}

	dest := engine.GetState().Columns[1]
	wantRanks := []card.Rank{card.Nine, card.Eight, card.Seven, card.Six}
	if len(dest) != len(wantRanks) {
		t.Fatalf("expected %d cards, got %d", len(wantRanks), len(dest))
	}
	for i, want := range wantRanks {
		if dest[i].Rank != want {
			t.Errorf("position %d: expected %v, got %v", i, want, dest[i].Rank)
		}
	}
}

func TestAttemptMove_FlipsExposedCard(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceDownCard(card.Hearts, card.Two), faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Hearts, card.Ten)},
	}, 0, 5)

	res := engine.AttemptMove(0, 1, 1)
	if !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}

	src := engine.GetState().Columns[0]
	if len(src) != 1 || !src[0].FaceUp {
		t.Error("exposed face-down card should be flipped face up")
	}
}

func TestAttemptMove_Rejections(t *testing.T) {
	board := [][]card.Card{
		{faceDownCard(card.Hearts, card.Two), faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Spades, card.Five), faceUpCard(card.Hearts, card.Four)},
		{},
		{faceUpCard(card.Hearts, card.Ten)},
	}

	tests := []struct {
		name    string
		from    int
		index   int
		to      int
		wantErr error
	}{
		{"背面朝上的牌", 0, 0, 3, ErrFaceDownCard},
		{"混合花色序列", 1, 0, 2, ErrBrokenSequence},
		{"占位符作为源", 2, 0, 3, ErrPlaceholderSource},
		{"源列与目标列相同", 0, 1, 0, ErrSameColumn},
		{"列索引越界", 0, 1, 99, ErrIndexOutOfRange},
		{"负列索引", -1, 0, 3, ErrIndexOutOfRange},
		{"牌索引越界", 0, 9, 3, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newBoardEngine(t, board, 0, 5)
			res := engine.AttemptMove(tt.from, tt.index, tt.to)
			if res.Applied || !errors.Is(res.Reason, tt.wantErr) {
				t.Errorf("expected %v, got applied=%v reason=%v", tt.wantErr, res.Applied, res.Reason)
			}
		})
	}
}

func TestAttemptMove_CardConservation(t *testing.T) {
	engine := NewEngine(&Config{Seed: 3})

	// 对真实发牌的布局盲试大量移动，牌数必须始终守恒
	for from := 0; from < 10; from++ {
		for to := 0; to < 10; to++ {
			state := engine.GetState()
			engine.AttemptMove(from, len(state.Columns[from])-1, to)
			if got := countCards(engine.GetState()); got != card.DeckSize {
				t.Fatalf("card count broken after move %d->%d: %d", from, to, got)
			}
		}
	}
}

// ==================== 完整序列回收测试 ====================

func TestCompletion_MoveCompletesRun(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		descendingRun(card.Spades, card.King, 12), // K♠..2♠
		{faceUpCard(card.Spades, card.Ace)},
	}, 0, 5)

	res := engine.AttemptMove(1, 0, 0)
	if !res.Applied {
		t.Fatalf("A♠ onto 2♠ should be legal, got %v", res.Reason)
	}

	state := engine.GetState()
	if state.FoundationCount != 1 {
		t.Fatalf("expected 1 foundation, got %d", state.FoundationCount)
	}
	if len(state.Foundations[0]) != 13 {
		t.Errorf("foundation should hold 13 cards, got %d", len(state.Foundations[0]))
	}
	// 两列都空了，都应有占位符
	for i, col := range state.Columns {
		if len(col) != 1 || !col[0].IsPlaceholder() {
			t.Errorf("column %d should hold a single placeholder", i)
		}
	}
	if got := countCards(state); got != card.DeckSize {
		t.Errorf("card count broken after completion: %d", got)
	}
}

func TestCompletion_RemovesExactlyThirteen(t *testing.T) {
	// 列底多压一张 K♠，完成时只能移走顶部的13张
	column := append([]card.Card{faceUpCard(card.Spades, card.King)},
		descendingRun(card.Spades, card.King, 12)...)

	engine := newBoardEngine(t, [][]card.Card{
		column,
		{faceUpCard(card.Spades, card.Ace)},
	}, 0, 5)

	res := engine.AttemptMove(1, 0, 0)
	if !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}

	state := engine.GetState()
	if state.FoundationCount != 1 {
		t.Fatalf("expected 1 foundation, got %d", state.FoundationCount)
	}
	if len(state.Columns[0]) != 1 || state.Columns[0][0].Rank != card.King {
		t.Error("bottom King must stay in the column")
	}
}

func TestCompletion_NoPartialRun(t *testing.T) {
	// 只有12张（K..2），不构成完整序列，不得移除
	engine := newBoardEngine(t, [][]card.Card{
		descendingRun(card.Spades, card.King, 11), // K♠..3♠
		{faceUpCard(card.Spades, card.Two)},
	}, 0, 5)

	res := engine.AttemptMove(1, 0, 0)
	if !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}
	if engine.GetState().FoundationCount != 0 {
		t.Error("12-card run must not be recycled")
	}
}

func TestCompletion_FlipsExposedCard(t *testing.T) {
	column := append([]card.Card{faceDownCard(card.Hearts, card.Seven)},
		descendingRun(card.Spades, card.King, 12)...)

	engine := newBoardEngine(t, [][]card.Card{
		column,
		{faceUpCard(card.Spades, card.Ace)},
	}, 0, 5)

	if res := engine.AttemptMove(1, 0, 0); !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}

	col := engine.GetState().Columns[0]
	if len(col) != 1 || !col[0].FaceUp || col[0].Rank != card.Seven {
		t.Error("card exposed by completion should be flipped face up")
	}
}

func TestCompletion_Cascade(t *testing.T) {
	// 红心整组压在底下，黑桃差一张A：补上后两组连续完成
	column := append(descendingRun(card.Hearts, card.King, 13),
		descendingRun(card.Spades, card.King, 12)...)

	engine := newBoardEngine(t, [][]card.Card{
		column,
		{faceUpCard(card.Spades, card.Ace)},
	}, 0, 5)

	if res := engine.AttemptMove(1, 0, 0); !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}

	state := engine.GetState()
	if state.FoundationCount != 2 {
		t.Fatalf("expected cascading completion of 2 runs, got %d", state.FoundationCount)
	}
	if got := countCards(state); got != card.DeckSize {
		t.Errorf("card count broken after cascade: %d", got)
	}
}

func TestCompletion_Win(t *testing.T) {
	// 已有7组完成，集齐第8组即获胜
	engine := newBoardEngine(t, [][]card.Card{
		descendingRun(card.Hearts, card.King, 12),
		{faceUpCard(card.Hearts, card.Ace)},
	}, 7, 5)

	if engine.IsWon() {
		t.Fatal("game must not be won before the final run")
	}

	if res := engine.AttemptMove(1, 0, 0); !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}

	if !engine.IsWon() {
		t.Error("completing the 8th run should win the game")
	}
	if !engine.GetState().Won {
		t.Error("snapshot should report the win")
	}
}

// ==================== 发牌测试 ====================

// fullBoard 构造一个每列都有牌的布局（不含占位符）
func fullBoard(n int) [][]card.Card {
	cols := make([][]card.Card, n)
	for i := range cols {
		cols[i] = []card.Card{faceUpCard(card.Spades, card.King)}
	}
	return cols
}

func TestDeal_Applied(t *testing.T) {
	engine := newBoardEngine(t, fullBoard(10), 0, 5)
	before := engine.GetState()

	res := engine.DealAdditionalRow()
	if !res.Applied {
		t.Fatalf("deal should succeed, got %v", res.Reason)
	}

	state := engine.GetState()
	if state.DealCount != before.DealCount+1 {
		t.Errorf("expected deal count %d, got %d", before.DealCount+1, state.DealCount)
	}
	if state.Reserve != before.Reserve-10 {
		t.Errorf("expected reserve %d, got %d", before.Reserve-10, state.Reserve)
	}
	for i, col := range state.Columns {
		if len(col) != len(before.Columns[i])+1 {
			t.Errorf("column %d should gain exactly one card", i)
		}
		if !col[len(col)-1].FaceUp {
			t.Errorf("column %d: dealt card should be face up", i)
		}
	}
}

func TestDeal_RejectedWithEmptyColumn(t *testing.T) {
	board := fullBoard(10)
	board[3] = nil // 空列

	engine := newBoardEngine(t, board, 0, 5)
	before := engine.GetState()

	res := engine.DealAdditionalRow()
	if res.Applied || !errors.Is(res.Reason, ErrEmptyColumnOnDeal) {
		t.Fatalf("expected ErrEmptyColumnOnDeal, got applied=%v reason=%v", res.Applied, res.Reason)
	}

	state := engine.GetState()
	if state.DealCount != before.DealCount || state.Reserve != before.Reserve {
		t.Error("rejected deal must not change deal count or reserve")
	}
}

func TestDeal_RejectedAtCap(t *testing.T) {
	engine := newBoardEngine(t, fullBoard(10), 0, 2)
	engine.state.DealCount = 2

	res := engine.DealAdditionalRow()
	if res.Applied || !errors.Is(res.Reason, ErrDealCapReached) {
		t.Errorf("expected ErrDealCapReached, got applied=%v reason=%v", res.Applied, res.Reason)
	}
}

func TestDeal_RejectedShortReserve(t *testing.T) {
	// 第一列塞入大量背面牌，使牌堆只剩7张，不够发满10列
	board := fullBoard(10)
	board[0] = make([]card.Card, 88)
	for i := range board[0] {
		board[0][i] = faceDownCard(card.Spades, card.King)
	}
	board[0][87] = faceUpCard(card.Spades, card.King)

	engine := newBoardEngine(t, board, 0, 5)
	if engine.deck.Remaining() != 7 {
		t.Fatalf("expected 7 cards in reserve, got %d", engine.deck.Remaining())
	}

	before := engine.deck.Remaining()
	res := engine.DealAdditionalRow()
	if res.Applied || !errors.Is(res.Reason, ErrReserveExhausted) {
		t.Fatalf("expected ErrReserveExhausted, got applied=%v reason=%v", res.Applied, res.Reason)
	}
	if engine.deck.Remaining() != before {
		t.Error("rejected deal must not consume reserve cards")
	}
	if engine.GetState().DealCount != 0 {
		t.Error("rejected deal must not change deal count")
	}
}

// ==================== 撤销测试 ====================

func TestUndo_EmptyHistory(t *testing.T) {
	engine := NewEngine(&Config{Seed: 5})

	res := engine.Undo()
	if res.Applied {
		t.Error("undo with empty history must not apply")
	}
	if !errors.Is(res.Reason, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", res.Reason)
	}
}

func TestUndo_RestoresMove(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceDownCard(card.Hearts, card.Two), faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Hearts, card.Ten)},
		{},
	}, 0, 5)

	before := engine.GetState()

	if res := engine.AttemptMove(0, 1, 1); !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}
	if res := engine.Undo(); !res.Applied {
		t.Fatalf("undo failed: %v", res.Reason)
	}

	after := engine.GetState()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("undo must restore the exact prior state\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestUndo_RestoresFlippedCard(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceDownCard(card.Hearts, card.Two), faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Hearts, card.Ten)},
	}, 0, 5)

	engine.AttemptMove(0, 1, 1)

	// 移动翻开了 2♥，撤销必须重新扣回去
	if res := engine.Undo(); !res.Applied {
		t.Fatalf("undo failed: %v", res.Reason)
	}
	src := engine.GetState().Columns[0]
	if src[0].FaceUp {
		t.Error("undo must restore the face-down state of the flipped card")
	}
}

func TestUndo_RestoresDeal(t *testing.T) {
	engine := newBoardEngine(t, fullBoard(10), 0, 5)
	before := engine.GetState()
	deckBefore := make([]card.Card, engine.deck.Remaining())
	copy(deckBefore, engine.deck.Cards())

	if res := engine.DealAdditionalRow(); !res.Applied {
		t.Fatalf("deal failed: %v", res.Reason)
	}
	if res := engine.Undo(); !res.Applied {
		t.Fatalf("undo failed: %v", res.Reason)
	}

	after := engine.GetState()
	if !reflect.DeepEqual(before, after) {
		t.Error("undoing a deal must restore the exact prior state")
	}
	for i, c := range engine.deck.Cards() {
		if c != deckBefore[i] {
			t.Fatalf("reserve order broken at %d after deal undo", i)
		}
	}
}

func TestUndo_RestoresCompletion(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		descendingRun(card.Spades, card.King, 12),
		{faceUpCard(card.Spades, card.Ace)},
	}, 0, 5)

	before := engine.GetState()

	if res := engine.AttemptMove(1, 0, 0); !res.Applied {
		t.Fatalf("move failed: %v", res.Reason)
	}
	if engine.GetState().FoundationCount != 1 {
		t.Fatal("completion should have fired")
	}

	// 第一次撤销：完成条目，13张牌回到列上
	if res := engine.Undo(); !res.Applied {
		t.Fatalf("first undo failed: %v", res.Reason)
	}
	mid := engine.GetState()
	if mid.FoundationCount != 0 {
		t.Error("undoing the completion must empty the foundation")
	}
	if len(mid.Columns[0]) != 13 {
		t.Errorf("run should be back on the column, got %d cards", len(mid.Columns[0]))
	}

	// 第二次撤销：移动条目，回到初始布局
	if res := engine.Undo(); !res.Applied {
		t.Fatalf("second undo failed: %v", res.Reason)
	}
	after := engine.GetState()
	if !reflect.DeepEqual(before, after) {
		t.Error("two undos must restore the exact pre-move state")
	}
}

func TestUndo_MultipleLevels(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		descendingRun(card.Spades, card.Nine, 2), // 9♠ 8♠
		{faceUpCard(card.Hearts, card.Ten)},
		{faceUpCard(card.Spades, card.Seven)},
	}, 0, 5)

	before := engine.GetState()

	if res := engine.AttemptMove(2, 0, 0); !res.Applied { // 7♠ -> 8♠
		t.Fatalf("first move failed: %v", res.Reason)
	}
	if res := engine.AttemptMove(0, 0, 1); !res.Applied { // 9♠8♠7♠ -> 10♥
		t.Fatalf("second move failed: %v", res.Reason)
	}

	if res := engine.Undo(); !res.Applied {
		t.Fatalf("undo failed: %v", res.Reason)
	}
	if res := engine.Undo(); !res.Applied {
		t.Fatalf("undo failed: %v", res.Reason)
	}

	after := engine.GetState()
	if !reflect.DeepEqual(before, after) {
		t.Error("undoing every operation must restore the initial state")
	}
	if res := engine.Undo(); res.Applied {
		t.Error("no further undo should be possible")
	}
}

// ==================== 重新开始测试 ====================

func TestRestart(t *testing.T) {
	engine := NewEngine(&Config{Seed: 11})

	state := engine.GetState()
	engine.AttemptMove(0, len(state.Columns[0])-1, 1)

	restarted := engine.Restart()
	if restarted.Moves != 0 || restarted.DealCount != 0 {
		t.Error("restart must reset counters")
	}
	if restarted.FoundationCount != 0 {
		t.Error("restart must clear foundations")
	}
	if res := engine.Undo(); res.Applied {
		t.Error("restart must clear the undo history")
	}
	if got := countCards(engine.GetState()); got != card.DeckSize {
		t.Errorf("card count broken after restart: %d", got)
	}
}

// ==================== 不变量测试 ====================

func TestInvariantViolation_PoisonsEngine(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Hearts, card.Ten)},
	}, 0, 5)

	// 绕过引擎直接从牌堆偷走一张牌，破坏牌数守恒
	engine.deck.Deal(1)

	res := engine.AttemptMove(0, 0, 1)
	if res.Applied || !errors.Is(res.Reason, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got applied=%v reason=%v", res.Applied, res.Reason)
	}

	// 之后的一切操作都应被拒绝
	if res := engine.DealAdditionalRow(); res.Applied || !errors.Is(res.Reason, ErrInvariantViolation) {
		t.Error("corrupted engine must reject deals")
	}
	if res := engine.Undo(); res.Applied || !errors.Is(res.Reason, ErrInvariantViolation) {
		t.Error("corrupted engine must reject undo")
	}
	if res := engine.Select(0, 0); res.Selectable || !errors.Is(res.Reason, ErrInvariantViolation) {
		t.Error("corrupted engine must reject selection")
	}
}

// ==================== CanMove 测试 ====================

func TestCanMove(t *testing.T) {
	engine := newBoardEngine(t, [][]card.Card{
		{faceUpCard(card.Spades, card.Nine)},
		{faceUpCard(card.Hearts, card.Ten)},
		{},
	}, 0, 5)

	if !engine.CanMove(0, 0, 1) {
		t.Error("9♠ onto 10♥ should be movable")
	}
	if !engine.CanMove(0, 0, 2) {
		t.Error("9♠ onto empty column should be movable")
	}
	if engine.CanMove(1, 0, 0) {
		t.Error("10♥ onto 9♠ must not be movable")
	}
	if engine.CanMove(0, 0, 0) {
		t.Error("same column must not be movable")
	}
	if engine.CanMove(2, 0, 0) {
		t.Error("placeholder must not be movable")
	}
}
