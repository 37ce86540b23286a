package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ashworthNate/SpiderSolitaire/internal/card"
	"github.com/ashworthNate/SpiderSolitaire/pkg/rules"
)

// GameEngine 管理蜘蛛纸牌的状态和逻辑
//
// 引擎是唯一允许修改牌桌状态的组件：表示层发送意图
// （选牌、移动、发牌、撤销），引擎返回结果，表示层再根据
// GetState 的快照重绘。每个操作要么完整生效（并写入历史记录），
// 要么完整拒绝，不存在部分生效的中间态。
type GameEngine struct {
	state   *GameState   // 游戏状态
	config  *Config      // 游戏配置
	rules   *rules.Rules // 走牌规则判定器
	deck    *card.Deck   // 发牌堆（储备）
	history *History     // 撤销历史
	mutex   sync.RWMutex // 读写锁

	// 不变量被破坏后记录原因，此后拒绝一切操作
	corrupted error

	// 状态变化回调
	onStateChange func(state *GameState)
}

// Config 保存游戏配置
type Config struct {
	Columns  int   // 列数（标准为10）
	MaxDraws int   // 最多可发的额外行数（标准为5）
	Seed     int64 // 洗牌种子（0 表示使用当前时间）
}

// GameState 表示当前的牌桌状态
//
// GetState 返回的是深拷贝，表示层持有它不会与引擎产生别名。
type GameState struct {
	ID              string        // 游戏ID
	Columns         [][]card.Card // 所有列（index 0 为列底；空列含一个占位符）
	Foundations     [][]card.Card // 回收区中已完成的序列
	FoundationCount int           // 已完成的序列数
	Moves           int           // 移动次数
	DealCount       int           // 已发的额外行数
	MaxDraws        int           // 最多可发的额外行数
	Reserve         int           // 牌堆剩余牌数
	Won             bool          // 是否已获胜
}

// ==================== 结果类型 ====================

// MoveResult 移动操作的结果
type MoveResult struct {
	Applied bool  // 是否生效
	Reason  error // 被拒绝的原因（生效时为 nil）
}

// DealResult 发牌操作的结果
type DealResult struct {
	Applied bool  // 是否生效
	Reason  error // 被拒绝的原因
}

// UndoResult 撤销操作的结果
type UndoResult struct {
	Applied bool  // 是否生效
	Reason  error // 被拒绝的原因（无可撤销时为 ErrNothingToUndo）
}

// SelectResult 选牌校验的结果
type SelectResult struct {
	Selectable bool  // 所选位置是否可以作为移动起点
	Reason     error // 不可选的原因
}

// ==================== 错误定义 ====================

var (
	ErrIndexOutOfRange    = errors.New("列或牌的索引越界")
	ErrEmptySource        = errors.New("源列没有牌")
	ErrPlaceholderSource  = errors.New("占位符不能被移动")
	ErrFaceDownCard       = errors.New("背面朝上的牌不能移动")
	ErrBrokenSequence     = errors.New("所选的牌不构成同花色递减序列")
	ErrIllegalDestination = errors.New("目标列不能放置该序列")
	ErrSameColumn         = errors.New("源列与目标列相同")
	ErrReserveExhausted   = errors.New("牌堆的牌不足以发满一行")
	ErrDealCapReached     = errors.New("已达到最大发牌次数")
	ErrEmptyColumnOnDeal  = errors.New("存在空列时不能发牌")
	ErrNothingToUndo      = errors.New("没有可撤销的操作")
	ErrInvariantViolation = errors.New("牌数不变量被破坏（引擎内部错误）")
)

// 标准配置默认值
const (
	DefaultColumns  = 10
	DefaultMaxDraws = 5
)

// WinFoundations 获胜所需的完整序列数（104张 / 每序列13张）
const WinFoundations = card.DeckSize / rules.RunLength

// NewEngine 创建新的游戏引擎并完成初始发牌
func NewEngine(config *Config) *GameEngine {
	if config == nil {
		config = &Config{}
	}
	if config.Columns <= 0 {
		config.Columns = DefaultColumns
	}
	if config.MaxDraws <= 0 {
		config.MaxDraws = DefaultMaxDraws
	}

	engine := &GameEngine{
		config:  config,
		rules:   rules.NewRules(),
		history: NewHistory(),
	}
	engine.setup()
	return engine
}

// setup 洗牌并按蜘蛛纸牌标准布局发初始牌
//
// 前6列各发5张、其余列各发6张；每列只有最后一张正面朝上。
// 剩余的牌留在牌堆中等待 DealAdditionalRow。
func (e *GameEngine) setup() {
	seed := e.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.deck = card.NewDeckWithSeed(seed)

	columns := make([][]card.Card, e.config.Columns)
	for i := range columns {
		count := 5
		if i >= 6 {
			count = 6
		}
		pile, err := e.deck.Deal(count)
		if err != nil {
			// 列数在配置校验范围内时不可能发生
			pile = nil
		}
		if len(pile) > 0 {
			pile[len(pile)-1].FaceUp = true
		}
		columns[i] = pile
	}

	e.state = &GameState{
		ID:          fmt.Sprintf("game_%d", time.Now().Unix()),
		Columns:     columns,
		Foundations: make([][]card.Card, 0),
		MaxDraws:    e.config.MaxDraws,
	}
	e.history.Clear()
	e.corrupted = nil
	e.addPlaceholders()
}

// SetOnStateChange 设置状态变化回调函数
func (e *GameEngine) SetOnStateChange(fn func(state *GameState)) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.onStateChange = fn
}

// GetState 获取当前牌桌状态的深拷贝（线程安全）
func (e *GameEngine) GetState() *GameState {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.copyState()
}

// Restart 重新开始一局（同一配置，重新洗牌，清空历史）
func (e *GameEngine) Restart() *GameState {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.setup()
	e.notifyStateChange()
	return e.copyState()
}

// IsWon 判断是否已集齐全部8组完整序列
func (e *GameEngine) IsWon() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return len(e.state.Foundations) == WinFoundations
}

// Select 校验某个位置能否作为移动的起点
//
// 表示层用它决定是否高亮所选的牌；不修改任何状态。
func (e *GameEngine) Select(column, index int) SelectResult {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.corrupted != nil {
		return SelectResult{Selectable: false, Reason: ErrInvariantViolation}
	}
	if column < 0 || column >= len(e.state.Columns) {
		return SelectResult{Selectable: false, Reason: ErrIndexOutOfRange}
	}
	col := e.state.Columns[column]
	if seq := e.rules.MovableSequence(col, index); seq != nil {
		return SelectResult{Selectable: true}
	}
	return SelectResult{Selectable: false, Reason: e.sequenceError(col, index)}
}

// CanMove 判断一次移动是否合法（不执行移动）
func (e *GameEngine) CanMove(fromCol, cardIndex, toCol int) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.corrupted != nil {
		return false
	}
	if fromCol < 0 || fromCol >= len(e.state.Columns) ||
		toCol < 0 || toCol >= len(e.state.Columns) || fromCol == toCol {
		return false
	}
	return e.rules.CanMove(e.state.Columns[fromCol], cardIndex, e.state.Columns[toCol])
}

// AttemptMove 尝试把源列 cardIndex 起的序列移动到目标列
//
// 合法时执行移动：序列保持顺序追加到目标列，源列新暴露的
// 背面牌翻开，移动计数加一，写入历史记录，随后在目标列检查
// 完整序列并维护占位符。非法时返回原因，状态不变。
func (e *GameEngine) AttemptMove(fromCol, cardIndex, toCol int) MoveResult {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.corrupted != nil {
		return MoveResult{Applied: false, Reason: ErrInvariantViolation}
	}
	if fromCol < 0 || fromCol >= len(e.state.Columns) ||
		toCol < 0 || toCol >= len(e.state.Columns) {
		return MoveResult{Applied: false, Reason: ErrIndexOutOfRange}
	}
	if fromCol == toCol {
		return MoveResult{Applied: false, Reason: ErrSameColumn}
	}

	src := e.state.Columns[fromCol]
	dst := e.state.Columns[toCol]

	seq := e.rules.MovableSequence(src, cardIndex)
	if seq == nil {
		return MoveResult{Applied: false, Reason: e.sequenceError(src, cardIndex)}
	}
	if !e.rules.CanPlace(seq, dst) {
		return MoveResult{Applied: false, Reason: ErrIllegalDestination}
	}

	// 目标列若只有占位符，先移除再放真实牌
	dst = stripPlaceholder(dst)

	moving := make([]card.Card, len(src)-cardIndex)
	copy(moving, src[cardIndex:])
	src = src[:cardIndex]

	// 源列新暴露的背面牌翻开（撤销时需要还原，记录在案）
	flipped := false
	if len(src) > 0 && !src[len(src)-1].IsPlaceholder() && !src[len(src)-1].FaceUp {
		src[len(src)-1].FaceUp = true
		flipped = true
	}

	e.state.Columns[fromCol] = src
	e.state.Columns[toCol] = append(dst, moving...)
	e.state.Moves++
	e.history.Push(NewMoveEntry(fromCol, toCol, len(moving), flipped))

	e.checkForCompletedRuns(toCol)
	e.addPlaceholders()

	if err := e.verifyInvariant(); err != nil {
		return MoveResult{Applied: false, Reason: err}
	}
	e.notifyStateChange()
	return MoveResult{Applied: true}
}

// DealAdditionalRow 从牌堆向每一列发一张正面朝上的牌
//
// 前置条件：没有空列（占位符列）、未达到最大发牌次数、
// 牌堆足够发满一行。任一条件不满足则整行不发（原子性）。
func (e *GameEngine) DealAdditionalRow() DealResult {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.corrupted != nil {
		return DealResult{Applied: false, Reason: ErrInvariantViolation}
	}
	if e.hasPlaceholder() {
		return DealResult{Applied: false, Reason: ErrEmptyColumnOnDeal}
	}
	if e.state.DealCount >= e.state.MaxDraws {
		return DealResult{Applied: false, Reason: ErrDealCapReached}
	}
	if e.deck.Remaining() < len(e.state.Columns) {
		return DealResult{Applied: false, Reason: ErrReserveExhausted}
	}

	dealt, err := e.deck.Deal(len(e.state.Columns))
	if err != nil {
		return DealResult{Applied: false, Reason: ErrReserveExhausted}
	}

	// 历史记录保存发出时（背面朝上）的原始牌，撤销时原样放回牌堆
	e.history.Push(NewDealEntry(dealt))

	for i := range e.state.Columns {
		c := dealt[i]
		c.FaceUp = true
		e.state.Columns[i] = append(e.state.Columns[i], c)
	}
	e.state.DealCount++

	// 新发的牌可能正好补全某列的完整序列
	for i := range e.state.Columns {
		e.checkForCompletedRuns(i)
	}
	e.addPlaceholders()

	if err := e.verifyInvariant(); err != nil {
		return DealResult{Applied: false, Reason: err}
	}
	e.notifyStateChange()
	return DealResult{Applied: true}
}

// Undo 撤销最近的一次操作
//
// 每次调用只逆转一条历史记录：移动、发牌或序列完成。
// 历史为空时返回"没有可撤销的操作"，不视为错误。
func (e *GameEngine) Undo() UndoResult {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.corrupted != nil {
		return UndoResult{Applied: false, Reason: ErrInvariantViolation}
	}

	entry, ok := e.history.Pop()
	if !ok {
		return UndoResult{Applied: false, Reason: ErrNothingToUndo}
	}

	switch entry.Kind {
	case EntryMove:
		e.undoMove(entry)
	case EntryDeal:
		e.undoDeal(entry)
	case EntryCompletion:
		e.undoCompletion(entry)
	}

	e.addPlaceholders()

	if err := e.verifyInvariant(); err != nil {
		return UndoResult{Applied: false, Reason: err}
	}
	e.notifyStateChange()
	return UndoResult{Applied: true}
}

// ==================== 私有方法 ====================

// sequenceError 把"不可移动"细化为具体原因
func (e *GameEngine) sequenceError(col []card.Card, index int) error {
	if len(col) == 0 {
		return ErrEmptySource
	}
	if index < 0 || index >= len(col) {
		return ErrIndexOutOfRange
	}
	c := col[index]
	if c.IsPlaceholder() {
		return ErrPlaceholderSource
	}
	if !c.FaceUp {
		return ErrFaceDownCard
	}
	return ErrBrokenSequence
}

// checkForCompletedRuns 检查某列顶部是否形成完整序列并移入回收区
//
// 只在恰好13张构成 K 到 A 的同花色序列时触发，绝不部分移除；
// 移除后新暴露的背面牌翻开。一次检查可能连续触发多组（级联）。
func (e *GameEngine) checkForCompletedRuns(colIndex int) {
	for {
		col := e.state.Columns[colIndex]
		if len(col) < rules.RunLength {
			return
		}
		run := col[len(col)-rules.RunLength:]
		if !e.rules.IsFullRun(run) {
			return
		}

		removed := make([]card.Card, rules.RunLength)
		copy(removed, run)
		col = col[:len(col)-rules.RunLength]

		flipped := false
		if len(col) > 0 && !col[len(col)-1].IsPlaceholder() && !col[len(col)-1].FaceUp {
			col[len(col)-1].FaceUp = true
			flipped = true
		}

		e.state.Columns[colIndex] = col
		e.state.Foundations = append(e.state.Foundations, removed)
		e.history.Push(NewCompletionEntry(colIndex, removed, flipped))
	}
}

// undoMove 逆转一次序列移动
func (e *GameEngine) undoMove(entry Entry) {
	dst := stripPlaceholder(e.state.Columns[entry.ToColumn])
	src := stripPlaceholder(e.state.Columns[entry.FromColumn])

	moving := make([]card.Card, entry.Count)
	copy(moving, dst[len(dst)-entry.Count:])
	dst = dst[:len(dst)-entry.Count]

	// 移动时翻开的牌要重新扣回去
	if entry.Flipped && len(src) > 0 {
		src[len(src)-1].FaceUp = false
	}

	e.state.Columns[entry.ToColumn] = dst
	e.state.Columns[entry.FromColumn] = append(src, moving...)
	e.state.Moves--
}

// undoDeal 逆转一次发牌：取回每列的顶牌并按原顺序放回牌堆
func (e *GameEngine) undoDeal(entry Entry) {
	for i := range e.state.Columns {
		col := e.state.Columns[i]
		e.state.Columns[i] = col[:len(col)-1]
	}
	e.deck.Return(entry.DealtCards)
	e.state.DealCount--
}

// undoCompletion 逆转一次序列完成：把13张牌从回收区放回原列
func (e *GameEngine) undoCompletion(entry Entry) {
	// 完成条目按序压栈，撤销时回收区最后一组正是本条目的序列
	e.state.Foundations = e.state.Foundations[:len(e.state.Foundations)-1]

	col := stripPlaceholder(e.state.Columns[entry.Column])
	if entry.Flipped && len(col) > 0 {
		col[len(col)-1].FaceUp = false
	}
	e.state.Columns[entry.Column] = append(col, entry.Run...)
}

// addPlaceholders 维护空列占位符
//
// 任何结构性变化（移动、发牌、完成、撤销）之后调用：
// 没有真实牌的列补一个占位符，占位符与真实牌混在一起时移除。
func (e *GameEngine) addPlaceholders() {
	for i, col := range e.state.Columns {
		real := 0
		for _, c := range col {
			if !c.IsPlaceholder() {
				real++
			}
		}
		if real == 0 {
			if len(col) != 1 || !col[0].IsPlaceholder() {
				e.state.Columns[i] = []card.Card{card.NewPlaceholder()}
			}
		} else if real != len(col) {
			e.state.Columns[i] = stripPlaceholder(col)
		}
	}
}

// hasPlaceholder 判断是否存在占位符列（用于发牌前置检查）
func (e *GameEngine) hasPlaceholder() bool {
	for _, col := range e.state.Columns {
		if len(col) == 0 {
			return true
		}
		for _, c := range col {
			if c.IsPlaceholder() {
				return true
			}
		}
	}
	return false
}

// verifyInvariant 校验牌数守恒：列中真实牌 + 回收区 + 牌堆 == 104
//
// 不变量被破坏说明引擎自身有错误；此后引擎拒绝所有操作。
func (e *GameEngine) verifyInvariant() error {
	total := e.deck.Remaining()
	for _, col := range e.state.Columns {
		for _, c := range col {
			if !c.IsPlaceholder() {
				total++
			}
		}
	}
	for _, f := range e.state.Foundations {
		total += len(f)
	}
	if total != card.DeckSize {
		e.corrupted = ErrInvariantViolation
		return ErrInvariantViolation
	}
	return nil
}

// copyState 复制牌桌状态（用于返回给外部）
func (e *GameEngine) copyState() *GameState {
	copied := *e.state
	copied.Columns = make([][]card.Card, len(e.state.Columns))
	for i, col := range e.state.Columns {
		colCopy := make([]card.Card, len(col))
		copy(colCopy, col)
		copied.Columns[i] = colCopy
	}
	copied.Foundations = make([][]card.Card, len(e.state.Foundations))
	for i, f := range e.state.Foundations {
		fCopy := make([]card.Card, len(f))
		copy(fCopy, f)
		copied.Foundations[i] = fCopy
	}
	copied.FoundationCount = len(e.state.Foundations)
	copied.Reserve = e.deck.Remaining()
	copied.Won = len(e.state.Foundations) == WinFoundations
	return &copied
}

// notifyStateChange 通知状态变化
func (e *GameEngine) notifyStateChange() {
	if e.onStateChange != nil {
		go e.onStateChange(e.copyState())
	}
}

// stripPlaceholder 返回去掉占位符后的列
func stripPlaceholder(col []card.Card) []card.Card {
	if len(col) == 1 && col[0].IsPlaceholder() {
		return col[:0]
	}
	out := col[:0:len(col)]
	for _, c := range col {
		if !c.IsPlaceholder() {
			out = append(out, c)
		}
	}
	return out
}
