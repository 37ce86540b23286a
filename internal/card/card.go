package card

import "fmt"

// Suit 表示扑克牌的花色（双花色蜘蛛纸牌只使用黑桃和红心）
type Suit int

const (
	Spades Suit = iota // 黑桃
	Hearts             // 红心
)

// 花色符号（用于显示）
var suitNames = []string{"♠", "♥"}
var suitFullNames = []string{"黑桃", "红心"}

// String 返回花色的符号表示
func (s Suit) String() string {
	if s >= 0 && int(s) < len(suitNames) {
		return suitNames[s]
	}
	return "?"
}

// FullName 返回花色的中文全称
func (s Suit) FullName() string {
	if s >= 0 && int(s) < len(suitFullNames) {
		return suitFullNames[s]
	}
	return "未知"
}

// Rank 表示扑克牌的点数（蜘蛛纸牌中 A 最小、K 最大）
type Rank int

const (
	Ace   Rank = iota + 1 // A
	Two                   // 2
	Three                 // 3
	Four                  // 4
	Five                  // 5
	Six                   // 6
	Seven                 // 7
	Eight                 // 8
	Nine                  // 9
	Ten                   // 10
	Jack                  // J
	Queen                 // Q
	King                  // K
)

// 点数名称（用于显示）
var rankNames = []string{
	"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K",
}

// String 返回点数的符号表示
func (r Rank) String() string {
	if r >= Ace && int(r) < len(rankNames) {
		return rankNames[r]
	}
	return "?"
}

// Value 返回点数的数值（用于比较）
func (r Rank) Value() int {
	return int(r)
}

// Kind 表示牌的种类：真实牌或空列占位符
//
// 占位符不是 Card 的子类型，而是同一值类型上的标签。所有涉及
// 花色、点数的逻辑必须先检查标签，避免占位符意外参与序列判断。
type Kind int

const (
	KindCard        Kind = iota // 真实牌
	KindPlaceholder             // 空列占位符
)

// Card 表示一张扑克牌（或空列占位符）
//
// 身份（花色、点数）在创建后不可变，只有 FaceUp 会变化。
type Card struct {
	Kind   Kind // 种类
	Suit   Suit // 花色
	Rank   Rank // 点数
	FaceUp bool // 是否正面朝上
}

// NewCard 创建一张新扑克牌（默认背面朝上）
func NewCard(suit Suit, rank Rank) Card {
	return Card{Kind: KindCard, Suit: suit, Rank: rank}
}

// NewPlaceholder 创建一个空列占位符（始终正面朝上）
func NewPlaceholder() Card {
	return Card{Kind: KindPlaceholder, FaceUp: true}
}

// IsPlaceholder 判断是否为占位符
func (c Card) IsPlaceholder() bool {
	return c.Kind == KindPlaceholder
}

// Flip 翻转牌面，返回翻转后的牌（Card 是值类型）
func (c Card) Flip() Card {
	c.FaceUp = !c.FaceUp
	return c
}

// String 返回扑克牌的字符串表示（如 "K♠"）
func (c Card) String() string {
	if c.IsPlaceholder() {
		return "[--]"
	}
	if !c.FaceUp {
		return "[??]"
	}
	return c.Rank.String() + c.Suit.String()
}

// FormatCard 返回格式化的牌字符串（用于显示）
func (c Card) FormatCard() string {
	if c.IsPlaceholder() || !c.FaceUp {
		return c.String()
	}
	return fmt.Sprintf("[%s]", c.Rank.String()+c.Suit.String())
}

// SameSuit 判断两张真实牌是否同花色
func (c Card) SameSuit(other Card) bool {
	if c.IsPlaceholder() || other.IsPlaceholder() {
		return false
	}
	return c.Suit == other.Suit
}

// IsRed 判断是否为红牌（红心）
func (c Card) IsRed() bool {
	return c.Kind == KindCard && c.Suit == Hearts
}

// IsBlack 判断是否为黑牌（黑桃）
func (c Card) IsBlack() bool {
	return c.Kind == KindCard && c.Suit == Spades
}
