package card

import (
	"errors"
	"math/rand"
	"time"
)

// Deck 表示蜘蛛纸牌的发牌堆（双花色：黑桃、红心各两副，共104张）
type Deck struct {
	cards []Card // 牌堆中的所有牌（index 0 为堆顶）
}

// ErrNoCardsLeft 表示牌堆剩余的牌不足，无法继续发牌
var ErrNoCardsLeft = errors.New("牌堆剩余的牌不足")

// DeckSize 双花色蜘蛛纸牌的总牌数
const DeckSize = 104

// NewDeck 创建一副新的104张双花色牌堆（全部背面朝上，未洗牌）
func NewDeck() *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
	}
	// 两副牌，每副包含 黑桃、红心 各两组
	suits := []Suit{Spades, Hearts, Spades, Hearts}
	for i := 0; i < 2; i++ {
		for _, suit := range suits {
			for rank := Ace; rank <= King; rank++ {
				d.cards = append(d.cards, NewCard(suit, rank))
			}
		}
	}
	return d
}

// NewDeckWithSeed 创建一副新牌堆并使用指定种子洗牌
func NewDeckWithSeed(seed int64) *Deck {
	d := NewDeck()
	d.ShuffleWithSeed(seed)
	return d
}

// Shuffle 使用当前时间作为种子洗牌
func (d *Deck) Shuffle() {
	d.ShuffleWithSeed(time.Now().UnixNano())
}

// ShuffleWithSeed 使用指定种子洗牌
func (d *Deck) ShuffleWithSeed(seed int64) {
	r := rand.New(rand.NewSource(seed))
	// Fisher-Yates 洗牌算法
	for i := len(d.cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal 从牌堆顶部发 n 张牌
//
// 剩余牌数不足时返回 ErrNoCardsLeft，且不发出任何牌，
// 由调用方（游戏引擎）决定如何处理。
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, ErrNoCardsLeft
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt, nil
}

// Return 将若干张牌按原顺序放回牌堆顶部（Deal 的精确逆操作，用于撤销发牌）
func (d *Deck) Return(cards []Card) {
	if len(cards) == 0 {
		return
	}
	restored := make([]Card, 0, len(cards)+len(d.cards))
	restored = append(restored, cards...)
	restored = append(restored, d.cards...)
	d.cards = restored
}

// Remaining 返回牌堆中剩余的牌数
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards 返回牌堆中剩余的所有牌
func (d *Deck) Cards() []Card {
	return d.cards
}
