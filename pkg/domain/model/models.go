package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticker 取引所ごとのティッカー
type Ticker struct {
	Venue      string
	Symbol     string
	Open       decimal.Decimal
	High       decimal.Decimal
	Low        decimal.Decimal
	Close      decimal.Decimal
	Volume     decimal.Decimal
	Amount     decimal.Decimal
	Count      int64
	TickerTime time.Time
	RecordedAt time.Time
}

// Spread 最良気配の売買差
type Spread struct {
	Venue   string
	Symbol  string
	BestAsk decimal.Decimal
	BestBid decimal.Decimal
}

// Value スプレッド幅
func (s *Spread) Value() decimal.Decimal {
	return s.BestAsk.Sub(s.BestBid)
}
