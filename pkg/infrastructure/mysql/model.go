package mysql

import (
	"time"

	"apifiny/pkg/domain/model"

	"github.com/shopspring/decimal"
)

// Ticker ティッカー
type Ticker struct {
	ID         uint64          `gorm:"primaryKey"`
	Venue      string          `gorm:"index:idx_venue_symbol_recorded_at"`
	Symbol     string          `gorm:"index:idx_venue_symbol_recorded_at"`
	Open       decimal.Decimal `gorm:"type:decimal(30,12)"`
	High       decimal.Decimal `gorm:"type:decimal(30,12)"`
	Low        decimal.Decimal `gorm:"type:decimal(30,12)"`
	Close      decimal.Decimal `gorm:"type:decimal(30,12)"`
	Volume     decimal.Decimal `gorm:"type:decimal(30,12)"`
	Amount     decimal.Decimal `gorm:"type:decimal(30,12)"`
	Count      int64
	TickerTime time.Time
	RecordedAt time.Time `gorm:"index:idx_venue_symbol_recorded_at"`
}

// NewTicker 生成
func NewTicker(org *model.Ticker) *Ticker {
	return &Ticker{
		Venue:      org.Venue,
		Symbol:     org.Symbol,
		Open:       org.Open,
		High:       org.High,
		Low:        org.Low,
		Close:      org.Close,
		Volume:     org.Volume,
		Amount:     org.Amount,
		Count:      org.Count,
		TickerTime: org.TickerTime,
		RecordedAt: org.RecordedAt,
	}
}

// ToDomainModel ドメインモデルに変換
func (t *Ticker) ToDomainModel() *model.Ticker {
	return &model.Ticker{
		Venue:      t.Venue,
		Symbol:     t.Symbol,
		Open:       t.Open,
		High:       t.High,
		Low:        t.Low,
		Close:      t.Close,
		Volume:     t.Volume,
		Amount:     t.Amount,
		Count:      t.Count,
		TickerTime: t.TickerTime,
		RecordedAt: t.RecordedAt,
	}
}
