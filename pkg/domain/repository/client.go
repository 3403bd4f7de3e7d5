package repository

import (
	"time"

	"apifiny/pkg/domain/model"
)

// TickerRepository ティッカー用リポジトリ
type TickerRepository interface {
	AddTicker(*model.Ticker) error
	GetTickers(venue, symbol string, since time.Time) ([]model.Ticker, error)
}
