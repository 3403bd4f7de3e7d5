package memory

import (
	"sync"
	"time"

	"apifiny/pkg/domain/model"
	"apifiny/pkg/domain/repository"
)

// TickerRepository ティッカー保存（取引所・銘柄ごとに最大 maxSize 件、0以下なら無制限）
type TickerRepository struct {
	maxSize int

	mu     sync.RWMutex
	queues map[string][]model.Ticker
}

// NewTickerRepository 生成
func NewTickerRepository(maxSize int) *TickerRepository {
	return &TickerRepository{
		maxSize: maxSize,
		queues:  map[string][]model.Ticker{},
	}
}

func key(venue, symbol string) string {
	return venue + "/" + symbol
}

// AddTicker ティッカー追加
func (r *TickerRepository) AddTicker(t *model.Ticker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(t.Venue, t.Symbol)
	q := append(r.queues[k], *t)
	if r.maxSize > 0 && len(q) > r.maxSize {
		q = q[len(q)-r.maxSize:]
	}
	r.queues[k] = q
	return nil
}

// GetTickers since 以降に記録したティッカーを古い順に取得
func (r *TickerRepository) GetTickers(venue, symbol string, since time.Time) ([]model.Ticker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tt := []model.Ticker{}
	for _, t := range r.queues[key(venue, symbol)] {
		if t.RecordedAt.Before(since) {
			continue
		}
		tt = append(tt, t)
	}
	return tt, nil
}

// GetHistorySizeMax 最大容量取得
func (r *TickerRepository) GetHistorySizeMax() int {
	return r.maxSize
}

var _ repository.TickerRepository = (*TickerRepository)(nil)
