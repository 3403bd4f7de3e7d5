package usecase

import (
	"context"
	"fmt"
	"time"

	"apifiny/pkg/domain"
	"apifiny/pkg/domain/exchange"
	"apifiny/pkg/domain/model"
	"apifiny/pkg/domain/repository"
	"apifiny/pkg/infrastructure/apifiny"

	"golang.org/x/sync/errgroup"
)

// Fetcher 相場情報の取得
type Fetcher struct {
	exCli  exchange.PublicClient
	repo   repository.TickerRepository
	logger domain.Logger
	now    func() time.Time
}

// NewFetcher 生成
func NewFetcher(exCli exchange.PublicClient, repo repository.TickerRepository, logger domain.Logger) *Fetcher {
	return &Fetcher{
		exCli:  exCli,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot ある時点の相場情報
type Snapshot struct {
	Venue     string
	Symbol    string
	Ticker    *apifiny.Ticker
	OrderBook *apifiny.OrderBook
	Trades    []apifiny.Trade
}

// Spread 最良気配（板が片側でも空なら nil）
func (s *Snapshot) Spread() *model.Spread {
	if s.OrderBook == nil || len(s.OrderBook.Asks) == 0 || len(s.OrderBook.Bids) == 0 {
		return nil
	}

	bestAsk := s.OrderBook.Asks[0].Price()
	for _, a := range s.OrderBook.Asks[1:] {
		if a.Price().LessThan(bestAsk) {
			bestAsk = a.Price()
		}
	}
	bestBid := s.OrderBook.Bids[0].Price()
	for _, b := range s.OrderBook.Bids[1:] {
		if b.Price().GreaterThan(bestBid) {
			bestBid = b.Price()
		}
	}

	return &model.Spread{
		Venue:   s.Venue,
		Symbol:  s.Symbol,
		BestAsk: bestAsk,
		BestBid: bestBid,
	}
}

// Snapshot ティッカー・板・約定履歴をまとめて取得
func (f *Fetcher) Snapshot(ctx context.Context, venue, symbol string) (*Snapshot, error) {
	s := Snapshot{Venue: venue, Symbol: symbol}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		s.Ticker, err = f.exCli.Ticker(ctx, symbol, venue)
		return
	})
	eg.Go(func() (err error) {
		s.OrderBook, err = f.exCli.OrderBook(ctx, symbol, venue)
		return
	})
	eg.Go(func() (err error) {
		s.Trades, err = f.exCli.Trades(ctx, symbol, venue)
		return
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot, venue: %s, symbol: %s; error: %w", venue, symbol, err)
	}
	return &s, nil
}

// Fetch 対象ごとにスナップショットを取得し、ティッカーを保存
func (f *Fetcher) Fetch(ctx context.Context, targets []model.Target) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, t := range targets {
		t := t
		eg.Go(func() error {
			return f.fetch(ctx, t)
		})
	}
	return eg.Wait()
}

func (f *Fetcher) fetch(ctx context.Context, t model.Target) error {
	s, err := f.Snapshot(ctx, t.Venue, t.Symbol)
	if err != nil {
		return err
	}

	ticker := s.Ticker.ToDomainModel(t.Venue)
	ticker.RecordedAt = f.now()
	if err := f.repo.AddTicker(ticker); err != nil {
		return fmt.Errorf("failed to add ticker, venue: %s, symbol: %s; error: %w", t.Venue, t.Symbol, err)
	}

	if sp := s.Spread(); sp != nil {
		f.logger.Debug("%s %s close: %s, ask: %s, bid: %s, spread: %s, trades: %d",
			t.Venue, t.Symbol, ticker.Close, sp.BestAsk, sp.BestBid, sp.Value(), len(s.Trades))
	} else {
		f.logger.Debug("%s %s close: %s, trades: %d", t.Venue, t.Symbol, ticker.Close, len(s.Trades))
	}
	return nil
}
