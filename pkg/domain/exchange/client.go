package exchange

import (
	"context"

	"apifiny/pkg/domain/model"
	"apifiny/pkg/infrastructure/apifiny"
)

// PublicClient 認証不要のAPI
type PublicClient interface {
	ListVenueInfo(ctx context.Context, venue string) (*apifiny.Response[[]apifiny.VenueInfo], error)
	ListCurrency(ctx context.Context, venue string) (*apifiny.Response[[]apifiny.CurrencyInfo], error)
	ListSymbolInfo(ctx context.Context, venue string) (*apifiny.Response[[]apifiny.SymbolInfo], error)
	CurrentTimeMillis(ctx context.Context, venue string) (*apifiny.Response[int64], error)
	OrderBook(ctx context.Context, symbol, venue string) (*apifiny.OrderBook, error)
	Trades(ctx context.Context, symbol, venue string) ([]apifiny.Trade, error)
	KLine(ctx context.Context, q *apifiny.KLineQuery) ([]apifiny.KLine, error)
	Ticker(ctx context.Context, symbol, venue string) (*apifiny.Ticker, error)
	ConsolidatedOrderBook(ctx context.Context, symbol string) (*apifiny.ConsolidatedOrderBook, error)
}

// PrivateClient 署名が必要な口座系API
type PrivateClient interface {
	Venue() *model.Venue
	QueryAccountInfo(ctx context.Context) (*apifiny.Response[apifiny.Account], error)
	ListBalance(ctx context.Context) (*apifiny.Response[[]apifiny.Balance], error)
	QueryAddress(ctx context.Context, coin string) (*apifiny.Response[[]apifiny.DepositAddress], error)
	CreateWithdrawTicket(ctx context.Context) (*apifiny.Response[apifiny.WithdrawTicket], error)
	CreateWithdraw(ctx context.Context, p *apifiny.CreateWithdrawParams) (*apifiny.Response[[]apifiny.Withdraw], error)
	TransferToVenue(ctx context.Context, p *apifiny.TransferParams) (*apifiny.Response[[]apifiny.Transfer], error)
	QueryAssetActivityList(ctx context.Context, p *apifiny.AccountHistoryParams) (*apifiny.Response[apifiny.Page[apifiny.AccountHistory]], error)
	GetCommissionRate(ctx context.Context, symbol string) (*apifiny.Response[[]apifiny.FeeRate], error)
	QueryMaxInstantAmount(ctx context.Context, currency string) (*apifiny.Response[float64], error)
	CreateConversion(ctx context.Context, p *apifiny.CreateConversionParams) (*apifiny.Response[apifiny.Conversion], error)
	CreateOrder(ctx context.Context, p *apifiny.CreateOrderParams) (*apifiny.CreatedOrder, error)
}

var (
	_ PublicClient  = (*apifiny.Client)(nil)
	_ PublicClient  = (*apifiny.CachedClient)(nil)
	_ PrivateClient = (*apifiny.Client)(nil)
)
