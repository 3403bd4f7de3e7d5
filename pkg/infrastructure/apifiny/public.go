package apifiny

import (
	"context"
	"net/http"
	"strconv"
)

// 基本情報

// ListVenueInfo 取引所一覧
func (c *Client) ListVenueInfo(ctx context.Context, venue string) (*Response[[]VenueInfo], error) {
	u := makeURL(c.publicURL, "ac", "v2", venue, "utils", "listVenueInfo")
	return requestJSON[Response[[]VenueInfo]](ctx, c, http.MethodGet, u, nil, nil, false)
}

// ListCurrency 通貨一覧
func (c *Client) ListCurrency(ctx context.Context, venue string) (*Response[[]CurrencyInfo], error) {
	u := makeURL(c.publicURL, "ac", "v2", venue, "utils", "listCurrency")
	return requestJSON[Response[[]CurrencyInfo]](ctx, c, http.MethodGet, u, nil, nil, false)
}

// ListSymbolInfo 銘柄一覧
func (c *Client) ListSymbolInfo(ctx context.Context, venue string) (*Response[[]SymbolInfo], error) {
	u := makeURL(c.publicURL, "ac", "v2", venue, "utils", "listSymbolInfo")
	return requestJSON[Response[[]SymbolInfo]](ctx, c, http.MethodGet, u, nil, nil, false)
}

// CurrentTimeMillis サーバー時刻（エポックミリ秒）
func (c *Client) CurrentTimeMillis(ctx context.Context, venue string) (*Response[int64], error) {
	u := makeURL(c.publicURL, "ac", "v2", venue, "utils", "currentTimeMillis")
	return requestJSON[Response[int64]](ctx, c, http.MethodGet, u, nil, nil, false)
}

// 相場情報（エンベロープなし）

// OrderBook 板情報
func (c *Client) OrderBook(ctx context.Context, symbol, venue string) (*OrderBook, error) {
	u := makeURL(c.publicURL, "md", "orderbook", "v1", symbol, venue)
	return requestJSON[OrderBook](ctx, c, http.MethodGet, u, nil, nil, false)
}

// Trades 約定履歴
func (c *Client) Trades(ctx context.Context, symbol, venue string) ([]Trade, error) {
	u := makeURL(c.publicURL, "md", "trade", "v1", symbol, venue)
	res, err := requestJSON[[]Trade](ctx, c, http.MethodGet, u, nil, nil, false)
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// KLine ローソク足
func (c *Client) KLine(ctx context.Context, q *KLineQuery) ([]KLine, error) {
	u := makeURL(c.publicURL, "md", "kline", "v1", q.Venue, q.Base, q.Quote, string(q.Period))

	var query map[string]string
	if q.StartTime != nil && q.EndTime != nil {
		query = map[string]string{
			"startTime": strconv.FormatInt(q.StartTime.UnixMilli(), 10),
			"endTime":   strconv.FormatInt(q.EndTime.UnixMilli(), 10),
		}
	}

	res, err := requestJSON[[]KLine](ctx, c, http.MethodGet, u, query, nil, false)
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// Ticker ティッカー
func (c *Client) Ticker(ctx context.Context, symbol, venue string) (*Ticker, error) {
	u := makeURL(c.publicURL, "md", "ticker", "v1", symbol, venue)
	return requestJSON[Ticker](ctx, c, http.MethodGet, u, nil, nil, false)
}

// ConsolidatedOrderBook 統合板情報
func (c *Client) ConsolidatedOrderBook(ctx context.Context, symbol string) (*ConsolidatedOrderBook, error) {
	u := makeURL(c.publicURL, "md", "cob", "v1", symbol)
	return requestJSON[ConsolidatedOrderBook](ctx, c, http.MethodGet, u, nil, nil, false)
}
