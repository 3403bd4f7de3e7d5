package apifiny

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// 口座系API（取引所の設定と署名が必要）

// QueryAccountInfo 口座情報
func (c *Client) QueryAccountInfo(ctx context.Context) (*Response[Account], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "account", "queryAccountInfo")
	return requestJSON[Response[Account]](ctx, c, http.MethodGet, u, s.query(), nil, true)
}

// ListBalance 残高一覧
func (c *Client) ListBalance(ctx context.Context) (*Response[[]Balance], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "listBalance")
	return requestJSON[Response[[]Balance]](ctx, c, http.MethodGet, u, s.query(), nil, true)
}

// QueryAddress 入金アドレス
func (c *Client) QueryAddress(ctx context.Context, coin string) (*Response[[]DepositAddress], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "queryAddress")
	return requestJSON[Response[[]DepositAddress]](ctx, c, http.MethodGet, u, s.query("coin", coin), nil, true)
}

// CreateWithdrawTicket 出金チケットの発行
func (c *Client) CreateWithdrawTicket(ctx context.Context) (*Response[WithdrawTicket], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "createWithdrawTicket")
	return requestJSON[Response[WithdrawTicket]](ctx, c, http.MethodGet, u, s.query(), nil, true)
}

// CreateWithdraw 出金リクエスト
func (c *Client) CreateWithdraw(ctx context.Context, p *CreateWithdrawParams) (*Response[[]Withdraw], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "withdraw")
	body := struct {
		accountScope
		*CreateWithdrawParams
	}{*s, p}
	return requestJSON[Response[[]Withdraw]](ctx, c, http.MethodPost, u, nil, body, true)
}

// TransferToVenue 取引所間振替
func (c *Client) TransferToVenue(ctx context.Context, p *TransferParams) (*Response[[]Transfer], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "transferToVenue")
	q := s.query(
		"currency", p.Currency,
		"amount", formatFloat(p.Amount),
		"targetVenue", p.TargetVenue,
	)
	return requestJSON[Response[[]Transfer]](ctx, c, http.MethodGet, u, q, nil, true)
}

// QueryAssetActivityList 入出金履歴
func (c *Client) QueryAssetActivityList(ctx context.Context, p *AccountHistoryParams) (*Response[Page[AccountHistory]], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "queryAssetActivityList")
	// 履歴は取引所を跨ぐため venue は送らない
	q := map[string]string{
		"accountId":     s.AccountID,
		"startTimeDate": p.StartTimeDate.UTC().Format(time.RFC3339Nano),
		"endTimeDate":   p.EndTimeDate.UTC().Format(time.RFC3339Nano),
		"limit":         strconv.FormatInt(int64(p.Limit), 10),
		"page":          strconv.FormatInt(int64(p.Page), 10),
	}
	return requestJSON[Response[Page[AccountHistory]]](ctx, c, http.MethodGet, u, q, nil, true)
}

// GetCommissionRate 現在の手数料率
func (c *Client) GetCommissionRate(ctx context.Context, symbol string) (*Response[[]FeeRate], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "getCommissionRate")
	return requestJSON[Response[[]FeeRate]](ctx, c, http.MethodGet, u, s.query("symbol", symbol), nil, true)
}

// QueryMaxInstantAmount 即時振替の上限額
func (c *Client) QueryMaxInstantAmount(ctx context.Context, currency string) (*Response[float64], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "query-max-instant-amount")
	return requestJSON[Response[float64]](ctx, c, http.MethodGet, u, s.query("currency", currency), nil, true)
}

// CreateConversion 通貨交換（COINBASEPRO のみ）
func (c *Client) CreateConversion(ctx context.Context, p *CreateConversionParams) (*Response[Conversion], error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "asset", "currencyConversion")
	body := struct {
		accountScope
		*CreateConversionParams
	}{*s, p}
	return requestJSON[Response[Conversion]](ctx, c, http.MethodPost, u, nil, body, true)
}

// 取引

// CreateOrder 新規注文（エンベロープなし）
func (c *Client) CreateOrder(ctx context.Context, p *CreateOrderParams) (*CreatedOrder, error) {
	s, err := c.venueScope()
	if err != nil {
		return nil, err
	}
	u := makeURL(c.venue.Rest, "order", "newOrder")
	body := struct {
		accountScope
		*CreateOrderParams
	}{*s, p}
	return requestJSON[CreatedOrder](ctx, c, http.MethodPost, u, nil, body, true)
}
