package apifiny

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"apifiny/pkg/domain/model"

	"github.com/shopspring/decimal"
)

// Response 口座系・基本情報系APIのレスポンス
type Response[T any] struct {
	Result *T             `json:"result"`
	Error  *ResponseError `json:"error"`
}

// Unwrap エラーがあればエラーを、無ければ結果を返す
func (r *Response[T]) Unwrap() (*T, error) {
	if r.Error != nil {
		return nil, r.Error
	}
	return r.Result, nil
}

// MilliTime エポックミリ秒（RFC3339文字列も受け付ける）
type MilliTime struct {
	time.Time
}

// UnmarshalJSON JSONから変換
func (t *MilliTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		if ms, err := strconv.ParseInt(unquoted, 10, 64); err == nil {
			t.Time = time.UnixMilli(ms)
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, unquoted)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(int64(ms))
	return nil
}

// MarshalJSON エポックミリ秒で出力
func (t MilliTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

// FlexString 文字列・数値どちらでも受け付ける文字列
type FlexString string

// UnmarshalJSON JSONから変換
func (s *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(b)
	return nil
}

// VenueInfo 取引所情報
type VenueInfo struct {
	Exchange   string `json:"exchange"`
	Status     string `json:"status"`
	SptInstant uint8  `json:"sptInstant"`
}

// CurrencyInfo 通貨情報
type CurrencyInfo struct {
	Currency          string          `json:"currency"`
	CurrencyPrecision int64           `json:"currencyPrecision"`
	Status            string          `json:"status"`
	WithdrawMaxAmount decimal.Decimal `json:"withdrawMaxAmount"`
	WithdrawMinAmount decimal.Decimal `json:"withdrawMinAmount"`
	WithdrawMinFee    decimal.Decimal `json:"withdrawMinFee"`
	InstantFeeRate    string          `json:"instantFeeRate"`
	Coin              string          `json:"coin"`
}

// SymbolInfo 銘柄情報
type SymbolInfo struct {
	Symbol             string              `json:"symbol"`
	BaseAsset          string              `json:"baseAsset"`
	BaseAssetPrecision int64               `json:"baseAssetPrecision"`
	QuoteAsset         string              `json:"quoteAsset"`
	QuotePrecision     int64               `json:"quotePrecision"`
	MinPrice           decimal.NullDecimal `json:"minPrice"`
	MaxPrice           decimal.NullDecimal `json:"maxPrice"`
	MinQuantity        decimal.Decimal     `json:"minQuantity"`
	MaxQuantity        decimal.Decimal     `json:"maxQuantity"`
	TickSize           decimal.Decimal     `json:"tickSize"`
	StepSize           decimal.Decimal     `json:"stepSize"`
	MinNotional        decimal.Decimal     `json:"minNotional"`
	MaxNotional        decimal.Decimal     `json:"maxNotional"`
	Status             string              `json:"status"`
}

// PriceSize 板の1段 [価格, 数量]
type PriceSize [2]decimal.Decimal

// Price 価格
func (p PriceSize) Price() decimal.Decimal { return p[0] }

// Size 数量
func (p PriceSize) Size() decimal.Decimal { return p[1] }

// OrderBook 板情報
type OrderBook struct {
	Symbol    string      `json:"symbol"`
	UpdatedAt MilliTime   `json:"updatedAt"`
	Asks      []PriceSize `json:"asks"`
	Bids      []PriceSize `json:"bids"`
}

// Trade 約定履歴
type Trade struct {
	Symbol     string          `json:"symbol"`
	Provider   string          `json:"provider"`
	Price      decimal.Decimal `json:"price"`
	Side       FlexString      `json:"side"`
	TradeTime  MilliTime       `json:"tradeTime"`
	ExchangeID string          `json:"exchangeId"`
	UpdateTime MilliTime       `json:"updateTime"`
}

// KLineQuery ローソク足の取得条件
type KLineQuery struct {
	Venue  string
	Base   string
	Quote  string
	Period model.Period
	// StartTime, EndTime 両方指定した場合のみ期間を絞り込む
	StartTime *time.Time
	EndTime   *time.Time
}

// KLine ローソク足
type KLine struct {
	CurrencyPair string          `json:"currencyPair"`
	Period       string          `json:"period"`
	Open         decimal.Decimal `json:"open"`
	High         decimal.Decimal `json:"high"`
	Low          decimal.Decimal `json:"low"`
	Close        decimal.Decimal `json:"close"`
	Vol          decimal.Decimal `json:"vol"`
	Count        int64           `json:"count"`
	Timestamp    MilliTime       `json:"timestamp"`
	Exchange     string          `json:"exchange"`
}

// Ticker ティッカー
type Ticker struct {
	Symbol     string          `json:"symbol"`
	Open       decimal.Decimal `json:"open"`
	High       decimal.Decimal `json:"high"`
	Low        decimal.Decimal `json:"low"`
	Close      decimal.Decimal `json:"close"`
	Vol        decimal.Decimal `json:"vol"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int64           `json:"count"`
	Provider   string          `json:"provider"`
	TickerTime MilliTime       `json:"tickerTime"`
	UpdateAt   MilliTime       `json:"updateAt"`
}

// ToDomainModel ドメインモデルに変換
func (t *Ticker) ToDomainModel(venue string) *model.Ticker {
	return &model.Ticker{
		Venue:      venue,
		Symbol:     t.Symbol,
		Open:       t.Open,
		High:       t.High,
		Low:        t.Low,
		Close:      t.Close,
		Volume:     t.Vol,
		Amount:     t.Amount,
		Count:      t.Count,
		TickerTime: t.TickerTime.Time,
	}
}

// ConsolidatedOrderBook 全取引所を統合した板情報
type ConsolidatedOrderBook struct {
	Symbol   string        `json:"symbol"`
	Asks     []SourceOrder `json:"asks"`
	Bids     []SourceOrder `json:"bids"`
	UpdateAt MilliTime     `json:"updateAt"`
}

// SourceOrder 統合板の1段
type SourceOrder struct {
	Price  decimal.Decimal `json:"price"`
	Qty    decimal.Decimal `json:"qty"`
	Source string          `json:"source"`
}

// Account 口座情報
type Account struct {
	AccountID      string       `json:"accountId"`
	Ex55Pin        string       `json:"ex55Pin"`
	AccountStatus  string       `json:"accountStatus"`
	CreatedAt      MilliTime    `json:"createdAt"`
	UpdatedAt      MilliTime    `json:"updatedAt"`
	SubAccountInfo []SubAccount `json:"subAccountInfo"`
}

// SubAccount サブ口座
type SubAccount struct {
	AccountID     string    `json:"accountId"`
	AccountStatus string    `json:"accountStatus"`
	CreatedAt     MilliTime `json:"createdAt"`
	UpdatedAt     MilliTime `json:"updatedAt"`
	Venue         string    `json:"venue"`
}

// Balance 残高
type Balance struct {
	AccountID string          `json:"accountId"`
	Venue     string          `json:"venue"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Available decimal.Decimal `json:"available"`
	Frozen    decimal.Decimal `json:"frozen"`
}

// DepositAddress 入金アドレス
type DepositAddress struct {
	Venue     string    `json:"venue"`
	Currency  string    `json:"currency"`
	Coin      string    `json:"coin"`
	Address   string    `json:"address"`
	ExpiredAt MilliTime `json:"expiredAt"`
}

// WithdrawTicket 出金チケット
type WithdrawTicket struct {
	Ticket    string    `json:"ticket"`
	ExpiredAt MilliTime `json:"expiredAt"`
}

// CreateWithdrawParams 出金リクエストのパラメータ
type CreateWithdrawParams struct {
	// Coin システム上の通貨コード（複数チェーン対応の通貨は通貨名と異なる）
	Coin    string  `json:"coin"`
	Amount  float64 `json:"amount"`
	Address string  `json:"address"`
	// Memo EOS等で必要
	Memo   string `json:"memo"`
	Ticket string `json:"ticket"`
}

// Withdraw 出金
type Withdraw struct {
	AccountID     string          `json:"accountId"`
	Venue         string          `json:"venue"`
	Currency      string          `json:"currency"`
	Coin          string          `json:"coin"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	FromAddress   json.RawMessage `json:"fromAddress"`
	TargetAddress string          `json:"targetAddress"`
	Type          string          `json:"type"`
	ActionType    string          `json:"actionType"`
	ActionNote    string          `json:"actionNote"`
	LogID         string          `json:"logId"`
	TxID          string          `json:"txId"`
	// Status SUBMITTED, COMPLETED, CANCELLED
	Status       string    `json:"status"`
	LogCreatedAt MilliTime `json:"logCreatedAt"`
	LogUpdatedAt MilliTime `json:"logUpdatedAt"`
}

// TransferParams 取引所間振替のパラメータ
type TransferParams struct {
	Currency    string
	Amount      float64
	TargetVenue string
}

// Transfer 取引所間振替
type Transfer struct {
	AccountID   string          `json:"accountId"`
	Venue       string          `json:"venue"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	TargetVenue string          `json:"targetVenue"`
	LogID       string          `json:"logId"`
	// Status SUBMITTED, COMPLETED, CANCELLED
	Status       string    `json:"status"`
	LogCreatedAt MilliTime `json:"logCreatedAt"`
	LogUpdatedAt MilliTime `json:"logUpdatedAt"`
}

// AccountHistoryParams 入出金履歴の取得条件
type AccountHistoryParams struct {
	StartTimeDate time.Time
	EndTimeDate   time.Time
	Limit         int32
	Page          int32
}

// Page ページング付きレスポンス
type Page[T any] struct {
	Records     []T   `json:"records"`
	Total       int32 `json:"total"`
	Size        int32 `json:"size"`
	Current     int32 `json:"current"`
	HitCount    bool  `json:"hitCount"`
	SearchCount bool  `json:"searchCount"`
	Pages       int32 `json:"pages"`
}

// AccountHistory 入出金履歴
type AccountHistory struct {
	AccountID     string          `json:"accountId"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	TargetAddress string          `json:"targetAddress"`
	Coin          string          `json:"coin"`
	LogID         string          `json:"logId"`
	LogCreatedAt  MilliTime       `json:"logCreatedAt"`
	LogUpdatedAt  MilliTime       `json:"logUpdatedAt"`
	ActionType    string          `json:"actionType"`
	ActionNote    string          `json:"actionNote"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
}

// FeeRate 手数料率
type FeeRate struct {
	AccountID     string          `json:"accountId"`
	TradingVolume decimal.Decimal `json:"tradingVolume"`
	TakeFee       decimal.Decimal `json:"takeFee"`
	MakeFee       decimal.Decimal `json:"makeFee"`
	SpecialRate   decimal.Decimal `json:"specialRate"`
}

// CreateConversionParams 通貨交換のパラメータ（USD, USDC のみ）
type CreateConversionParams struct {
	Currency       string  `json:"currency"`
	TargetCurrency string  `json:"targetCurrency"`
	Amount         float64 `json:"amount"`
}

// Conversion 通貨交換
type Conversion struct {
	AccountID  string          `json:"accountId"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	Coin       string          `json:"coin"`
	LogID      string          `json:"logId"`
	CreatedAt  MilliTime       `json:"createdAt"`
	UpdatedAt  MilliTime       `json:"updatedAt"`
	ActionType string          `json:"actionType"`
	ActionNote string          `json:"actionNote"`
	ID         string          `json:"id"`
}

// CreateOrderParams 新規注文のパラメータ
type CreateOrderParams struct {
	OrderID   string    `json:"orderId,omitempty"`
	OrderInfo OrderInfo `json:"orderInfo"`
}

// OrderInfo 注文内容
type OrderInfo struct {
	Symbol string `json:"symbol"`
	// OrderType LIMIT, MARKET, STOP, SOR
	OrderType string `json:"orderType"`
	// TimeInForce 1=GTC, 3=IOC, 7=PostOnly
	TimeInForce int    `json:"timeInForce"`
	OrderSide   string `json:"orderSide"`
	LimitPrice  string `json:"limitPrice"`
	Quantity    string `json:"quantity"`
	// Total 成行買いのときに必須
	Total string `json:"total,omitempty"`
	// TriggerPrice, StopType STOPのときに必須
	TriggerPrice string `json:"triggerPrice,omitempty"`
	StopType     string `json:"stopType,omitempty"`
}

// CreatedOrder 登録済みの注文
type CreatedOrder struct {
	AccountID                string              `json:"accountId"`
	Venue                    string              `json:"venue"`
	OrderID                  string              `json:"orderId"`
	Symbol                   string              `json:"symbol"`
	OrderType                string              `json:"orderType"`
	OrderSide                string              `json:"orderSide"`
	TriggerPrice             decimal.NullDecimal `json:"triggerPrice"`
	StopType                 *string             `json:"stopType"`
	TriggerTime              *MilliTime          `json:"triggerTime"`
	LimitPrice               decimal.NullDecimal `json:"limitPrice"`
	Quantity                 decimal.Decimal     `json:"quantity"`
	FilledAveragePrice       decimal.Decimal     `json:"filledAveragePrice"`
	FilledCumulativeQuantity decimal.Decimal     `json:"filledCumulativeQuantity"`
	OpenQuantity             decimal.Decimal     `json:"openQuantity"`
	OrderStatus              string              `json:"orderStatus"`
	CreatedAt                MilliTime           `json:"createdAt"`
	UpdatedAt                *MilliTime          `json:"updatedAt"`
	CancelledUpdatedAt       *MilliTime          `json:"cancelledUpdatedAt"`
	FilledUpdatedAt          *MilliTime          `json:"filledUpdatedAt"`
	Total                    decimal.NullDecimal `json:"total"`
}
