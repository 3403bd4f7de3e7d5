package apifiny_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"apifiny/pkg/domain/model"
	"apifiny/pkg/infrastructure/apifiny"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

var testCredential = &model.Credential{
	AccessKey: "test-access-key",
	SecretKey: "test-secret-key",
	AccountID: "STA-TEST_1",
}

// captured サーバーが受け取ったリクエスト
type captured struct {
	Method    string
	Path      string
	RawQuery  string
	Signature string
	Body      []byte
}

type fakeServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []captured
}

func newFakeServer(t *testing.T, routes map[string]string) *fakeServer {
	t.Helper()
	s := &fakeServer{}
	r := mux.NewRouter()
	for path, body := range routes {
		body := body
		r.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			b, _ := io.ReadAll(req.Body)
			s.mu.Lock()
			s.requests = append(s.requests, captured{
				Method:    req.Method,
				Path:      req.URL.Path,
				RawQuery:  req.URL.RawQuery,
				Signature: req.Header.Get("signature"),
				Body:      b,
			})
			s.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		})
	}
	r.PathPrefix("/forbidden").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "forbidden")
	})
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *fakeServer) last(t *testing.T) captured {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatal("no request reached the server")
	}
	return s.requests[len(s.requests)-1]
}

func (s *fakeServer) venue() *model.Venue {
	return &model.Venue{Name: "BINANCE", Rest: s.URL + "/ac/v2", Fix: "unused"}
}

// countingTransport 通信が発生した回数を数える
type countingTransport struct {
	mu    sync.Mutex
	count int
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
	return nil, errors.New("unexpected request")
}

func parseToken(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return []byte(testCredential.SecretKey), nil
	})
	if err != nil {
		t.Fatalf("failed to verify token, token: %s; error: %v", token, err)
	}
	if !parsed.Valid {
		t.Fatalf("token is not valid, token: %s", token)
	}
	return claims
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func TestClient_ListBalance(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"/ac/v2/asset/listBalance": `{"result":[{"accountId":"STA-TEST_1","venue":"BINANCE","currency":"BTC","amount":1.5,"available":1.25,"frozen":0.25}],"error":null}`,
	})
	now := time.Now().Truncate(time.Second)
	c := apifiny.NewClient(testCredential, srv.venue(), apifiny.WithClock(func() time.Time { return now }))

	res, err := c.ListBalance(context.Background())
	if err != nil {
		t.Fatalf("ListBalance() error: %v", err)
	}
	balances, err := res.Unwrap()
	if err != nil {
		t.Fatalf("Unwrap() error: %v", err)
	}
	if len(*balances) != 1 {
		t.Fatalf("balance count is wrong\nwant: 1\ngot: %d", len(*balances))
	}
	b := (*balances)[0]
	if b.Currency != "BTC" || !b.Amount.Equal(decimal.NewFromFloat(1.5)) || !b.Frozen.Equal(decimal.NewFromFloat(0.25)) {
		t.Errorf("balance is wrong, got: %+v", b)
	}

	req := srv.last(t)
	if req.Method != http.MethodGet {
		t.Errorf("method is wrong\nwant: %s\ngot: %s", http.MethodGet, req.Method)
	}
	if want := "accountId=STA-TEST_1&venue=BINANCE"; req.RawQuery != want {
		t.Errorf("query is wrong\nwant: %s\ngot: %s", want, req.RawQuery)
	}
	if req.Signature == "" {
		t.Fatal("signature header is missing")
	}

	claims := parseToken(t, req.Signature)
	if claims["accountId"] != testCredential.AccountID {
		t.Errorf("accountId is wrong\nwant: %s\ngot: %v", testCredential.AccountID, claims["accountId"])
	}
	if claims["secretKeyId"] != testCredential.AccessKey {
		t.Errorf("secretKeyId is wrong\nwant: %s\ngot: %v", testCredential.AccessKey, claims["secretKeyId"])
	}
	if want := sha256Hex([]byte(req.RawQuery)); claims["digest"] != want {
		t.Errorf("digest is wrong\nwant: %s\ngot: %v", want, claims["digest"])
	}
	if want := float64(now.Unix() + 86400); claims["exp"] != want {
		t.Errorf("exp is wrong\nwant: %v\ngot: %v", want, claims["exp"])
	}
}

func TestClient_CreateOrder(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"/ac/v2/order/newOrder": `{"accountId":"STA-TEST_1","venue":"BINANCE","orderId":"abc","symbol":"BTCUSDT","orderType":"LIMIT","orderSide":"BUY","limitPrice":30000,"quantity":0.01,"filledAveragePrice":0,"filledCumulativeQuantity":0,"openQuantity":0.01,"orderStatus":"PENDING_SUBMIT","createdAt":1600000000000}`,
	})
	c := apifiny.NewClient(testCredential, srv.venue())

	order, err := c.CreateOrder(context.Background(), &apifiny.CreateOrderParams{
		OrderID: "abc",
		OrderInfo: apifiny.OrderInfo{
			Symbol:      "BTCUSDT",
			OrderType:   model.LimitOrder,
			TimeInForce: model.GTC,
			OrderSide:   model.BuySide,
			LimitPrice:  "30000",
			Quantity:    "0.01",
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error: %v", err)
	}
	if order.OrderID != "abc" || order.OrderStatus != "PENDING_SUBMIT" {
		t.Errorf("order is wrong, got: %+v", order)
	}
	if !order.CreatedAt.Equal(time.UnixMilli(1600000000000)) {
		t.Errorf("createdAt is wrong\nwant: %v\ngot: %v", time.UnixMilli(1600000000000), order.CreatedAt.Time)
	}

	req := srv.last(t)
	if req.Method != http.MethodPost {
		t.Errorf("method is wrong\nwant: %s\ngot: %s", http.MethodPost, req.Method)
	}
	if req.RawQuery != "" {
		t.Errorf("query must be empty, got: %s", req.RawQuery)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("body is not json, body: %s; error: %v", req.Body, err)
	}
	if body["accountId"] != testCredential.AccountID || body["venue"] != "BINANCE" || body["orderId"] != "abc" {
		t.Errorf("body is wrong, got: %s", req.Body)
	}
	info, ok := body["orderInfo"].(map[string]interface{})
	if !ok || info["symbol"] != "BTCUSDT" || info["orderSide"] != "BUY" {
		t.Errorf("orderInfo is wrong, got: %s", req.Body)
	}

	claims := parseToken(t, req.Signature)
	if want := sha256Hex(req.Body); claims["digest"] != want {
		t.Errorf("digest is wrong\nwant: %s\ngot: %v", want, claims["digest"])
	}
}

func TestClient_PublicEndpoints(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"/md/ticker/v1/BTCUSDT/BINANCE":          `{"symbol":"BTCUSDT","open":100,"high":120,"low":90,"close":110,"vol":5,"amount":550,"count":3,"provider":"BINANCE","tickerTime":1600000000000,"updateAt":1600000000000}`,
		"/md/orderbook/v1/BTCUSDT/BINANCE":       `{"symbol":"BTCUSDT","updatedAt":1600000000000,"asks":[[101,1],[102,2]],"bids":[[99,1]]}`,
		"/md/kline/v1/BINANCE/BTC/USDT/1m":       `[{"currencyPair":"BTCUSDT","period":"1m","open":1,"high":2,"low":1,"close":2,"vol":10,"count":4,"timestamp":1600000000000,"exchange":"BINANCE"}]`,
		"/ac/v2/BINANCE/utils/currentTimeMillis": `{"result":1600000000000,"error":null}`,
	})
	c := apifiny.NewClient(testCredential, srv.venue(), apifiny.WithPublicURL(srv.URL))
	ctx := context.Background()

	ticker, err := c.Ticker(ctx, "BTCUSDT", "BINANCE")
	if err != nil {
		t.Fatalf("Ticker() error: %v", err)
	}
	if !ticker.Close.Equal(decimal.NewFromInt(110)) {
		t.Errorf("close is wrong\nwant: 110\ngot: %v", ticker.Close)
	}
	if req := srv.last(t); req.Signature != "" {
		t.Errorf("public request must not be signed, got: %s", req.Signature)
	}

	book, err := c.OrderBook(ctx, "BTCUSDT", "BINANCE")
	if err != nil {
		t.Fatalf("OrderBook() error: %v", err)
	}
	if len(book.Asks) != 2 || !book.Asks[1].Price().Equal(decimal.NewFromInt(102)) || !book.Bids[0].Size().Equal(decimal.NewFromInt(1)) {
		t.Errorf("order book is wrong, got: %+v", book)
	}

	start := time.UnixMilli(1600000000000)
	end := start.Add(time.Hour)
	lines, err := c.KLine(ctx, &apifiny.KLineQuery{
		Venue: "BINANCE", Base: "BTC", Quote: "USDT", Period: model.Minute1,
		StartTime: &start, EndTime: &end,
	})
	if err != nil {
		t.Fatalf("KLine() error: %v", err)
	}
	if len(lines) != 1 || lines[0].Count != 4 {
		t.Errorf("kline is wrong, got: %+v", lines)
	}
	if want := "endTime=1600003600000&startTime=1600000000000"; srv.last(t).RawQuery != want {
		t.Errorf("kline query is wrong\nwant: %s\ngot: %s", want, srv.last(t).RawQuery)
	}

	if _, err := c.KLine(ctx, &apifiny.KLineQuery{Venue: "BINANCE", Base: "BTC", Quote: "USDT", Period: model.Minute1, StartTime: &start}); err != nil {
		t.Fatalf("KLine() error: %v", err)
	}
	if q := srv.last(t).RawQuery; q != "" {
		t.Errorf("kline query must be empty without both bounds, got: %s", q)
	}

	ms, err := c.CurrentTimeMillis(ctx, "BINANCE")
	if err != nil {
		t.Fatalf("CurrentTimeMillis() error: %v", err)
	}
	if v, err := ms.Unwrap(); err != nil || *v != 1600000000000 {
		t.Errorf("time is wrong\nwant: 1600000000000\ngot: %v (%v)", v, err)
	}
}

func TestClient_RestAPIError(t *testing.T) {
	srv := newFakeServer(t, nil)
	venue := &model.Venue{Name: "BINANCE", Rest: srv.URL + "/forbidden"}
	c := apifiny.NewClient(testCredential, venue)

	_, err := c.QueryAccountInfo(context.Background())
	var apiErr *apifiny.RestAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not RestAPIError, got: %v", err)
	}
	want := apifiny.RestAPIError{
		URL:        srv.URL + "/forbidden/account/queryAccountInfo",
		StatusCode: http.StatusForbidden,
		Message:    "forbidden",
	}
	if *apiErr != want {
		t.Errorf("RestAPIError is wrong\nwant: %+v\ngot: %+v", want, *apiErr)
	}
}

func TestClient_ResponseError(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"/ac/v2/asset/getCommissionRate": `{"result":null,"error":{"code":1001,"message":"invalid symbol"}}`,
	})
	c := apifiny.NewClient(testCredential, srv.venue())

	res, err := c.GetCommissionRate(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("GetCommissionRate() error: %v", err)
	}
	_, err = res.Unwrap()
	var resErr *apifiny.ResponseError
	if !errors.As(err, &resErr) || resErr.Code != 1001 {
		t.Errorf("Unwrap() error is wrong, got: %v", err)
	}
	if q := srv.last(t).RawQuery; q != "accountId=STA-TEST_1&symbol=NOPE&venue=BINANCE" {
		t.Errorf("query is wrong, got: %s", q)
	}
}

func TestClient_SerializationError(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"/ac/v2/account/queryAccountInfo": `not json`,
	})
	c := apifiny.NewClient(testCredential, srv.venue())

	_, err := c.QueryAccountInfo(context.Background())
	var serErr *apifiny.SerializationError
	if !errors.As(err, &serErr) {
		t.Errorf("error is not SerializationError, got: %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := newFakeServer(t, nil)
	venue := srv.venue()
	srv.Close()
	c := apifiny.NewClient(testCredential, venue)

	_, err := c.ListBalance(context.Background())
	var trErr *apifiny.TransportError
	if !errors.As(err, &trErr) {
		t.Errorf("error is not TransportError, got: %v", err)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	ctx := context.Background()
	calls := map[string]func(c *apifiny.Client) error{
		"QueryAccountInfo": func(c *apifiny.Client) error { _, err := c.QueryAccountInfo(ctx); return err },
		"ListBalance":      func(c *apifiny.Client) error { _, err := c.ListBalance(ctx); return err },
		"QueryAddress":     func(c *apifiny.Client) error { _, err := c.QueryAddress(ctx, "BTC"); return err },
		"CreateWithdrawTicket": func(c *apifiny.Client) error {
			_, err := c.CreateWithdrawTicket(ctx)
			return err
		},
		"CreateWithdraw": func(c *apifiny.Client) error {
			_, err := c.CreateWithdraw(ctx, &apifiny.CreateWithdrawParams{})
			return err
		},
		"TransferToVenue": func(c *apifiny.Client) error {
			_, err := c.TransferToVenue(ctx, &apifiny.TransferParams{})
			return err
		},
		"QueryAssetActivityList": func(c *apifiny.Client) error {
			_, err := c.QueryAssetActivityList(ctx, &apifiny.AccountHistoryParams{})
			return err
		},
		"GetCommissionRate": func(c *apifiny.Client) error { _, err := c.GetCommissionRate(ctx, "BTCUSDT"); return err },
		"QueryMaxInstantAmount": func(c *apifiny.Client) error {
			_, err := c.QueryMaxInstantAmount(ctx, "BTC")
			return err
		},
		"CreateConversion": func(c *apifiny.Client) error {
			_, err := c.CreateConversion(ctx, &apifiny.CreateConversionParams{})
			return err
		},
		"CreateOrder": func(c *apifiny.Client) error {
			_, err := c.CreateOrder(ctx, &apifiny.CreateOrderParams{})
			return err
		},
	}

	tests := map[string]struct {
		cred  *model.Credential
		venue *model.Venue
		want  error
	}{
		"no venue": {
			cred: testCredential,
			want: apifiny.ErrVenueNotConfigured,
		},
		"no venue and no credential": {
			want: apifiny.ErrVenueNotConfigured,
		},
		"no credential": {
			venue: &model.Venue{Name: "BINANCE", Rest: "https://example.invalid/ac/v2"},
			want:  apifiny.ErrCredentialNotConfigured,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			transport := &countingTransport{}
			c := apifiny.NewClient(tt.cred, tt.venue, apifiny.WithHTTPClient(&http.Client{Transport: transport}))
			for op, call := range calls {
				if err := call(c); !errors.Is(err, tt.want) {
					t.Errorf("%s() error is wrong\nwant: %v\ngot: %v", op, tt.want, err)
				}
			}
			if transport.count != 0 {
				t.Errorf("no request must be sent\nwant: 0\ngot: %d", transport.count)
			}
		})
	}
}

func TestClient_QueryAssetActivityList(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		"/ac/v2/asset/queryAssetActivityList": `{"result":{"total":0,"pages":0,"size":10,"current":1,"records":[]},"error":null}`,
	})
	c := apifiny.NewClient(testCredential, srv.venue())

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := c.QueryAssetActivityList(context.Background(), &apifiny.AccountHistoryParams{
		StartTimeDate: start,
		EndTimeDate:   start.Add(24 * time.Hour),
		Limit:         10,
		Page:          1,
	})
	if err != nil {
		t.Fatalf("QueryAssetActivityList() error: %v", err)
	}
	want := "accountId=STA-TEST_1&endTimeDate=2021-01-02T00%3A00%3A00Z&limit=10&page=1&startTimeDate=2021-01-01T00%3A00%3A00Z"
	if got := srv.last(t).RawQuery; got != want {
		t.Errorf("query is wrong\nwant: %s\ngot: %s", want, got)
	}
}
