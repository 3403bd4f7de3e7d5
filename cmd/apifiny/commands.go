package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"apifiny/pkg/domain"
	"apifiny/pkg/domain/exchange"
	"apifiny/pkg/domain/model"
	"apifiny/pkg/infrastructure/apifiny"
	"apifiny/pkg/usecase"

	"github.com/google/uuid"
)

type app struct {
	public  exchange.PublicClient
	private exchange.PrivateClient
	logger  domain.Logger
}

type command struct {
	name string
	help string
	run  func(ctx context.Context, a *app, args []string) (interface{}, error)
}

var commands = []command{
	{"venues", "list supported venues", runVenues},
	{"venue-info", "[VENUE] query venue list", runVenueInfo},
	{"currencies", "[VENUE] query currency list", runCurrencies},
	{"symbols", "[VENUE] query symbol list", runSymbols},
	{"time", "[VENUE] query server time", runTime},
	{"orderbook", "SYMBOL [VENUE] order book", runOrderBook},
	{"trades", "SYMBOL [VENUE] recent trades", runTrades},
	{"kline", "[-period 1m] [-start RFC3339 -end RFC3339] [-n 14] BASE QUOTE [VENUE] candles", runKLine},
	{"ticker", "SYMBOL [VENUE] ticker", runTicker},
	{"cob", "SYMBOL consolidated order book", runConsolidatedOrderBook},
	{"account", "account info", runAccount},
	{"balance", "list balances", runBalance},
	{"address", "COIN deposit address", runAddress},
	{"withdraw-ticket", "create a withdraw ticket", runWithdrawTicket},
	{"withdraw", "-coin C -amount A -address ADDR -ticket T [-memo M] create a withdraw", runWithdraw},
	{"transfer", "-currency C -amount A -target VENUE transfer between venues", runTransfer},
	{"history", "[-start RFC3339] [-end RFC3339] [-limit 20] [-page 1] account history", runHistory},
	{"fee-rate", "SYMBOL current fee rate", runFeeRate},
	{"instant-quota", "CURRENCY instant transfer quota", runInstantQuota},
	{"convert", "-currency USD -target USDC -amount A currency conversion", runConvert},
	{"order", "-symbol S -side BUY|SELL -type LIMIT -price P -qty Q [-tif 1] [-id ID] create an order", runOrder},
}

func findCommand(name string) (*command, bool) {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i], true
		}
	}
	return nil, false
}

var errUsage = errors.New("invalid arguments")

// venueArg 引数で指定が無ければ接続先の取引所名を使う
func (a *app) venueArg(args []string, i int) (string, error) {
	if len(args) > i {
		return strings.ToUpper(args[i]), nil
	}
	if v := a.private.Venue(); v != nil {
		return v.Name, nil
	}
	return "", fmt.Errorf("%w: venue is required", errUsage)
}

func requireArgs(args []string, n int, names ...string) error {
	if len(args) < n {
		return fmt.Errorf("%w: %s is required", errUsage, strings.Join(names, ", "))
	}
	return nil
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return &t, nil
}

func runVenues(ctx context.Context, a *app, args []string) (interface{}, error) {
	return model.Venues(), nil
}

func runVenueInfo(ctx context.Context, a *app, args []string) (interface{}, error) {
	venue, err := a.venueArg(args, 0)
	if err != nil {
		return nil, err
	}
	return a.public.ListVenueInfo(ctx, venue)
}

func runCurrencies(ctx context.Context, a *app, args []string) (interface{}, error) {
	venue, err := a.venueArg(args, 0)
	if err != nil {
		return nil, err
	}
	return a.public.ListCurrency(ctx, venue)
}

func runSymbols(ctx context.Context, a *app, args []string) (interface{}, error) {
	venue, err := a.venueArg(args, 0)
	if err != nil {
		return nil, err
	}
	return a.public.ListSymbolInfo(ctx, venue)
}

func runTime(ctx context.Context, a *app, args []string) (interface{}, error) {
	venue, err := a.venueArg(args, 0)
	if err != nil {
		return nil, err
	}
	return a.public.CurrentTimeMillis(ctx, venue)
}

func runOrderBook(ctx context.Context, a *app, args []string) (interface{}, error) {
	if err := requireArgs(args, 1, "SYMBOL"); err != nil {
		return nil, err
	}
	venue, err := a.venueArg(args, 1)
	if err != nil {
		return nil, err
	}
	return a.public.OrderBook(ctx, args[0], venue)
}

func runTrades(ctx context.Context, a *app, args []string) (interface{}, error) {
	if err := requireArgs(args, 1, "SYMBOL"); err != nil {
		return nil, err
	}
	venue, err := a.venueArg(args, 1)
	if err != nil {
		return nil, err
	}
	return a.public.Trades(ctx, args[0], venue)
}

func runKLine(ctx context.Context, a *app, args []string) (interface{}, error) {
	fs := flag.NewFlagSet("kline", flag.ContinueOnError)
	period := fs.String("period", string(model.Minute1), "1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w, 1M")
	start := fs.String("start", "", "start time (RFC3339)")
	end := fs.String("end", "", "end time (RFC3339)")
	n := fs.Int("n", 0, "indicator period; 0 prints raw candles")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	rest := fs.Args()
	if err := requireArgs(rest, 2, "BASE", "QUOTE"); err != nil {
		return nil, err
	}
	venue, err := a.venueArg(rest, 2)
	if err != nil {
		return nil, err
	}
	p, err := model.ParsePeriod(*period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	q := apifiny.KLineQuery{Venue: venue, Base: rest[0], Quote: rest[1], Period: p}
	if q.StartTime, err = parseTime(*start); err != nil {
		return nil, err
	}
	if q.EndTime, err = parseTime(*end); err != nil {
		return nil, err
	}

	lines, err := a.public.KLine(ctx, &q)
	if err != nil {
		return nil, err
	}
	if *n == 0 {
		return lines, nil
	}
	return usecase.SummarizeKLines(lines, *n)
}

func runTicker(ctx context.Context, a *app, args []string) (interface{}, error) {
	if err := requireArgs(args, 1, "SYMBOL"); err != nil {
		return nil, err
	}
	venue, err := a.venueArg(args, 1)
	if err != nil {
		return nil, err
	}
	return a.public.Ticker(ctx, args[0], venue)
}

func runConsolidatedOrderBook(ctx context.Context, a *app, args []string) (interface{}, error) {
	if err := requireArgs(args, 1, "SYMBOL"); err != nil {
		return nil, err
	}
	return a.public.ConsolidatedOrderBook(ctx, args[0])
}

func runAccount(ctx context.Context, a *app, args []string) (interface{}, error) {
	return a.private.QueryAccountInfo(ctx)
}

func runBalance(ctx context.Context, a *app, args []string) (interface{}, error) {
	return a.private.ListBalance(ctx)
}

func runAddress(ctx context.Context, a *app, args []string) (interface{}, error) {
	if err := requireArgs(args, 1, "COIN"); err != nil {
		return nil, err
	}
	return a.private.QueryAddress(ctx, args[0])
}

func runWithdrawTicket(ctx context.Context, a *app, args []string) (interface{}, error) {
	return a.private.CreateWithdrawTicket(ctx)
}

func runWithdraw(ctx context.Context, a *app, args []string) (interface{}, error) {
	var p apifiny.CreateWithdrawParams
	fs := flag.NewFlagSet("withdraw", flag.ContinueOnError)
	fs.StringVar(&p.Coin, "coin", "", "coin code")
	fs.Float64Var(&p.Amount, "amount", 0, "amount")
	fs.StringVar(&p.Address, "address", "", "recipient address")
	fs.StringVar(&p.Memo, "memo", "", "memo")
	fs.StringVar(&p.Ticket, "ticket", "", "withdraw ticket")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if p.Coin == "" || p.Address == "" || p.Ticket == "" || p.Amount <= 0 {
		return nil, fmt.Errorf("%w: coin, amount, address and ticket are required", errUsage)
	}
	return a.private.CreateWithdraw(ctx, &p)
}

func runTransfer(ctx context.Context, a *app, args []string) (interface{}, error) {
	var p apifiny.TransferParams
	fs := flag.NewFlagSet("transfer", flag.ContinueOnError)
	fs.StringVar(&p.Currency, "currency", "", "currency")
	fs.Float64Var(&p.Amount, "amount", 0, "amount")
	fs.StringVar(&p.TargetVenue, "target", "", "target venue")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if p.Currency == "" || p.TargetVenue == "" || p.Amount <= 0 {
		return nil, fmt.Errorf("%w: currency, amount and target are required", errUsage)
	}
	if _, err := model.LookupVenue(p.TargetVenue); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return a.private.TransferToVenue(ctx, &p)
}

func runHistory(ctx context.Context, a *app, args []string) (interface{}, error) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	start := fs.String("start", "", "start time (RFC3339, default 7 days ago)")
	end := fs.String("end", "", "end time (RFC3339, default now)")
	limit := fs.Int("limit", 20, "page size")
	page := fs.Int("page", 1, "page")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	now := time.Now()
	p := apifiny.AccountHistoryParams{
		StartTimeDate: now.AddDate(0, 0, -7),
		EndTimeDate:   now,
		Limit:         int32(*limit),
		Page:          int32(*page),
	}
	if t, err := parseTime(*start); err != nil {
		return nil, err
	} else if t != nil {
		p.StartTimeDate = *t
	}
	if t, err := parseTime(*end); err != nil {
		return nil, err
	} else if t != nil {
		p.EndTimeDate = *t
	}
	return a.private.QueryAssetActivityList(ctx, &p)
}

func runFeeRate(ctx context.Context, a *app, args []string) (interface{}, error) {
	if err := requireArgs(args, 1, "SYMBOL"); err != nil {
		return nil, err
	}
	return a.private.GetCommissionRate(ctx, args[0])
}

func runInstantQuota(ctx context.Context, a *app, args []string) (interface{}, error) {
	if err := requireArgs(args, 1, "CURRENCY"); err != nil {
		return nil, err
	}
	return a.private.QueryMaxInstantAmount(ctx, args[0])
}

func runConvert(ctx context.Context, a *app, args []string) (interface{}, error) {
	var p apifiny.CreateConversionParams
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVar(&p.Currency, "currency", "", "from currency (USD, USDC)")
	fs.StringVar(&p.TargetCurrency, "target", "", "to currency (USD, USDC)")
	fs.Float64Var(&p.Amount, "amount", 0, "amount")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if p.Currency == "" || p.TargetCurrency == "" || p.Amount <= 0 {
		return nil, fmt.Errorf("%w: currency, target and amount are required", errUsage)
	}
	return a.private.CreateConversion(ctx, &p)
}

func runOrder(ctx context.Context, a *app, args []string) (interface{}, error) {
	var p apifiny.CreateOrderParams
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	fs.StringVar(&p.OrderID, "id", "", "order id (default: generated)")
	fs.StringVar(&p.OrderInfo.Symbol, "symbol", "", "symbol")
	fs.StringVar(&p.OrderInfo.OrderSide, "side", "", "BUY or SELL")
	fs.StringVar(&p.OrderInfo.OrderType, "type", model.LimitOrder, "LIMIT, MARKET, STOP or SOR")
	fs.IntVar(&p.OrderInfo.TimeInForce, "tif", model.GTC, "1=GTC, 3=IOC, 7=PostOnly")
	fs.StringVar(&p.OrderInfo.LimitPrice, "price", "", "limit price")
	fs.StringVar(&p.OrderInfo.Quantity, "qty", "", "quantity")
	fs.StringVar(&p.OrderInfo.Total, "total", "", "quote amount for market buy")
	fs.StringVar(&p.OrderInfo.TriggerPrice, "trigger", "", "trigger price for STOP")
	fs.StringVar(&p.OrderInfo.StopType, "stop", "", "ENTRY or LOSS for STOP")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	info := &p.OrderInfo
	info.OrderSide = strings.ToUpper(info.OrderSide)
	info.OrderType = strings.ToUpper(info.OrderType)
	if info.Symbol == "" || (info.OrderSide != model.BuySide && info.OrderSide != model.SellSide) {
		return nil, fmt.Errorf("%w: symbol and side are required", errUsage)
	}
	if info.OrderType == model.StopOrder && (info.TriggerPrice == "" || info.StopType == "") {
		return nil, fmt.Errorf("%w: trigger and stop are required for STOP", errUsage)
	}
	if p.OrderID == "" {
		p.OrderID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	a.logger.Info("order id: %s", p.OrderID)
	return a.private.CreateOrder(ctx, &p)
}
