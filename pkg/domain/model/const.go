package model

import "fmt"

// Period ローソク足の期間
type Period string

const (
	// Minute1 1分足
	Minute1 Period = "1m"
	// Minute5 5分足
	Minute5 Period = "5m"
	// Minute15 15分足
	Minute15 Period = "15m"
	// Minute30 30分足
	Minute30 Period = "30m"
	// Hour1 1時間足
	Hour1 Period = "1h"
	// Hour4 4時間足
	Hour4 Period = "4h"
	// Day1 日足
	Day1 Period = "1d"
	// Week1 週足
	Week1 Period = "1w"
	// Month1 月足
	Month1 Period = "1M"
)

var periods = []Period{Minute1, Minute5, Minute15, Minute30, Hour1, Hour4, Day1, Week1, Month1}

// ParsePeriod 文字列から期間に変換
func ParsePeriod(s string) (Period, error) {
	for _, p := range periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period, period: %s", s)
}

const (
	// BuySide 買い
	BuySide = "BUY"
	// SellSide 売り
	SellSide = "SELL"
)

const (
	// LimitOrder 指値
	LimitOrder = "LIMIT"
	// MarketOrder 成行
	MarketOrder = "MARKET"
	// StopOrder 逆指値
	StopOrder = "STOP"
	// SmartOrder スマートオーダールーティング
	SmartOrder = "SOR"
)

const (
	// GTC Good Till Cancel
	GTC = 1
	// IOC Immediate Or Cancel
	IOC = 3
	// PostOnly Post Only
	PostOnly = 7
)
