package usecase

import (
	"fmt"

	"apifiny/pkg/infrastructure/apifiny"

	"github.com/markcheno/go-talib"
)

// KLineSummary ローソク足の終値から算出した指標（最新値）
type KLineSummary struct {
	Count  int     `json:"count"`
	Period int     `json:"period"`
	Last   float64 `json:"last"`
	SMA    float64 `json:"sma"`
	EMA    float64 `json:"ema"`
	RSI    float64 `json:"rsi"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
}

// SummarizeKLines ローソク足（古い順）から指標を算出
func SummarizeKLines(lines []apifiny.KLine, period int) (*KLineSummary, error) {
	if period < 2 {
		return nil, fmt.Errorf("period must be 2 or more, period: %d", period)
	}
	// RSI は period+1 本必要
	if len(lines) <= period {
		return nil, fmt.Errorf("not enough klines, count: %d, period: %d", len(lines), period)
	}

	closes := make([]float64, 0, len(lines))
	s := KLineSummary{Count: len(lines), Period: period}
	for i, l := range lines {
		c := l.Close.InexactFloat64()
		closes = append(closes, c)

		h, lo := l.High.InexactFloat64(), l.Low.InexactFloat64()
		if i == 0 || h > s.High {
			s.High = h
		}
		if i == 0 || lo < s.Low {
			s.Low = lo
		}
	}

	last := len(closes) - 1
	s.Last = closes[last]
	s.SMA = talib.Sma(closes, period)[last]
	s.EMA = talib.Ema(closes, period)[last]
	s.RSI = talib.Rsi(closes, period)[last]
	return &s, nil
}
