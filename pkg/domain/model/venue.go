package model

import "fmt"

// Venue 接続先の取引所
type Venue struct {
	Name string
	Rest string
	// Fix FIX接続先（未使用）
	Fix string
}

var (
	// Binance BINANCE
	Binance = Venue{Name: "BINANCE", Rest: "https://apibn.apifiny.com/ac/v2", Fix: "fixapibn.apifiny.com:1443"}
	// BinanceUS BINANCEUS
	BinanceUS = Venue{Name: "BINANCEUS", Rest: "https://apibnu.apifiny.com/ac/v2", Fix: "fixapibnu.apifiny.com:1443"}
	// CoinbasePro COINBASEPRO
	CoinbasePro = Venue{Name: "COINBASEPRO", Rest: "https://apicb.apifiny.com/ac/v2", Fix: "fixapicb.apifiny.com:1443"}
	// FTX FTX
	FTX = Venue{Name: "FTX", Rest: "https://apiftx.apifiny.com/ac/v2", Fix: "fixapiftx.apifiny.com:1443"}
	// Huobi HUOBI
	Huobi = Venue{Name: "HUOBI", Rest: "https://apihb.apifiny.com/ac/v2", Fix: "fixapihb.apifiny.com:1443"}
	// Kucoin KUCOIN
	Kucoin = Venue{Name: "KUCOIN", Rest: "https://apikc.apifiny.com/ac/v2", Fix: "fixapikc.apifiny.com:1443"}
	// Okex OKEX
	Okex = Venue{Name: "OKEX", Rest: "https://apiok.apifiny.com/ac/v2", Fix: "fixapiok.apifiny.com:1443"}
	// OkCoin OKCOIN
	OkCoin = Venue{Name: "OKCOIN", Rest: "https://apiokc.apifiny.com/ac/v2", Fix: "fixapiokc.apifiny.com:1443"}
)

var venues = []Venue{Binance, BinanceUS, CoinbasePro, FTX, Huobi, Kucoin, Okex, OkCoin}

// Venues 対応している取引所の一覧（コピーを返す）
func Venues() []Venue {
	vv := make([]Venue, len(venues))
	copy(vv, venues)
	return vv
}

// LookupVenue 名前（完全一致）から取引所を取得
func LookupVenue(name string) (*Venue, error) {
	for _, v := range venues {
		if v.Name == name {
			v := v
			return &v, nil
		}
	}
	return nil, fmt.Errorf("unknown venue, name: %s", name)
}
