package model

// Config 実行時の設定（環境変数 APIFINY_*）
type Config struct {
	Credential
	// Venue 口座系APIで利用する取引所名（未指定なら公開APIのみ）
	Venue string
	// Proxy HTTPSプロキシ
	Proxy    string `envconfig:"PROXY"`
	LogLevel string `split_words:"true" default:"info"`
	LogFile  string `split_words:"true"`
}

// FetcherConfig market-fetcher用設定
type FetcherConfig struct {
	IntervalSeconds int      `toml:"interval_seconds"`
	HistorySize     int      `toml:"history_size"`
	Targets         []Target `toml:"targets"`
	DB              DB       `toml:"db"`
}

// Target 取得対象
type Target struct {
	Venue  string `toml:"venue"`
	Symbol string `toml:"symbol"`
}

// DB DB用設定
type DB struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Name     string `toml:"name"`
	UserName string `toml:"user_name"`
	Password string `toml:"password"`
}

// Enabled DB接続先が設定されているか
func (d *DB) Enabled() bool {
	return d.Host != ""
}
