package mysql

import (
	"fmt"
	"time"

	"apifiny/pkg/domain/model"
	"apifiny/pkg/domain/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Client MySQL用クライアント
type Client struct {
	db *gorm.DB
}

// NewClient MySQL用クライアントの生成
func NewClient(conf *model.DB) (*Client, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", conf.UserName, conf.Password, conf.Host, conf.Port, conf.Name)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database, host: %s, name: %s; error: %w", conf.Host, conf.Name, err)
	}
	if err := db.AutoMigrate(&Ticker{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tickers; error: %w", err)
	}

	return &Client{
		db: db,
	}, nil
}

// AddTicker ティッカーの登録
func (c *Client) AddTicker(t *model.Ticker) error {
	return c.db.Create(NewTicker(t)).Error
}

// GetTickers since 以降に記録したティッカーを古い順に取得
func (c *Client) GetTickers(venue, symbol string, since time.Time) ([]model.Ticker, error) {
	records := []Ticker{}
	err := c.db.
		Where("venue = ? AND symbol = ? AND recorded_at >= ?", venue, symbol, since).
		Order("recorded_at").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	tt := []model.Ticker{}
	for _, r := range records {
		tt = append(tt, *r.ToDomainModel())
	}
	return tt, nil
}

var _ repository.TickerRepository = (*Client)(nil)
