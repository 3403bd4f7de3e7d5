package apifiny

import (
	"context"
	"time"

	"github.com/pmylund/go-cache"
)

// CachedClient 基本情報（取引所・通貨・銘柄一覧）をキャッシュするクライアント
// 署名付きのリクエストやその結果はキャッシュしない。
type CachedClient struct {
	*Client
	cache *cache.Cache
}

// NewCachedClient 生成
func NewCachedClient(c *Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		Client: c,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// ListVenueInfo 取引所一覧
func (c *CachedClient) ListVenueInfo(ctx context.Context, venue string) (*Response[[]VenueInfo], error) {
	return cached(c, "venueInfo/"+venue, func() (*Response[[]VenueInfo], error) {
		return c.Client.ListVenueInfo(ctx, venue)
	})
}

// ListCurrency 通貨一覧
func (c *CachedClient) ListCurrency(ctx context.Context, venue string) (*Response[[]CurrencyInfo], error) {
	return cached(c, "currency/"+venue, func() (*Response[[]CurrencyInfo], error) {
		return c.Client.ListCurrency(ctx, venue)
	})
}

// ListSymbolInfo 銘柄一覧
func (c *CachedClient) ListSymbolInfo(ctx context.Context, venue string) (*Response[[]SymbolInfo], error) {
	return cached(c, "symbolInfo/"+venue, func() (*Response[[]SymbolInfo], error) {
		return c.Client.ListSymbolInfo(ctx, venue)
	})
}

// Flush キャッシュを破棄
func (c *CachedClient) Flush() {
	c.cache.Flush()
}

// cached APIエラーを含むレスポンスはキャッシュしない
func cached[T any](c *CachedClient, key string, fetch func() (*Response[T], error)) (*Response[T], error) {
	if v, ok := c.cache.Get(key); ok {
		return v.(*Response[T]), nil
	}

	res, err := fetch()
	if err != nil {
		return nil, err
	}
	if res.Error == nil {
		c.cache.Set(key, res, cache.DefaultExpiration)
	}
	return res, nil
}
