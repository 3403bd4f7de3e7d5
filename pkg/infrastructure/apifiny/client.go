package apifiny

import (
	"net/http"
	"time"

	"apifiny/pkg/domain"
	"apifiny/pkg/domain/model"
)

const (
	// publicOrigin 相場情報・基本情報の接続先（取引所によらず共通）
	publicOrigin = "https://api.apifiny.com"

	signatureHeader = "signature"
)

// Client Apifiny用クライアント
// 認証情報と取引所は生成後に変更しないため、複数のgoroutineから同時に利用できる。
type Client struct {
	credential *model.Credential
	venue      *model.Venue
	publicURL  string
	httpClient *http.Client
	now        func() time.Time
	logger     domain.Logger
}

// Option 生成オプション
type Option func(*Client)

// WithHTTPClient 通信に使うHTTPクライアントを指定
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithPublicURL 相場情報・基本情報の接続先を指定
func WithPublicURL(u string) Option {
	return func(c *Client) {
		c.publicURL = u
	}
}

// WithClock 署名の有効期限計算に使う時刻を指定
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger リクエストのトレース出力先を指定
func WithLogger(l domain.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient 生成
// venue が nil の場合は公開APIのみ利用できる。
func NewClient(cred *model.Credential, venue *model.Venue, opts ...Option) *Client {
	c := &Client{
		credential: cred,
		venue:      venue,
		publicURL:  publicOrigin,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewPublicClient 公開API専用のクライアントを生成
func NewPublicClient(opts ...Option) *Client {
	return NewClient(nil, nil, opts...)
}

// Venue 接続先の取引所
func (c *Client) Venue() *model.Venue {
	return c.venue
}
