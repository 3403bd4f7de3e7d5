package apifiny

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// NewHTTPClient HTTPクライアントを生成（proxy が空ならプロキシなし）
// プロキシはHTTPSの通信にのみ適用する。
func NewHTTPClient(proxy string) (*http.Client, error) {
	if proxy == "" {
		return &http.Client{}, nil
	}

	u, err := url.Parse(proxy)
	if err != nil {
		return nil, fmt.Errorf("failed parse proxy url; proxy: %s, error: %w", proxy, err)
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" {
			return u, nil
		}
		return nil, nil
	}
	return &http.Client{Transport: t}, nil
}

func makeURL(base string, segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, strings.TrimSuffix(base, "/"))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return strings.Join(escaped, "/")
}

// request リクエストを送信し、2xxならレスポンスボディを返す
// signed の場合は送信するクエリ・ボディに対する署名を signature ヘッダーに付与する。
func (c *Client) request(ctx context.Context, method, rawURL string, query map[string]string, body interface{}, signed bool) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	if query != nil {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var payload []byte
	var reader io.Reader
	if body != nil {
		if payload, err = json.Marshal(body); err != nil {
			return nil, &SerializationError{Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	if signed {
		if err := c.sign(req, payload); err != nil {
			return nil, err
		}
	}

	if c.logger != nil {
		c.logger.Debug("request %s %s (signed: %v)", method, req.URL.String(), signed)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &RestAPIError{
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Message:    string(resBody),
		}
	}
	return resBody, nil
}

// sign 署名トークンを生成してヘッダーに付与
func (c *Client) sign(req *http.Request, payload []byte) error {
	digest, ok := ContentDigest(req.Method, req.URL.RawQuery, payload)
	claims := NewClaims(c.credential, digest, ok, c.now())

	token, err := Sign(claims, []byte(c.credential.SecretKey))
	if err != nil {
		return err
	}
	if !httpguts.ValidHeaderFieldValue(token) {
		return &HeaderEncodingError{Header: signatureHeader}
	}

	req.Header.Set(signatureHeader, token)
	return nil
}

func decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &SerializationError{Err: err}
	}
	return nil
}

func requestJSON[T any](ctx context.Context, c *Client, method, rawURL string, query map[string]string, body interface{}, signed bool) (*T, error) {
	b, err := c.request(ctx, method, rawURL, query, body, signed)
	if err != nil {
		return nil, err
	}

	var res T
	if err := decode(b, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// venueScope 口座系APIの前提条件（通信前に確認する）
func (c *Client) venueScope() (*accountScope, error) {
	if c.venue == nil {
		return nil, ErrVenueNotConfigured
	}
	if c.credential == nil {
		return nil, ErrCredentialNotConfigured
	}
	return &accountScope{AccountID: c.credential.AccountID, Venue: c.venue.Name}, nil
}

// accountScope 口座系APIのクエリ・ボディに必ず含める項目
type accountScope struct {
	AccountID string `json:"accountId"`
	Venue     string `json:"venue"`
}

func (s *accountScope) query(kv ...string) map[string]string {
	q := map[string]string{
		"accountId": s.AccountID,
		"venue":     s.Venue,
	}
	for i := 0; i+1 < len(kv); i += 2 {
		q[kv[i]] = kv[i+1]
	}
	return q
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
