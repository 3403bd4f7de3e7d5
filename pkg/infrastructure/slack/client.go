package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TextMessage Incoming Webhook のメッセージ
type TextMessage struct {
	Text string `json:"text"`
}

// Client Slack通知用クライアント
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient 生成（httpClient が nil なら http.DefaultClient）
func NewClient(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
	}
}

// Notify テキストを通知
func (c *Client) Notify(ctx context.Context, format string, v ...interface{}) error {
	return c.PostMessage(ctx, TextMessage{Text: fmt.Sprintf(format, v...)})
}

func (c *Client) PostMessage(ctx context.Context, messageObj interface{}) error {
	values, err := json.Marshal(messageObj)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(values))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("slack response %d error: %s", res.StatusCode, body)
	}

	return nil
}
