package apifiny

import (
	"errors"
	"fmt"
)

var (
	// ErrVenueNotConfigured 取引所が未設定のまま口座系APIを呼び出した
	ErrVenueNotConfigured = errors.New("venue not set")
	// ErrCredentialNotConfigured 認証情報が未設定のまま口座系APIを呼び出した
	ErrCredentialNotConfigured = errors.New("credential not set")
	// ErrInvalidSigningKey 秘密鍵で署名できない（設定誤り）
	ErrInvalidSigningKey = errors.New("invalid signing key")
)

// RestAPIError 2xx以外のレスポンス
type RestAPIError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *RestAPIError) Error() string {
	return fmt.Sprintf("request url:%s error, statusCode:%d, message:%s", e.URL, e.StatusCode, e.Message)
}

// TransportError 通信・URL・レスポンス読み込みの失敗
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to request, url: %s; error: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SerializationError JSONへの変換・JSONからの変換の失敗
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to (de)serialize json; error: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// HeaderEncodingError ヘッダー値に使えない文字が含まれている
type HeaderEncodingError struct {
	Header string
}

func (e *HeaderEncodingError) Error() string {
	return fmt.Sprintf("invalid header value, header: %s", e.Header)
}

// ResponseError レスポンスのエンベロープに含まれるAPIエラー
type ResponseError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("api error, code: %d, message: %s", e.Code, e.Message)
}
