package apifiny

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"apifiny/pkg/domain/model"
)

const (
	claimAccountID   = "accountId"
	claimSecretKeyID = "secretKeyId"
	claimExpiration  = "exp"
	claimDigest      = "digest"

	tokenLifetime = 24 * time.Hour
)

// Claim 署名対象の項目
type Claim struct {
	Key   string
	Value interface{}
}

// Claims キーの辞書順に並んだ署名対象の項目一覧
type Claims []Claim

// NewClaims 1リクエスト分の署名対象を生成
func NewClaims(cred *model.Credential, digest string, hasDigest bool, now time.Time) Claims {
	var c Claims
	c = c.Set(claimAccountID, cred.AccountID)
	c = c.Set(claimSecretKeyID, cred.AccessKey)
	c = c.Set(claimExpiration, now.Add(tokenLifetime).Unix())
	if hasDigest {
		c = c.Set(claimDigest, digest)
	}
	return c
}

// Set 辞書順を保ったまま項目を追加（同じキーは上書き）
func (c Claims) Set(key string, value interface{}) Claims {
	i := sort.Search(len(c), func(i int) bool { return c[i].Key >= key })
	if i < len(c) && c[i].Key == key {
		c[i].Value = value
		return c
	}
	c = append(c, Claim{})
	copy(c[i+1:], c[i:])
	c[i] = Claim{Key: key, Value: value}
	return c
}

// Get 項目の値を取得
func (c Claims) Get(key string) (interface{}, bool) {
	i := sort.Search(len(c), func(i int) bool { return c[i].Key >= key })
	if i < len(c) && c[i].Key == key {
		return c[i].Value, true
	}
	return nil, false
}

// MarshalJSON 並び順どおりにJSONオブジェクトへ変換
func (c Claims) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, claim := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(&buf, claim.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeCompact(&buf, claim.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Valid jwt.Claims の実装。有効期限の検証はサーバー側で行う
func (c Claims) Valid() error {
	return nil
}

func encodeCompact(buf *bytes.Buffer, v interface{}) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode は末尾に改行を付ける
	buf.Truncate(buf.Len() - 1)
	return nil
}

// ContentDigest 送信内容のSHA-256（16進小文字）
// GET はクエリ文字列、POST はボディ（無ければ空文字列）が対象。それ以外のメソッドは対象外。
func ContentDigest(method, rawQuery string, body []byte) (string, bool) {
	var content []byte
	switch method {
	case http.MethodGet:
		if rawQuery == "" {
			return "", false
		}
		content = []byte(rawQuery)
	case http.MethodPost:
		content = body
	default:
		return "", false
	}
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]), true
}
