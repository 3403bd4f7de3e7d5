package apifiny

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// Sign 署名対象をHS256で署名したトークン文字列を生成
func Sign(claims Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	// ヘッダーは alg のみ
	token.Header = map[string]interface{}{
		"alg": jwt.SigningMethodHS256.Alg(),
	}

	s, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w; error: %v", ErrInvalidSigningKey, err)
	}
	return s, nil
}
