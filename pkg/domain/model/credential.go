package model

// Credential APIアクセス用の認証情報
type Credential struct {
	AccessKey string `split_words:"true" required:"true"`
	SecretKey string `split_words:"true" required:"true"`
	AccountID string `envconfig:"ACCOUNT_ID" required:"true"`
}

// String 秘密情報を出力しない
func (c Credential) String() string {
	return "Credential{AccessKey: ***, SecretKey: ***, AccountID: " + c.AccountID + "}"
}

// GoString %#v でも秘密情報を出力しない
func (c Credential) GoString() string {
	return c.String()
}
