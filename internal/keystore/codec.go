package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"strings"
	"unicode/utf8"

	"github.com/zx06/keystore/internal/errors"
)

const fieldSep = ":"

// Entry 是一条明文凭据。身份为 (Service, Account)，Value 为载荷。
type Entry struct {
	Service string
	Account string
	Value   string
}

func (e Entry) matches(service, account string) bool {
	return e.Service == service && e.Account == account
}

// SealedRecord 是一条 AES-256-GCM 密文及其 nonce；Ciphertext 末尾含 16 字节认证标签。
type SealedRecord struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// Codec 负责单条记录的序列化与认证加密。
type Codec struct {
	aead cipher.AEAD
}

func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, errors.New(errors.CodeCfgInvalid, "encryption key must be 32 bytes", map[string]any{"length": len(key)})
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "aes.NewCipher", nil, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "cipher.NewGCM", nil, err)
	}
	return &Codec{aead: aead}, nil
}

// Seal 每次调用都生成新的随机 nonce，同一条记录更新时也不复用。
// 字段必须是合法 UTF-8，否则 Open 无法还原，记录会变成不可读的孤儿。
func (c *Codec) Seal(e Entry) (SealedRecord, error) {
	for _, f := range [...]struct{ name, v string }{{"service", e.Service}, {"account", e.Account}, {"value", e.Value}} {
		if !utf8.ValidString(f.v) {
			return SealedRecord{}, errors.New(errors.CodeSerialization, "secret fields must be valid UTF-8",
				map[string]any{"field": f.name})
		}
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return SealedRecord{}, errors.Wrap(errors.CodePlatform, "failed to generate nonce", nil, err)
	}
	ct := c.aead.Seal(nil, nonce, []byte(encodeEntry(e)), nil)
	return SealedRecord{Nonce: nonce, Ciphertext: ct}, nil
}

// Open 解密并解析记录。认证失败、数据截断或格式不符时返回 ok=false 而不是错误，
// 调用方据此跳过该记录。
func (c *Codec) Open(r SealedRecord) (Entry, bool) {
	if len(r.Nonce) != NonceSize {
		return Entry{}, false
	}
	pt, err := c.aead.Open(nil, r.Nonce, r.Ciphertext, nil)
	if err != nil || !utf8.Valid(pt) {
		return Entry{}, false
	}
	return decodeEntry(string(pt))
}

// encodeEntry 生成 "service:account:value"。
func encodeEntry(e Entry) string {
	return e.Service + fieldSep + e.Account + fieldSep + e.Value
}

// decodeEntry 最多切成 3 段：value 中的冒号保持原样，
// service/account 中的冒号会移动切分边界（总是取前两段作为身份）。
func decodeEntry(s string) (Entry, bool) {
	parts := strings.SplitN(s, fieldSep, 3)
	if len(parts) != 3 {
		return Entry{}, false
	}
	return Entry{Service: parts[0], Account: parts[1], Value: parts[2]}, true
}
