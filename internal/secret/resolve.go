package secret

import (
	"strings"

	"github.com/zx06/keystore/internal/errors"
)

const keyringPrefix = "keyring:"

// DefaultService 是 keyring:xxx 引用使用的 service 名。
const DefaultService = "keystore"

// Getter 是 Resolve 需要的最小后端能力；keystore.Backend 满足该接口。
type Getter interface {
	Get(service, account string) (string, error)
}

// Options 控制 secret 解析行为。
type Options struct {
	AllowPlaintext bool   // 是否允许明文（默认 false）
	Store          Getter // keyring:xxx 引用从这里读取
}

// Resolve 解析配置中的 secret 值：
//  1. keyring:xxx → 从 Store 读取 (DefaultService, xxx)
//  2. 否则若为明文且允许明文 → 直接返回
//  3. 否则报错
func Resolve(raw string, opts Options) (string, *errors.XError) {
	if IsKeyringRef(raw) {
		service, account, xe := parseKeyringRef(strings.TrimPrefix(raw, keyringPrefix))
		if xe != nil {
			return "", xe
		}
		if opts.Store == nil {
			return "", errors.New(errors.CodeInternal, "no credential store available to resolve secret reference", nil)
		}
		val, err := opts.Store.Get(service, account)
		if err != nil {
			if errors.Is(err, errors.CodeKeyNotFound) {
				return "", errors.Wrap(errors.CodeKeyNotFound, "secret reference not found", map[string]any{"account": account}, err)
			}
			return "", errors.AsOrWrap(err)
		}
		return val, nil
	}
	// 明文
	if opts.AllowPlaintext {
		return raw, nil
	}
	return "", errors.New(errors.CodeCfgInvalid, "plaintext secret not allowed; use keyring: reference or enable plaintext explicitly", nil)
}

// parseKeyringRef 整个引用都作为 account（可以包含 '/'），service 固定为 DefaultService。
func parseKeyringRef(ref string) (string, string, *errors.XError) {
	if ref == "" {
		return "", "", errors.New(errors.CodeCfgInvalid, "empty keyring reference", nil)
	}
	return DefaultService, ref, nil
}

// IsKeyringRef 判断值是否为 keyring 引用。
func IsKeyringRef(s string) bool {
	return strings.HasPrefix(s, keyringPrefix)
}
