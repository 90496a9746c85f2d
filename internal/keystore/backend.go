package keystore

import "github.com/zx06/keystore/internal/errors"

// Backend 是凭据存储的统一能力集；native 适配器与加密文件存储契约一致。
//
// Get/Delete 在条目不存在时返回 ERR_KEY_NOT_FOUND。
type Backend interface {
	Name() string
	Set(service, account, value string) error
	Get(service, account string) (string, error)
	Delete(service, account string) error
	IsAvailable() bool
}

var (
	_ Backend = (*FileStore)(nil)
	_ Backend = (*NativeStore)(nil)
)

func identity(service, account string) string {
	return service + fieldSep + account
}

func errKeyNotFound(service, account string) error {
	return errors.New(errors.CodeKeyNotFound, "key not found: "+identity(service, account),
		map[string]any{"service": service, "account": account})
}
