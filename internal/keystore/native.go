package keystore

import (
	stderrors "errors"
	"runtime"

	"github.com/zalando/go-keyring"

	"github.com/zx06/keystore/internal/errors"
)

const (
	sentinelService = "keystore"
	sentinelAccount = "__keystore_sentinel__"
)

// NativeStore 把操作直接转发给 OS 凭据服务（Keychain / Credential Manager / Secret Service）。
type NativeStore struct {
	kr KeyringAPI
}

// NewNativeStore 使用 kr；kr 为 nil 时使用系统 keyring。
func NewNativeStore(kr KeyringAPI) *NativeStore {
	if kr == nil {
		kr = defaultKeyring()
	}
	return &NativeStore{kr: kr}
}

func (n *NativeStore) Name() string { return "native" }

func (n *NativeStore) Set(service, account, value string) error {
	if !nativeSupported() {
		return errPlatformNotSupported()
	}
	if err := n.kr.Set(service, account, value); err != nil {
		return mapKeyringErr(err, "failed to set password", service, account)
	}
	return nil
}

func (n *NativeStore) Get(service, account string) (string, error) {
	if !nativeSupported() {
		return "", errPlatformNotSupported()
	}
	val, err := n.kr.Get(service, account)
	if err != nil {
		return "", mapKeyringErr(err, "failed to get password", service, account)
	}
	return val, nil
}

func (n *NativeStore) Delete(service, account string) error {
	if !nativeSupported() {
		return errPlatformNotSupported()
	}
	if err := n.kr.Delete(service, account); err != nil {
		return mapKeyringErr(err, "failed to delete password", service, account)
	}
	return nil
}

// IsAvailable 用一次探测查询判断凭据服务是否可达：
// 查到或“未找到”都说明服务可用，其它错误（如 D-Bus 不可达）视为不可用。
func (n *NativeStore) IsAvailable() bool {
	if !nativeSupported() {
		return false
	}
	_, err := n.kr.Get(sentinelService, sentinelAccount)
	return err == nil || stderrors.Is(err, keyring.ErrNotFound)
}

func mapKeyringErr(err error, message, service, account string) error {
	if stderrors.Is(err, keyring.ErrNotFound) {
		return errKeyNotFound(service, account)
	}
	details := map[string]any{"service": service, "account": account}
	if stderrors.Is(err, keyring.ErrSetDataTooBig) {
		return errors.Wrap(errors.CodePlatform, "value too large for native credential store", details, err)
	}
	return errors.Wrap(errors.CodePlatform, message, details, err)
}

// go-keyring 支持的平台；其它平台上 native 存储不可用。
func nativeSupported() bool {
	switch runtime.GOOS {
	case "darwin", "windows", "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return true
	default:
		return false
	}
}

func errPlatformNotSupported() error {
	return errors.New(errors.CodePlatformNotSupported, "platform not supported", map[string]any{"os": runtime.GOOS})
}
