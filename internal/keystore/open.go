package keystore

import (
	"log/slog"

	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/log"
)

// Mode 选择后端。
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeNative Mode = "native"
	ModeFile   Mode = "file"
)

func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeAuto, ModeNative, ModeFile:
		return m, true
	case "":
		return ModeAuto, true
	default:
		return "", false
	}
}

// OpenOptions 控制 Open 的选择策略。Native 为 nil 时使用系统 keyring；
// File 只在真正需要回退时才用于构造 FileStore（会创建密钥文件）。
type OpenOptions struct {
	Mode   Mode
	Native Backend
	File   Config
	Logger *slog.Logger
}

// Open 按 Mode 选择后端：auto 优先 native，不可用时回退到加密文件存储。
func Open(opts OpenOptions) (Backend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	if opts.File.Logger == nil {
		opts.File.Logger = logger
	}
	native := opts.Native
	if native == nil {
		native = NewNativeStore(nil)
	}

	mode, ok := ParseMode(string(opts.Mode))
	if !ok {
		return nil, errors.New(errors.CodeCfgInvalid, "invalid backend", map[string]any{"backend": string(opts.Mode)})
	}

	switch mode {
	case ModeFile:
		return openFile(opts.File)
	case ModeNative:
		if !native.IsAvailable() {
			return nil, errors.New(errors.CodePlatformNotSupported, "native credential store is not available",
				map[string]any{"backend": native.Name()})
		}
		return native, nil
	default:
		if native.IsAvailable() {
			logger.Debug("using native credential store", "backend", native.Name())
			return native, nil
		}
		logger.Info("native credential store unavailable, using encrypted file store", "path", opts.File.DataPath)
		return openFile(opts.File)
	}
}

// openFile 避免把 nil *FileStore 包装成非 nil 的 Backend
func openFile(cfg Config) (Backend, error) {
	fs, err := NewFileStore(cfg)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
