package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName 是固定的应用命名空间，决定配置目录名。
const AppName = "keystore"

const (
	KeyFileName    = "enc.key"
	DataFileName   = "keystore.fallback"
	ConfigFileName = "keystore.yaml"
)

// Paths 是加密文件存储使用的路径。
// 只由各平台的标准目录约定推导，不提供额外的环境变量覆盖。
type Paths struct {
	Dir      string `json:"dir" yaml:"dir"`
	KeyFile  string `json:"key_file" yaml:"key_file"`
	DataFile string `json:"data_file" yaml:"data_file"`
}

// DefaultPaths 返回当前平台、当前环境下的路径。
func DefaultPaths() Paths {
	return PathsFor(runtime.GOOS, os.Getenv)
}

// PathsFor 按平台约定计算路径：
//   - windows: %LOCALAPPDATA%\keystore
//   - darwin:  $HOME/Library/Application Support/keystore
//   - 其它:    $XDG_CONFIG_HOME/keystore，未设置时 $HOME/.config/keystore
//
// 基础目录变量缺失时退回当前目录。
func PathsFor(goos string, getenv func(string) string) Paths {
	dir := filepath.Join(baseDir(goos, getenv), AppName)
	return Paths{
		Dir:      dir,
		KeyFile:  filepath.Join(dir, KeyFileName),
		DataFile: filepath.Join(dir, DataFileName),
	}
}

func baseDir(goos string, getenv func(string) string) string {
	switch goos {
	case "windows":
		return orDot(getenv("LOCALAPPDATA"))
	case "darwin":
		return filepath.Join(orDot(getenv("HOME")), "Library", "Application Support")
	default:
		if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		return filepath.Join(orDot(getenv("HOME")), ".config")
	}
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}
