package keystore

import (
	"path/filepath"
	"sync"
)

// pathLocks: 绝对路径 -> *sync.Mutex。同一进程内指向同一数据文件的所有
// FileStore 共享一把锁，覆盖完整的 load→修改→save 周期。
var pathLocks sync.Map

func lockFor(path string) *sync.Mutex {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	m, _ := pathLocks.LoadOrStore(filepath.Clean(key), &sync.Mutex{})
	return m.(*sync.Mutex)
}
