package keystore

import (
	"log/slog"
	"sync"

	"github.com/zx06/keystore/internal/errors"
	"github.com/zx06/keystore/internal/log"
)

// Config 描述一个加密文件存储实例。Key 非空时直接使用，不读写 KeyPath。
type Config struct {
	KeyPath  string
	DataPath string
	Key      []byte
	Logger   *slog.Logger
}

// FileStore 是 native 凭据服务不可用时的回退存储：记录逐条加密后保存在一个 JSON 文件中。
//
// 加密后无法按明文身份建索引，因此 Get/Set/Delete 都要逐条尝试解密（O(n)）。
// 无法解密的记录被跳过，不影响其它记录。
type FileStore struct {
	keyPath     string
	file        docFile
	codec       *Codec
	fingerprint string
	mu          *sync.Mutex
	logger      *slog.Logger
}

// NewFileStore 读取（或生成）密钥并缓存在实例中，后续操作不再重读密钥文件。
func NewFileStore(cfg Config) (*FileStore, error) {
	if cfg.DataPath == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "store data path is required", nil)
	}
	key := cfg.Key
	if key == nil {
		if cfg.KeyPath == "" {
			return nil, errors.New(errors.CodeCfgInvalid, "key path is required when no key is given", nil)
		}
		k, err := GetOrCreateKey(cfg.KeyPath)
		if err != nil {
			return nil, err
		}
		key = k
	}
	codec, err := NewCodec(key)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &FileStore{
		keyPath:     cfg.KeyPath,
		file:        docFile{path: cfg.DataPath},
		codec:       codec,
		fingerprint: Fingerprint(key),
		mu:          lockFor(cfg.DataPath),
		logger:      logger,
	}, nil
}

func (s *FileStore) Name() string { return "file" }

// IsAvailable 恒为 true：本存储不依赖任何外部服务。
func (s *FileStore) IsAvailable() bool { return true }

func (s *FileStore) KeyPath() string { return s.keyPath }
func (s *FileStore) DataPath() string { return s.file.path }
func (s *FileStore) KeyFingerprint() string { return s.fingerprint }

// Set 是 upsert：命中已有身份时原位替换，否则追加到末尾。
func (s *FileStore) Set(service, account, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.file.load()
	if err != nil {
		return err
	}
	sealed, err := s.codec.Seal(Entry{Service: service, Account: account, Value: value})
	if err != nil {
		return err
	}
	if i, _, ok := s.find(doc, service, account); ok {
		doc.Entries[i] = sealed
	} else {
		doc.Entries = append(doc.Entries, sealed)
	}
	return s.file.save(doc)
}

func (s *FileStore) Get(service, account string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.file.load()
	if err != nil {
		return "", err
	}
	_, e, ok := s.find(doc, service, account)
	if !ok {
		return "", errKeyNotFound(service, account)
	}
	return e.Value, nil
}

// Delete 不是幂等的：删除不存在的条目返回 ERR_KEY_NOT_FOUND。
func (s *FileStore) Delete(service, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.file.load()
	if err != nil {
		return err
	}
	i, _, ok := s.find(doc, service, account)
	if !ok {
		return errKeyNotFound(service, account)
	}
	doc.Entries = append(doc.Entries[:i], doc.Entries[i+1:]...)
	return s.file.save(doc)
}

// Report 是 Check 的结果。Unreadable 为无法用当前密钥解密的记录下标。
type Report struct {
	Total      int   `json:"total" yaml:"total"`
	Readable   int   `json:"readable" yaml:"readable"`
	Unreadable []int `json:"unreadable" yaml:"unreadable"`
}

// Check 扫描整个文档并统计无法解密的记录。Get/Delete 会静默跳过这些记录，
// 这里把它们显式报告出来。
func (s *FileStore) Check() (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.file.load()
	if err != nil {
		return Report{}, err
	}
	r := Report{Total: len(doc.Entries), Unreadable: []int{}}
	for i, rec := range doc.Entries {
		if _, ok := s.codec.Open(rec); ok {
			r.Readable++
			continue
		}
		r.Unreadable = append(r.Unreadable, i)
	}
	return r, nil
}

// find 按文档顺序返回第一条身份匹配的记录。
func (s *FileStore) find(doc Document, service, account string) (int, Entry, bool) {
	for i, rec := range doc.Entries {
		e, ok := s.codec.Open(rec)
		if !ok {
			s.logger.Debug("skipping undecodable record", "path", s.file.path, "index", i)
			continue
		}
		if e.matches(service, account) {
			return i, e, true
		}
	}
	return -1, Entry{}, false
}
