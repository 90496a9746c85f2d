package keystore

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/zx06/keystore/internal/errors"
)

// Document 是数据文件的完整内容：按插入顺序排列的密文记录。
// 每次操作都整体读取、整体写回。
type Document struct {
	Entries []SealedRecord `json:"entries"`
}

type docFile struct {
	path string
}

// load 读取数据文件；文件不存在视为空文档（首次使用的正常状态）。
func (f docFile) load() (Document, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Document{}, nil
		}
		return Document{}, errors.WrapFS("failed to read store file", f.path, err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, errors.Wrap(errors.CodeSerialization, "invalid store file", map[string]any{"path": f.path}, err)
	}
	for i, e := range doc.Entries {
		if len(e.Nonce) != NonceSize {
			return Document{}, errors.New(errors.CodeSerialization, "invalid nonce length in store file",
				map[string]any{"path": f.path, "index": i, "length": len(e.Nonce)})
		}
	}
	return doc, nil
}

// save 先写临时文件再 rename 覆盖，保证读者只会看到旧文件或新文件。
func (f docFile) save(doc Document) error {
	if doc.Entries == nil {
		doc.Entries = []SealedRecord{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.CodeSerialization, "failed to encode store file", nil, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.WrapFS("failed to create store directory", dir, err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(b)); err != nil {
		return errors.WrapFS("failed to write store file", f.path, err)
	}
	if err := restrictPermissions(f.path); err != nil {
		return errors.WrapFS("failed to restrict store file permissions", f.path, err)
	}
	return nil
}
