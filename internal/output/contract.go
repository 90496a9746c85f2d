package output

import "github.com/zx06/keystore/internal/errors"

// SchemaVersion 随 envelope 输出；字段只增不删，破坏性变更才递增。
const SchemaVersion = 1

// ErrorObject 是失败结果中的 error 字段。Code 是稳定错误码，
// Details 只放定位信息（service/account/path 等），从不包含 secret 值。
type ErrorObject struct {
	Code    errors.Code    `json:"code" yaml:"code"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// Envelope 是 CLI 与 MCP 工具共用的结果包装：成功时带 data，失败时带 error。
type Envelope struct {
	OK            bool         `json:"ok" yaml:"ok"`
	SchemaVersion int          `json:"schema_version" yaml:"schema_version"`
	Error         *ErrorObject `json:"error,omitempty" yaml:"error,omitempty"`
	Data          any          `json:"data,omitempty" yaml:"data,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{OK: true, SchemaVersion: SchemaVersion, Data: data}
}

// Fail 把 XError 转成失败 envelope；cause 不会输出。
func Fail(xe *errors.XError) Envelope {
	return Envelope{
		OK:            false,
		SchemaVersion: SchemaVersion,
		Error:         &ErrorObject{Code: xe.Code, Message: xe.Message, Details: xe.Details},
	}
}
