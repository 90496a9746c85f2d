package errors

// Code 是稳定错误码（字符串），供调用方与 agent 程序化判断。
// 只增不改、不复用旧含义。
type Code string

const (
	// 存储边界（native 与 fallback 后端共用）
	CodePlatformNotSupported Code = "ERR_PLATFORM_NOT_SUPPORTED"
	CodeKeyNotFound          Code = "ERR_KEY_NOT_FOUND"
	CodeAccessDenied         Code = "ERR_ACCESS_DENIED"
	CodeIO                   Code = "ERR_IO"
	CodeSerialization        Code = "ERR_SERIALIZATION"
	CodePlatform             Code = "ERR_PLATFORM"

	// Config / args
	CodeCfgNotFound Code = "ERR_CFG_NOT_FOUND"
	CodeCfgInvalid  Code = "ERR_CFG_INVALID"

	// Internal
	CodeInternal Code = "ERR_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodePlatformNotSupported,
		CodeKeyNotFound,
		CodeAccessDenied,
		CodeIO,
		CodeSerialization,
		CodePlatform,
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeInternal,
	}
}
