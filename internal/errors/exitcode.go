package errors

// ExitCode 是进程退出码（稳定契约）。
type ExitCode int

const (
	ExitOK ExitCode = 0

	// 2: 参数/配置错误
	ExitConfig ExitCode = 2

	// 3: 条目不存在
	ExitNotFound ExitCode = 3

	// 4: 权限不足
	ExitAccessDenied ExitCode = 4

	// 5: 存储错误（IO/序列化/平台凭据服务）
	ExitStorage ExitCode = 5

	// 10: 内部错误
	ExitInternal ExitCode = 10
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeCfgNotFound, CodeCfgInvalid, CodePlatformNotSupported:
		return ExitConfig
	case CodeKeyNotFound:
		return ExitNotFound
	case CodeAccessDenied:
		return ExitAccessDenied
	case CodeIO, CodeSerialization, CodePlatform:
		return ExitStorage
	case CodeInternal:
		fallthrough
	default:
		return ExitInternal
	}
}
