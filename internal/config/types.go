package config

// File 表示 keystore.yaml 的配置结构。
// 约束：配置优先级为 CLI > ENV > Config。
type File struct {
	Backend  string `yaml:"backend"` // auto | native | file
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	MCP      MCP    `yaml:"mcp"`
}

type MCP struct {
	Transport string  `yaml:"transport"` // stdio | streamable_http
	HTTP      MCPHTTP `yaml:"http"`
}

type MCPHTTP struct {
	Addr                string `yaml:"addr"`
	AuthToken           string `yaml:"auth_token"` // 支持 keyring:xxx 引用
	AllowPlaintextToken bool   `yaml:"allow_plaintext_token"`
}

type Resolved struct {
	ConfigPath string
	Backend    string
	Format     string
	LogLevel   string
	Paths      Paths
	MCP        MCP
}

type Options struct {
	// ConfigPath: 若非空，则只读取该文件（不存在报错）。
	ConfigPath string

	// CLI
	CLIBackend     string
	CLIBackendSet  bool
	CLIFormat      string
	CLIFormatSet   bool
	CLILogLevel    string
	CLILogLevelSet bool

	// ENV（由调用方注入，便于测试）
	EnvBackend  string
	EnvFormat   string
	EnvLogLevel string

	// WorkDir 用于默认路径（为空则使用进程当前工作目录）。
	WorkDir string

	// Paths 为空时使用 DefaultPaths()。
	Paths *Paths
}
