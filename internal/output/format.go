package output

import "strings"

// Format 是 --format / KEYSTORE_FORMAT 的取值。
type Format string

const (
	FormatAuto  Format = "auto" // 终端为 table，管道为 json
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// ParseFormat 忽略大小写与首尾空白；未知格式返回 ok=false。
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatAuto, FormatJSON, FormatYAML, FormatTable, FormatCSV:
		return f, true
	default:
		return "", false
	}
}
