package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/zx06/keystore/internal/errors"
)

type Writer struct {
	Out io.Writer
	Err io.Writer
}

func New(out, err io.Writer) Writer {
	return Writer{Out: out, Err: err}
}

func (w Writer) WriteOK(format Format, data any) error {
	return w.write(format, OK(data))
}

func (w Writer) WriteError(format Format, xe *errors.XError) error {
	return w.write(format, Fail(xe))
}

// WriteRaw 原样输出 s 并换行，不带 envelope（供脚本读取单个值）。
func (w Writer) WriteRaw(s string) error {
	_, err := fmt.Fprintln(w.Out, s)
	return err
}

func (w Writer) write(format Format, env Envelope) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case FormatYAML:
		b, err := yaml.Marshal(env)
		if err != nil {
			return err
		}
		_, err = w.Out.Write(b)
		if err != nil {
			return err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			_, _ = w.Out.Write([]byte("\n"))
		}
		return nil
	case FormatTable:
		return writeTable(w.Out, env)
	case FormatCSV:
		return writeCSV(w.Out, env)
	default:
		return errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": string(format)})
	}
}

// rows 把 envelope 展开为有序的 key/value 行；嵌套对象用点号连接，数组保持 JSON。
func rows(env Envelope) [][2]string {
	out := [][2]string{
		{"ok", fmt.Sprintf("%v", env.OK)},
		{"schema_version", fmt.Sprintf("%d", env.SchemaVersion)},
	}
	if !env.OK {
		if env.Error != nil {
			out = append(out, [2]string{"error.code", string(env.Error.Code)})
			out = append(out, [2]string{"error.message", env.Error.Message})
		}
		return out
	}
	if env.Data == nil {
		return out
	}
	b, err := json.Marshal(env.Data)
	if err != nil {
		return append(out, [2]string{"data", fmt.Sprintf("%v", env.Data)})
	}
	var generic any
	_ = json.Unmarshal(b, &generic)
	return flatten(out, "data", generic)
}

func flatten(out [][2]string, prefix string, v any) [][2]string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = flatten(out, prefix+"."+k, t[k])
		}
		return out
	case string:
		return append(out, [2]string{prefix, t})
	case nil:
		return append(out, [2]string{prefix, ""})
	default:
		b, _ := json.Marshal(t)
		return append(out, [2]string{prefix, string(b)})
	}
}

func writeTable(out io.Writer, env Envelope) error {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	for _, r := range rows(env) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func writeCSV(out io.Writer, env Envelope) error {
	cw := csv.NewWriter(out)
	for _, r := range rows(env) {
		_ = cw.Write([]string{r[0], r[1]})
	}
	cw.Flush()
	return cw.Error()
}
