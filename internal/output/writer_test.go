package output

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/zx06/keystore/internal/errors"
)

func TestWriteOK_JSONEnvelope(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	if err := w.WriteOK(FormatJSON, map[string]any{"k": "v"}); err != nil {
		t.Fatal(err)
	}
	var env Envelope
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.OK || env.SchemaVersion != SchemaVersion {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestWriteError_JSONEnvelope(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	xe := errors.New(errors.CodeKeyNotFound, "key not found: s:a", map[string]any{"service": "s"})
	if err := w.WriteError(FormatJSON, xe); err != nil {
		t.Fatal(err)
	}
	var env Envelope
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.OK || env.Error == nil || env.Error.Code != errors.CodeKeyNotFound {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Error.Details["service"] != "s" {
		t.Fatalf("details not preserved: %v", env.Error.Details)
	}
}

func TestWriteError_DoesNotExposeCause(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	xe := errors.Wrap(errors.CodeIO, "failed to write store file", nil, stderrors.New("secret-laden cause"))
	if err := w.WriteError(FormatJSON, xe); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "secret-laden cause") {
		t.Errorf("error output should not expose cause, got: %s", out.String())
	}
}

func TestWriteOK_YAMLFormat(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	if err := w.WriteOK(FormatYAML, map[string]any{"version": "1.0.0"}); err != nil {
		t.Fatal(err)
	}
	result := out.String()
	if !strings.Contains(result, "ok: true") {
		t.Errorf("YAML should contain 'ok: true', got: %s", result)
	}
	if !strings.Contains(result, "version: 1.0.0") {
		t.Errorf("YAML should contain version, got: %s", result)
	}
}

func TestWriteOK_TableFlattensData(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	data := map[string]any{
		"backend": "file",
		"paths":   map[string]any{"dir": "/tmp/ks"},
		"list":    []int{1, 2},
	}
	if err := w.WriteOK(FormatTable, data); err != nil {
		t.Fatal(err)
	}
	result := out.String()
	for _, want := range []string{"data.backend", "file", "data.paths.dir", "/tmp/ks", "data.list", "[1,2]"} {
		if !strings.Contains(result, want) {
			t.Errorf("table output missing %q:\n%s", want, result)
		}
	}
	// 键按字母序输出
	if strings.Index(result, "data.backend") > strings.Index(result, "data.list") {
		t.Errorf("keys should be sorted:\n%s", result)
	}
}

func TestWriteError_Table(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	if err := w.WriteError(FormatTable, errors.New(errors.CodeAccessDenied, "permission denied", nil)); err != nil {
		t.Fatal(err)
	}
	result := out.String()
	if !strings.Contains(result, "ERR_ACCESS_DENIED") || !strings.Contains(result, "false") {
		t.Errorf("unexpected table output:\n%s", result)
	}
}

func TestWriteOK_CSV(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	if err := w.WriteOK(FormatCSV, map[string]any{"value": "a,b"}); err != nil {
		t.Fatal(err)
	}
	result := out.String()
	if !strings.Contains(result, "ok,true") {
		t.Errorf("CSV should contain ok row, got: %s", result)
	}
	if !strings.Contains(result, `data.value,"a,b"`) {
		t.Errorf("CSV should quote values with commas, got: %s", result)
	}
}

func TestWriteRaw(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, &bytes.Buffer{})
	if err := w.WriteRaw("s3cret"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "s3cret\n" {
		t.Fatalf("WriteRaw=%q", out.String())
	}
}

func TestWrite_InvalidFormat(t *testing.T) {
	w := New(&bytes.Buffer{}, &bytes.Buffer{})
	err := w.WriteOK(Format("xml"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	xe, ok := errors.As(err)
	if !ok || xe.Code != errors.CodeCfgInvalid {
		t.Fatalf("expected ERR_CFG_INVALID, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		ok   bool
	}{
		{in: "json", want: FormatJSON, ok: true},
		{in: " YAML ", want: FormatYAML, ok: true},
		{in: "Table", want: FormatTable, ok: true},
		{in: "csv", want: FormatCSV, ok: true},
		{in: "auto", want: FormatAuto, ok: true},
		{in: "xml", ok: false},
		{in: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := ParseFormat(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseFormat(%q)=(%q,%v), want (%q,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFailOmitsCause(t *testing.T) {
	xe := errors.Wrap(errors.CodeIO, "failed to write store file", map[string]any{"path": "/tmp/x"}, stderrors.New("disk full"))
	env := Fail(xe)
	if env.OK || env.SchemaVersion != SchemaVersion {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	b, err := json.Marshal(env)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "disk full") {
		t.Fatalf("cause leaked into envelope: %s", b)
	}
	if !strings.Contains(string(b), `"code":"ERR_IO"`) {
		t.Fatalf("missing code: %s", b)
	}
}
