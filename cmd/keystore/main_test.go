package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain_SpecCommand 测试 spec 命令输出
func TestMain_SpecCommand(t *testing.T) {
	binary := buildTestBinary(t)

	cmd := exec.Command(binary, "spec", "--format", "json")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("spec command failed: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("failed to parse JSON: %v\noutput: %s", err, out)
	}

	if ok, _ := resp["ok"].(bool); !ok {
		t.Errorf("expected ok=true, got %v", resp["ok"])
	}
	if v, _ := resp["schema_version"].(float64); v != 1 {
		t.Errorf("expected schema_version=1, got %v", v)
	}
	if resp["data"] == nil {
		t.Error("expected data field")
	}
}

// TestMain_VersionCommand 测试 version 命令
func TestMain_VersionCommand(t *testing.T) {
	binary := buildTestBinary(t)

	cmd := exec.Command(binary, "version", "--format", "json")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("failed to parse JSON: %v\noutput: %s", err, out)
	}

	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data map")
	}
	if _, ok := data["version"]; !ok {
		t.Error("expected version in data")
	}
}

// TestMain_SetGetFileBackend 通过二进制验证加密文件存储跨进程持久化
func TestMain_SetGetFileBackend(t *testing.T) {
	binary := buildTestBinary(t)
	env := isolatedEnv(t)

	set := exec.Command(binary, "set", "svc", "acct", "--backend", "file", "--format", "json")
	set.Env = env
	set.Stdin = strings.NewReader("piped-value\n")
	if out, err := set.CombinedOutput(); err != nil {
		t.Fatalf("set failed: %v\n%s", err, out)
	}

	get := exec.Command(binary, "get", "svc", "acct", "--raw", "--backend", "file")
	get.Env = env
	out, err := get.Output()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(out) != "piped-value\n" {
		t.Fatalf("get output=%q", out)
	}
}

// TestMain_NotFoundExitCode 测试未找到时的退出码
func TestMain_NotFoundExitCode(t *testing.T) {
	binary := buildTestBinary(t)

	cmd := exec.Command(binary, "get", "svc", "nobody", "--backend", "file", "--format", "json")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit 3, got %d", exitErr.ExitCode())
	}

	var resp map[string]any
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("failed to parse JSON: %v\noutput: %s", err, out)
	}
	if ok, _ := resp["ok"].(bool); ok {
		t.Error("expected ok=false")
	}
}

// TestMain_Help 测试帮助
func TestMain_Help(t *testing.T) {
	binary := buildTestBinary(t)

	cmd := exec.Command(binary, "--help")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	if !strings.Contains(string(out), "keystore") {
		t.Errorf("expected help output to contain 'keystore', got: %s", out)
	}
}

// isolatedEnv 返回把配置目录指向临时目录的环境变量
func isolatedEnv(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	env := make([]string, 0, len(os.Environ())+3)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "KEYSTORE_") {
			continue
		}
		env = append(env, kv)
	}
	return append(env, "XDG_CONFIG_HOME="+dir, "HOME="+dir, "LOCALAPPDATA="+dir)
}

func buildTestBinary(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "keystore_test_binary")
	if isWindows() {
		tmpFile += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", tmpFile, ".")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build test binary: %v\n%s", err, out)
	}

	return tmpFile
}

func isWindows() bool {
	return os.PathSeparator == '\\'
}
