package config

import (
	"path/filepath"
	"testing"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestPathsFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		env     map[string]string
		wantDir string
	}{
		{
			name:    "linux xdg",
			goos:    "linux",
			env:     map[string]string{"XDG_CONFIG_HOME": "/xdg", "HOME": "/home/u"},
			wantDir: filepath.Join("/xdg", "keystore"),
		},
		{
			name:    "linux home fallback",
			goos:    "linux",
			env:     map[string]string{"HOME": "/home/u"},
			wantDir: filepath.Join("/home/u", ".config", "keystore"),
		},
		{
			name:    "freebsd behaves like linux",
			goos:    "freebsd",
			env:     map[string]string{"HOME": "/home/u"},
			wantDir: filepath.Join("/home/u", ".config", "keystore"),
		},
		{
			name:    "darwin",
			goos:    "darwin",
			env:     map[string]string{"HOME": "/Users/u", "XDG_CONFIG_HOME": "/ignored"},
			wantDir: filepath.Join("/Users/u", "Library", "Application Support", "keystore"),
		},
		{
			name:    "windows",
			goos:    "windows",
			env:     map[string]string{"LOCALAPPDATA": `C:\Users\u\AppData\Local`},
			wantDir: filepath.Join(`C:\Users\u\AppData\Local`, "keystore"),
		},
		{
			name:    "windows missing env",
			goos:    "windows",
			env:     map[string]string{},
			wantDir: filepath.Join(".", "keystore"),
		},
		{
			name:    "linux missing env",
			goos:    "linux",
			env:     map[string]string{},
			wantDir: filepath.Join(".", ".config", "keystore"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PathsFor(tt.goos, envOf(tt.env))
			if p.Dir != tt.wantDir {
				t.Errorf("Dir=%q, want %q", p.Dir, tt.wantDir)
			}
			if p.KeyFile != filepath.Join(tt.wantDir, "enc.key") {
				t.Errorf("KeyFile=%q", p.KeyFile)
			}
			if p.DataFile != filepath.Join(tt.wantDir, "keystore.fallback") {
				t.Errorf("DataFile=%q", p.DataFile)
			}
		})
	}
}
