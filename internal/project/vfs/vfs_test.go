package vfs

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemFSReadWrite(t *testing.T) {
	m := NewMemFS()
	if err := m.AddFile("/src/main.go", "package main\n"); err != nil {
		t.Fatal(err)
	}

	data, err := m.ReadFile("src/main.go")
	if err != nil || string(data) != "package main\n" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}

	if _, err := m.ReadFile("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
	if _, err := m.ReadFile("/src"); err == nil {
		t.Error("reading a directory should fail")
	}
	if err := m.WriteFile("/nodir/x", nil, 0o644); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("write without parent err = %v", err)
	}

	data[0] = 'X'
	again, _ := m.ReadFile("/src/main.go")
	if again[0] != 'p' {
		t.Error("ReadFile must return a copy")
	}
}

func TestMemFSReadDir(t *testing.T) {
	m := NewMemFS()
	for _, p := range []string{"/b.txt", "/a/x.go", "/a/y.go", "/c/d/e.go"} {
		if err := m.AddFile(p, ""); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.ReadDir("/")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"a", "b.txt", "c"}, names); diff != "" {
		t.Errorf("ReadDir mismatch (-want +got):\n%s", diff)
	}
	if !entries[0].IsDir() || entries[1].IsDir() {
		t.Error("wrong directory flags")
	}

	if _, err := m.ReadDir("/b.txt"); err == nil {
		t.Error("ReadDir on a file should fail")
	}
}

func TestMemFSRel(t *testing.T) {
	m := NewMemFS()
	tests := []struct {
		base, target, want string
		ok                 bool
	}{
		{"/proj", "/proj/src/a.go", "src/a.go", true},
		{"/proj", "/proj", ".", true},
		{"/", "/x", "x", true},
		{"/proj", "/project/a", "", false},
	}
	for _, tt := range tests {
		got, err := m.Rel(tt.base, tt.target)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("Rel(%q, %q) = %q, %v", tt.base, tt.target, got, err)
		}
	}
}

func TestMemFSFailWrites(t *testing.T) {
	m := NewMemFS()
	_ = m.AddFile("/f", "old")
	boom := errors.New("disk full")
	m.FailWrites("/f", boom)

	if err := m.WriteFile("/f", []byte("new"), 0o644); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	data, _ := m.ReadFile("/f")
	if string(data) != "old" {
		t.Errorf("failed write changed content: %q", data)
	}

	m.FailWrites("/f", nil)
	if err := m.WriteFile("/f", []byte("new"), 0o644); err != nil {
		t.Error(err)
	}
}

func TestOSFSWriteKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	if err := os.WriteFile(path, []byte("old"), 0o750); err != nil {
		t.Fatal(err)
	}

	f := NewOSFS()
	if err := f.WriteFile(path, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := f.ReadFile(path)
	if err != nil || string(data) != "new" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	info, err := f.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Errorf("mode = %v, want 0750", info.Mode().Perm())
	}

	entries, err := f.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Errorf("temporary file left behind: %d entries, %v", len(entries), err)
	}
	if !f.Exists(path) || f.Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists is wrong")
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		text    string
		enc     Encoding
	}{
		{"utf8", []byte("héllo\n"), "héllo\n", UTF8},
		{"empty", nil, "", UTF8},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "hi"...), "hi", UTF8BOM},
		{"latin1", []byte{'c', 'a', 'f', 0xE9}, "café", Latin1},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 0xE9, 0, '\n', 0}, "hé\n", UTF16LE},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'o', 0, 'k'}, "ok", UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := Decode(tt.content)
			if err != nil {
				t.Fatal(err)
			}
			if text != tt.text || enc != tt.enc {
				t.Errorf("Decode = %q, %v; want %q, %v", text, enc, tt.text, tt.enc)
			}
			out, err := Encode(text, enc)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(out, tt.content) && len(tt.content) > 0 {
				t.Errorf("Encode = %v, want %v", out, tt.content)
			}
		})
	}
}

func TestDecodeBinary(t *testing.T) {
	if _, _, err := Decode([]byte{0x7f, 'E', 'L', 'F', 0, 0, 1}); !errors.Is(err, ErrBinary) {
		t.Errorf("err = %v, want ErrBinary", err)
	}
}

func TestEncodeUnrepresentable(t *testing.T) {
	if _, err := Encode("日本", Latin1); err == nil {
		t.Error("expected an error encoding CJK as Latin-1")
	}
}
