package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func runCat(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestRunFlags(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"no flags", "a\nb\n", nil, "a\nb\n"},
		{"squeeze", "a\n\n\nb\n", []string{"-s"}, "a\n\nb\n"},
		{"number", "a\nb\n", []string{"-n"}, "     1  a\n     2  b\n"},
		{"number long", "a\nb\n", []string{"--number"}, "     1  a\n     2  b\n"},
		{"number nonblank", "a\n\nb\n", []string{"-b"}, "     1  a\n\n     2  b\n"},
		{"show tabs", "a\tb\n", []string{"-T"}, "a^Ib\n"},
		{"show nonprinting", "\x01\n", []string{"--show-nonprinting"}, "^A\n"},
		{"combined shorts", "a\t\n\n\n", []string{"-bET"}, "     1  a^I$\n$\n$\n"},
		{"n then b", "a\n\nb\n", []string{"-n", "-b"}, "     1  a\n\n     2  b\n"},
		{"b then n", "a\n\nb\n", []string{"-b", "-n"}, "     1  a\n     2  \n     3  b\n"},
		{"T then v", "\t\x01\n", []string{"-T", "-v"}, "\t^A\n"},
		{"v then T", "\t\x01\n", []string{"--show-nonprinting", "--show-tabs"}, "^I\x01\n"},
		{"bare dash", "in\n", []string{"-E", "-"}, "in$\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, out, errOut := runCat(t, tc.stdin, tc.args...)
			if code != 0 {
				t.Fatalf("exit %d, stderr %q", code, errOut)
			}
			if out != tc.want {
				t.Fatalf("unexpected output\nwant: %q\n got: %q", tc.want, out)
			}
		})
	}
}

func TestRunFilesNumberContinuously(t *testing.T) {
	first := writeTemp(t, "a.txt", []byte("one\ntwo\n"))
	second := writeTemp(t, "b.txt", []byte("three\n"))
	code, out, errOut := runCat(t, "mid\n", "-n", first, "-", second)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	want := "     1  one\n     2  two\n     3  mid\n     4  three\n"
	if out != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, out)
	}
}

func TestRunMissingFile(t *testing.T) {
	ok := writeTemp(t, "ok.txt", []byte("ok\n"))
	missing := filepath.Join(t.TempDir(), "missing.txt")
	code, out, errOut := runCat(t, "", ok, missing)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if out != "" {
		t.Fatalf("expected no output before failing, got %q", out)
	}
	if !strings.Contains(errOut, missing) {
		t.Fatalf("stderr does not name the file: %q", errOut)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	for _, arg := range []string{"-x", "-h", "-nh", "--bogus"} {
		code, out, errOut := runCat(t, "a\n", arg)
		if code != 1 {
			t.Fatalf("%s: exit %d, want 1", arg, code)
		}
		if out != "" || !strings.Contains(errOut, "see `cat --help`") {
			t.Fatalf("%s: unexpected output %q / %q", arg, out, errOut)
		}
		if strings.Contains(errOut, "Usage:") {
			t.Fatalf("%s: usage printed for a bad flag: %q", arg, errOut)
		}
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	code, out, _ := runCat(t, "", "--version")
	if code != 0 || !strings.Contains(out, "by: "+author) {
		t.Fatalf("version: exit %d output %q", code, out)
	}
	code, out, _ = runCat(t, "", "--help")
	if code != 0 || !strings.Contains(out, "Usage: cat") || !strings.Contains(out, "--squeeze-blank") {
		t.Fatalf("help: exit %d output %q", code, out)
	}
	if strings.Contains(out, "--debug") {
		t.Fatalf("hidden flag listed in help: %q", out)
	}
	for _, args := range [][]string{{"--version", "-n"}, {"file", "--help"}} {
		code, out, errOut := runCat(t, "", args...)
		if code != 1 || out != "" || !strings.Contains(errOut, "incorrect arguments") {
			t.Fatalf("%v: exit %d output %q stderr %q", args, code, out, errOut)
		}
	}
}

func TestRunDecompress(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("x\ty\n")); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	path := writeTemp(t, "in.gz", buf.Bytes())
	code, out, errOut := runCat(t, "", "-zT", path)
	if code != 0 {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
	if out != "x^Iy\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunDebugLogs(t *testing.T) {
	code, out, errOut := runCat(t, "a\n", "--debug")
	if code != 0 || out != "a\n" {
		t.Fatalf("exit %d output %q", code, out)
	}
	if !strings.Contains(errOut, "level=DEBUG") {
		t.Fatalf("expected debug records, got %q", errOut)
	}
}
