package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

var lineRE = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} (DEBUG|INFO|WARNING|ERROR|CRITICAL): `)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":         zapcore.InfoLevel,
		"DEBUG":    zapcore.DebugLevel,
		"info":     zapcore.InfoLevel,
		"WARNING":  zapcore.WarnLevel,
		"ERROR":    zapcore.ErrorLevel,
		"CRITICAL": zapcore.DPanicLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("VERBOSE"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestOpenWritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	var console bytes.Buffer

	lg, err := Open(path, zapcore.InfoLevel, &console)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	lg.Infof("hello %d", 42)
	lg.Warnf("careful")
	lg.Debugf("hidden")
	if err := lg.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	fileLines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(fileLines) != 2 {
		t.Fatalf("want 2 lines in file, got %d: %q", len(fileLines), data)
	}
	for _, ln := range fileLines {
		if !lineRE.MatchString(ln) {
			t.Errorf("bad line format: %q", ln)
		}
	}
	if !strings.HasSuffix(fileLines[0], "INFO: hello 42") {
		t.Errorf("unexpected first line %q", fileLines[0])
	}
	if !strings.HasSuffix(fileLines[1], "WARNING: careful") {
		t.Errorf("unexpected second line %q", fileLines[1])
	}
	if console.String() != string(data) {
		t.Errorf("console and file differ:\n%s\n---\n%s", console.String(), data)
	}
}

func TestOpenRemovesPreviousLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte("stale line\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lg, err := Open(path, zapcore.InfoLevel, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	lg.Info("fresh")
	_ = lg.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") {
		t.Fatalf("previous log content survived: %q", data)
	}
}

func TestCriticalDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, zapcore.ErrorLevel)
	lg.Errorf("e")
	lg.Criticalf("c")
	out := buf.String()
	if !strings.Contains(out, "ERROR: e") || !strings.Contains(out, "CRITICAL: c") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNopAndNilClose(t *testing.T) {
	Nop().Infof("ignored")
	var lg *Logger
	if err := lg.Close(); err != nil {
		t.Fatal(err)
	}
}
