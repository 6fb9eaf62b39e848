// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"contribmap/internal/app"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

const table = "position;score_A;score_B\n" +
	"1;0;0\n" +
	"5;10,0;1,5\n" +
	"10;60,0;0\n" +
	"11;61,5;0\n" +
	"15;95,0;80\n" +
	"20;0,2;0\n"

func TestEndToEndPNG(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "contrib.csv"), table)
	out := filepath.Join(dir, "out", "map.png")

	var stdout, stderr bytes.Buffer
	code := app.Run([]string{"-o", out, "-t", "50", "-p", "position", "-x", "score_A", in}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr.String())
	}

	fh, err := os.Open(out)
	if err != nil {
		t.Fatalf("image missing: %v", err)
	}
	defer fh.Close()
	img, err := png.Decode(fh)
	if err != nil {
		t.Fatalf("not a png: %v", err)
	}
	if img.Bounds().Dx() != 2000 {
		t.Fatalf("width %d, want 20in at 100dpi", img.Bounds().Dx())
	}
	if !strings.Contains(stderr.String(), "3/5 positions with a contribution >= 50.0% contribution threshold (60.00%)") {
		t.Fatalf("summary missing:\n%s", stderr.String())
	}
}

func TestEndToEndSVG(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "contrib.csv"), table)
	out := filepath.Join(dir, "map.svg")

	var stdout, stderr bytes.Buffer
	if code := app.Run([]string{"-o", out, "-t", "1", "-p", "position", "-x", "score_B", "-s", "30", in}, &stdout, &stderr); code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr.String())
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<svg", "Contributions score B", "5: 1.5%", "15: 80.0%"} {
		if !strings.Contains(string(svg), want) {
			t.Errorf("svg lacks %q", want)
		}
	}
}

// Without --sequence-size the last position closes the sequence and must
// still be drawn.
func TestInferredSizeDrawsLastPosition(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "contrib.csv"), "position;target_A\n5;10,0\n10;60,0\n15;95,0\n")
	out := filepath.Join(dir, "map.svg")

	var stdout, stderr bytes.Buffer
	if code := app.Run([]string{"-o", out, "-t", "50", "-p", "position", "-x", "target_A", in}, &stdout, &stderr); code != 0 {
		t.Fatalf("run exit %d, err=%s", code, stderr.String())
	}
	if strings.Contains(stderr.String(), "WARNING") {
		t.Fatalf("unexpected warning:\n%s", stderr.String())
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "sequence size (last position of contribution): 15") {
		t.Errorf("size provenance missing:\n%s", stderr.String())
	}
	for _, want := range []string{"Spike", "10: 60.0%", "15: 95.0%"} {
		if !strings.Contains(string(svg), want) {
			t.Errorf("svg lacks %q", want)
		}
	}
}

var stamp = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} `)

// Two runs over the same input leave the same log, timestamps aside.
func TestRerunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "contrib.csv"), table)
	out := filepath.Join(dir, "map.svg")
	args := []string{"-o", out, "-t", "50", "-p", "position", "-x", "score_A", "--log-level", "DEBUG", in}

	logOf := func() []string {
		var stdout, stderr bytes.Buffer
		if code := app.Run(args, &stdout, &stderr); code != 0 {
			t.Fatalf("exit %d: %s", code, stderr.String())
		}
		data, err := os.ReadFile(filepath.Join(dir, app.Name+".log"))
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		for i, ln := range lines {
			lines[i] = stamp.ReplaceAllString(ln, "")
		}
		return lines
	}
	first, second := logOf(), logOf()
	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Fatalf("logs differ:\n%s\n---\n%s", strings.Join(first, "\n"), strings.Join(second, "\n"))
	}
}

func TestZeroContributionsFail(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "contrib.csv"), "position;score\n1;0\n2;0\n")
	out := filepath.Join(dir, "map.png")

	var stdout, stderr bytes.Buffer
	if code := app.Run([]string{"-o", out, "-t", "0", "-p", "position", "-x", "score", in}, &stdout, &stderr); code == 0 {
		t.Fatal("expected non-zero exit")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatal("image written for an empty contribution set")
	}
}
