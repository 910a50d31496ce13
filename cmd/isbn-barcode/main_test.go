// seehuhn.de/go/barcode - ISBN barcodes as Encapsulated PostScript
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/barcode/eps"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, outDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "language: en\noutput:\n  dir: " + outDir + "\n"
	err := os.WriteFile(path, []byte(data), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateStdout(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out, _, err := run(t, "-c", cfg, "generate", "9780306406157", "12345", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	want, err := eps.Generate(&eps.Settings{Value: "9780306406157", AddOn: "12345", BarHeight: 15, DPI: 300})
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, out); d != "" {
		t.Error(d)
	}
}

func TestGenerateFile(t *testing.T) {
	outDir := t.TempDir()
	cfg := writeConfig(t, outDir)

	_, msg, err := run(t, "-c", cfg, "generate", "--complete", "978-0-306-40615",
		"--bar-height", "20", "--dpi", "600", "-o", "out.eps")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(outDir, "out.eps")
	if !strings.Contains(msg, path) {
		t.Errorf("message %q does not mention %s", msg, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"% Value: 9780306406157",
		"% Bar Height: 20.00000000 mm",
		"% Output DPI: 600",
	} {
		if !strings.Contains(string(data), "\n"+line+"\n") {
			t.Errorf("missing %q", line)
		}
	}
}

func TestGenerateRejected(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	_, _, err := run(t, "-c", cfg, "generate", "9780306406158", "-o", "-")
	if err == nil || err.Error() != "The ISBN check digit is not correct." {
		t.Errorf("unexpected error %v", err)
	}

	_, _, err = run(t, "-c", cfg, "generate", "--complete", "97803064061", "-o", "-")
	if err == nil {
		t.Error("short prefix accepted")
	}

	_, _, err = run(t, "-c", cfg, "generate")
	if err == nil {
		t.Error("missing argument accepted")
	}
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := run(t, "-c", path, "config", "init")
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = run(t, "-c", path, "config", "init")
	if err == nil {
		t.Error("existing config overwritten without --force")
	}

	out, _, err := run(t, "-c", path, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"bar_height_mm: 15", "dpi: 300", "language: ko"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in\n%s", s, out)
		}
	}
}

func TestGenerateDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "language: en\nbarcode:\n  addon_offset_mm: 2\n"
	err := os.WriteFile(path, []byte(data), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "-c", path, "generate", "9780306406157", "12345", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "\n% Add-On Offset: 2.0000 mm\n") {
		t.Error("configured offset not used")
	}

	out, _, err = run(t, "-c", path, "generate", "9780306406157", "12345", "--addon-offset", "0", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "\n% Add-On Offset: 0.0000 mm\n") {
		t.Error("--addon-offset 0 ignored")
	}

	out, _, err = run(t, "-c", path, "generate", "9780306406157", "--bar-height", "NaN", "-o", "-")
	if err == nil || out != "" {
		t.Errorf("NaN bar height accepted: %v", err)
	}
}
