package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilterLetters(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cat", "cat"},
		{"a1!t", "at"},
		{"  c a t  ", "cat"},
		{"1234!?", ""},
		{"", ""},
		{"Héllo-World", "HélloWorld"},
		{"don't", "dont"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := string(FilterLetters(tc.input))
			if got != tc.expected {
				t.Errorf("FilterLetters(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLowerLetters(t *testing.T) {
	got := string(LowerLetters([]rune("CaT")))
	if got != "cat" {
		t.Errorf("expected 'cat', got %q", got)
	}
}

func TestHasOnlyLetters(t *testing.T) {
	if HasOnlyLetters("") {
		t.Error("empty string should not count as letters")
	}
	if !HasOnlyLetters("word") {
		t.Error("'word' is all letters")
	}
	if HasOnlyLetters("w0rd") {
		t.Error("'w0rd' contains a digit")
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{13699, "13,699"},
		{172820, "172,820"},
		{9864100, "9,864,100"},
		{-4500, "-4,500"},
	}
	for _, tc := range testCases {
		if got := FormatWithCommas(tc.n); got != tc.expected {
			t.Errorf("FormatWithCommas(%d) = %q, expected %q", tc.n, got, tc.expected)
		}
	}
}

func TestResolveWordList(t *testing.T) {
	root := t.TempDir()
	workDir := filepath.Join(root, "work")
	execDir := filepath.Join(root, "bin")
	configDir := filepath.Join(root, "config")
	for _, dir := range []string{workDir, execDir, configDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(execDir, "words.txt"), []byte("cat\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "extra.txt"), []byte("dog\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pr := newPathResolverAt(execDir, workDir, configDir)

	got, err := pr.ResolveWordList("words.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(filepath.Join(execDir, "words.txt"), got); diff != "" {
		t.Errorf("resolved path mismatch (-want +got):\n%s", diff)
	}

	got, err = pr.ResolveWordList("extra.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(configDir, "extra.txt") {
		t.Errorf("expected config dir word list, got %s", got)
	}

	if _, err := pr.ResolveWordList("missing.txt"); err == nil {
		t.Error("expected an error for a missing word list")
	}
	if _, err := pr.ResolveWordList(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
