package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "zipcull.dev/pkg/zipcull/internal/model"
)

func TestLocalArchiveFS_Walk_FindsArchivesRecursively(t *testing.T) {
	dir := t.TempDir()

	mustWrite(t, filepath.Join(dir, "game_en.zip"))
	mustWrite(t, filepath.Join(dir, "GAME_JP.ZIP"))
	mustWrite(t, filepath.Join(dir, "readme.txt"))

	if err := os.MkdirAll(filepath.Join(dir, "nested", "deep"), 0o750); err != nil {
		t.Fatal(err)
	}

	mustWrite(t, filepath.Join(dir, "nested", "deep", "game_cn.zip"))

	fs := NewLocalArchiveFS()

	archives, err := fs.Walk(m.Path(dir), []string{".zip"})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(archives) != 3 {
		t.Fatalf("Walk() found %d archives, want 3: %v", len(archives), archives)
	}

	found := make(map[m.Path]bool)
	for _, a := range archives {
		found[a] = true
	}

	for _, want := range []string{
		filepath.Join(dir, "game_en.zip"),
		filepath.Join(dir, "GAME_JP.ZIP"),
		filepath.Join(dir, "nested", "deep", "game_cn.zip"),
	} {
		if !found[m.Path(want)] {
			t.Errorf("Walk() missing %s", want)
		}
	}
}

func TestLocalArchiveFS_Walk_MissingRoot(t *testing.T) {
	fs := NewLocalArchiveFS()

	_, err := fs.Walk(m.Path(filepath.Join(t.TempDir(), "nope")), []string{".zip"})
	if err == nil {
		t.Fatal("Walk() expected error for missing root")
	}
}

func TestLocalArchiveFS_Walk_DotRootKeepsPrefix(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "game_en.zip"))

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	defer func() { _ = os.Chdir(wd) }()

	fs := NewLocalArchiveFS()

	archives, err := fs.Walk(".", []string{".zip"})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if len(archives) != 1 || archives[0] != "./game_en.zip" {
		t.Fatalf("Walk() = %v, want [./game_en.zip]", archives)
	}
}

func TestLocalArchiveFS_Remove(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "game_jp.zip")
	mustWrite(t, target)

	fs := NewLocalArchiveFS()

	if err := fs.Remove(m.Path(target)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove()")
	}
}

func TestHasArchiveExt(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"game.zip", true},
		{"GAME.ZIP", true},
		{"game.Zip", true},
		{"game.zip.part", false},
		{"game.rar", false},
		{"zip", false},
	}

	for _, tc := range cases {
		if got := hasArchiveExt(tc.path, []string{".zip"}); got != tc.want {
			t.Errorf("hasArchiveExt(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()

	if err := os.WriteFile(path, []byte("stub"), 0o600); err != nil {
		t.Fatal(err)
	}
}
