package driver

import (
	"path/filepath"
	"testing"
)

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"b.cs", "a.CS", "sub/c.go", "obj/d.cs", "gen/e.g.cs", "readme.md"} {
		writeFile(t, filepath.Join(dir, p), "")
	}
	got, err := ListFiles(dir, []string{".cs", ".go"}, []string{"obj", "*.g.cs"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.CS"),
		filepath.Join(dir, "b.cs"),
		filepath.Join(dir, "sub", "c.go"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNearestSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "StyleCop.JSON"), "{}")
	writeFile(t, filepath.Join(dir, "a", "b", "X.cs"), "")

	got, ok := NearestSettings(filepath.Join(dir, "a", "b", "X.cs"))
	if !ok {
		t.Fatal("settings not found")
	}
	if filepath.Base(got) != "StyleCop.JSON" {
		t.Fatalf("got %s", got)
	}
}

func TestCandidatesDeduplicate(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "stylecop.json")
	got := Candidates(p, "", filepath.Join(dir, ".", "stylecop.json"), filepath.Join(dir, "other.json"))
	if len(got) != 2 {
		t.Fatalf("got %d candidates", len(got))
	}
	if got[0].Path() != p {
		t.Fatalf("first candidate = %s", got[0].Path())
	}
}
