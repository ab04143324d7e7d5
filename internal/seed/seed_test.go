package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultDocument(t *testing.T) {
	d := Default()

	if got := len(d.Brain.Notes); got != 4 {
		t.Fatalf("notes = %d, want 4", got)
	}
	if got := len(d.Brain.Categories); got != 4 {
		t.Fatalf("categories = %d, want 4", got)
	}
	if d.Brain.Categories[0].ID != "all" || d.Brain.Categories[0].Count != 24 {
		t.Errorf("first category = %+v", d.Brain.Categories[0])
	}
	if got := len(d.Planner.Tasks); got != 4 {
		t.Errorf("tasks = %d, want 4", got)
	}
	if !d.Planner.Tasks[3].Completed {
		t.Error("gym workout should start completed")
	}
	if d.Planner.Tasks[0].Location != "Conference Room A" {
		t.Errorf("location = %q", d.Planner.Tasks[0].Location)
	}
	if got := len(d.Chat.Languages); got != 6 {
		t.Errorf("languages = %d, want 6", got)
	}
	if d.Learn.Courses[1].Title != "AI & Machine Learning Fundamentals" {
		t.Errorf("course title = %q", d.Learn.Courses[1].Title)
	}
	if d.Family.Members[0].Location != "San Francisco, CA" {
		t.Errorf("member location = %q", d.Family.Members[0].Location)
	}
	if got := len(d.Create.Palette); got != 12 {
		t.Errorf("palette = %d, want 12", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := Default()
	c := d.Clone()

	c.Brain.Notes[0].Tags[0] = "changed"
	c.Planner.Tasks[0].Completed = true

	if d.Brain.Notes[0].Tags[0] == "changed" {
		t.Error("clone shares note tags with original")
	}
	if d.Planner.Tasks[0].Completed {
		t.Error("clone shares tasks with original")
	}
}

func TestParseRejectsEmptyCategories(t *testing.T) {
	if _, err := Parse([]byte("brain:\n  notes: []\n")); err == nil {
		t.Fatal("expected error for missing categories")
	}
	if _, err := Parse([]byte("::not yaml")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, "Only Note")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Brain.Notes[0].Title; got != "Only Note" {
		t.Fatalf("title = %q", got)
	}

	writeSeed(t, path, "Second")
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Brain.Notes[0].Title; got != "Second" {
		t.Errorf("title after reload = %q", got)
	}

	if err := os.WriteFile(path, []byte("::broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Error("expected reload error")
	}
	if got := s.Snapshot().Brain.Notes[0].Title; got != "Second" {
		t.Errorf("failed reload replaced data: %q", got)
	}
}

func TestStoreVersionTracksContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, "Same")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	v1 := s.Version()
	if len(v1) != 64 {
		t.Fatalf("version = %q, want hex sha256", v1)
	}

	writeSeed(t, path, "Same")
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Version() != v1 {
		t.Error("identical content changed the version")
	}

	writeSeed(t, path, "Different")
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Version() == v1 {
		t.Error("new content kept the old version")
	}
}

func TestStoreEmbedded(t *testing.T) {
	s, err := NewStore("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != "" {
		t.Errorf("path = %q", s.Path())
	}
	if s.Version() == "" {
		t.Error("embedded store has no version")
	}
	if err := s.Reload(); err != nil {
		t.Errorf("reload of embedded store: %v", err)
	}
	a, b := s.Snapshot(), s.Snapshot()
	a.Brain.Notes[0].Title = "mutated"
	if b.Brain.Notes[0].Title == "mutated" {
		t.Error("snapshots share state")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeSeed(t, path, "Before")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	done := make(chan struct{})
	go func() {
		_ = Watch(ctx, s, logger, func() { reloads.Add(1) })
		close(done)
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	writeSeed(t, path, "After")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if s.Snapshot().Brain.Notes[0].Title == "After" {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if got := s.Snapshot().Brain.Notes[0].Title; got != "After" {
		t.Fatalf("title = %q, want After", got)
	}
	if reloads.Load() == 0 {
		t.Error("reload callback not called")
	}

	cancel()
	<-done
}

func writeSeed(t *testing.T, path, title string) {
	t.Helper()
	doc := "brain:\n  categories:\n    - { id: all, name: All Notes, count: 1, color: blue }\n" +
		"  notes:\n    - { id: 1, title: " + title + ", body: b, category: work }\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}
