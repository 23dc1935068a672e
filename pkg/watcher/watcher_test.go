package watcher

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/graphsketch/pkg/config"
)

func TestDebouncerBatchesBurst(t *testing.T) {
	input := make(chan ChangeEvent)
	d := NewDebouncer(input, 30*time.Millisecond, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a.toml"}}
	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a.toml"}}
	input <- ChangeEvent{Type: ChangeTypeRemove, Paths: []string{"a.toml"}}
	input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a.toml"}}

	select {
	case ev := <-d.Output():
		if ev.Type != ChangeTypeWrite {
			t.Errorf("Expected the latest type to win, got %s", ev.Type)
		}
		if !reflect.DeepEqual(ev.Paths, []string{"a.toml"}) {
			t.Errorf("Expected deduplicated paths, got %v", ev.Paths)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for debounced event")
	}

	select {
	case ev := <-d.Output():
		t.Errorf("Expected a single batch, got another: %+v", ev)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncerMaxWait(t *testing.T) {
	input := make(chan ChangeEvent)
	d := NewDebouncer(input, 50*time.Millisecond, 120*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Keep the quiet period from ever expiring
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			select {
			case input <- ChangeEvent{Type: ChangeTypeWrite, Paths: []string{"a.toml"}}:
			case <-ctx.Done():
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
	}()

	select {
	case <-d.Output():
	case <-time.After(300 * time.Millisecond):
		t.Fatal("Max wait did not force a flush")
	}
	cancel()
	<-done
}

func TestDebouncerFlushesOnClose(t *testing.T) {
	input := make(chan ChangeEvent, 1)
	d := NewDebouncer(input, time.Hour, time.Hour)
	d.Start(context.Background())

	input <- ChangeEvent{Type: ChangeTypeRemove, Paths: []string{"b.toml"}}
	close(input)

	ev, ok := <-d.Output()
	if !ok || ev.Type != ChangeTypeRemove {
		t.Fatalf("Expected pending batch on close, got %+v, %v", ev, ok)
	}
	if _, ok := <-d.Output(); ok {
		t.Error("Expected output to close after input closes")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want ChangeType
		ok   bool
	}{
		{fsnotify.Write, ChangeTypeWrite, true},
		{fsnotify.Create, ChangeTypeWrite, true},
		{fsnotify.Remove, ChangeTypeRemove, true},
		{fsnotify.Rename, ChangeTypeRemove, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := classify(tt.op)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("classify(%s) = %s, %v; want %s, %v", tt.op, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFileWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphsketch.toml")
	other := filepath.Join(dir, "other.toml")

	fw, err := NewFileWatcher(path)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := fw.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(other, []byte("radius = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("radius = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-fw.Events():
		if ev.Type != ChangeTypeWrite {
			t.Errorf("Expected write, got %s", ev.Type)
		}
		for _, p := range ev.Paths {
			if filepath.Base(p) != "graphsketch.toml" {
				t.Errorf("Unrelated file reported: %s", p)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for file event")
	}

	cancel()
	for range fw.Events() {
	}
}

func TestAnalyzeChanges(t *testing.T) {
	old := &config.Config{Port: 8080, Radius: 10, HitShape: "box", Loops: "twice"}

	updated := *old
	updated.Radius = 12
	updated.HitShape = "circle"
	updated.Loops = "once"

	a := AnalyzeChanges(old, &updated)
	if !reflect.DeepEqual(a.Live, []string{"radius", "hit_shape"}) {
		t.Errorf("Unexpected live changes %v", a.Live)
	}
	if !reflect.DeepEqual(a.Restart, []string{"loops"}) {
		t.Errorf("Unexpected restart changes %v", a.Restart)
	}
	if !a.NeedApply() {
		t.Error("Expected NeedApply")
	}

	// "square" is an alias for the box shape
	same := *old
	same.HitShape = "square"
	if a := AnalyzeChanges(old, &same); a.NeedApply() || len(a.Restart) != 0 {
		t.Errorf("Expected no changes, got %+v", a)
	}
}
