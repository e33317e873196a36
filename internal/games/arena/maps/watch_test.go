package maps

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestWatcherReportsMapFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeFile(t, dir, "ignored.md", "x")
	path := writeFile(t, dir, "fresh.txt", arenaText(16, 12))

	timeout := time.After(3 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if name == path {
				return
			}
			if !isMapFile(name) {
				t.Fatalf("got event for %s", name)
			}
		case <-timeout:
			t.Fatal("no event for fresh.txt")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("Events should be closed")
		}
	case <-time.After(time.Second):
		t.Error("Events not closed after Close")
	}
}

func TestFollowReloadsPool(t *testing.T) {
	dir := t.TempDir()
	p, _, err := Load(dir, classicSize)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Follow(ctx, w, dir, classicSize, log.New(io.Discard))

	writeFile(t, dir, "custom.txt", arenaText(16, 12))
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := p.Get("custom"); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("pool never picked up custom.txt")
}
