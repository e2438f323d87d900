package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
)

// recorder collects handler calls.
type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(_ context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func newTestWatcher(t *testing.T, root string, handler Handler, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := NewWatcher(root, config.DefaultConfig(), handler, WithDebounce(debounce), WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestNewWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		debounce time.Duration
		want     time.Duration
	}{
		{"default debounce", 0, DefaultDebounce},
		{"custom debounce", time.Second, time.Second},
		{"negative debounce defaults", -time.Second, DefaultDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWatcher(t, tmpDir, nil, tt.debounce)
			if w.debounce != tt.want {
				t.Errorf("debounce = %v, want %v", w.debounce, tt.want)
			}
			if w.root != tmpDir {
				t.Errorf("root = %v, want %v", w.root, tmpDir)
			}
		})
	}
}

func TestNewWatcherNilConfig(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil, nil)
	require.NoError(t, err)
	defer w.Stop()
	assert.NotNil(t, w.config)
}

func TestWatcher_handleEvent(t *testing.T) {
	tmpDir := t.TempDir()
	javaFile := filepath.Join(tmpDir, "src", "App.java")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  int
	}{
		{"write java", fsnotify.Event{Name: javaFile, Op: fsnotify.Write}, 1},
		{"create java", fsnotify.Event{Name: javaFile, Op: fsnotify.Create}, 1},
		{"upper case extension", fsnotify.Event{Name: filepath.Join(tmpDir, "Old.JAVA"), Op: fsnotify.Write}, 1},
		{"remove ignored", fsnotify.Event{Name: javaFile, Op: fsnotify.Remove}, 0},
		{"chmod ignored", fsnotify.Event{Name: javaFile, Op: fsnotify.Chmod}, 0},
		{"non java ignored", fsnotify.Event{Name: filepath.Join(tmpDir, "notes.txt"), Op: fsnotify.Write}, 0},
		{"excluded dir", fsnotify.Event{Name: filepath.Join(tmpDir, "target", "Gen.java"), Op: fsnotify.Write}, 0},
		{"excluded pattern", fsnotify.Event{Name: filepath.Join(tmpDir, "src", "module-info.java"), Op: fsnotify.Write}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWatcher(t, tmpDir, nil, 0)
			w.handleEvent(tt.event)
			if got := w.Pending(); got != tt.want {
				t.Errorf("Pending() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWatcher_handleEvent_NewDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, nil, 0)

	sub := filepath.Join(tmpDir, "pkg", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	w.handleEvent(fsnotify.Event{Name: filepath.Join(tmpDir, "pkg"), Op: fsnotify.Create})

	assert.Contains(t, w.WatchedDirs(), sub)
	assert.Equal(t, 0, w.Pending())
}

func TestWatcher_takeReady(t *testing.T) {
	w := newTestWatcher(t, t.TempDir(), nil, time.Second)
	now := time.Now()

	w.pending["B.java"] = now.Add(-2 * time.Second)
	w.pending["A.java"] = now.Add(-3 * time.Second)
	w.pending["C.java"] = now

	ready := w.takeReady(now)
	assert.Equal(t, []string{"A.java", "B.java"}, ready)
	assert.Equal(t, 1, w.Pending())
}

func TestWatcher_processPending(t *testing.T) {
	rec := &recorder{}
	w := newTestWatcher(t, t.TempDir(), rec.handle, 10*time.Millisecond)
	w.pending["Old.java"] = time.Now().Add(-time.Second)

	w.processPending(context.Background())

	assert.Equal(t, []string{"Old.java"}, rec.calls())
	assert.Equal(t, 0, w.Pending())
}

func TestWatcher_processPending_NoHandler(t *testing.T) {
	w := newTestWatcher(t, t.TempDir(), nil, 10*time.Millisecond)
	w.pending["Old.java"] = time.Now().Add(-time.Second)

	w.processPending(context.Background())
	assert.Equal(t, 0, w.Pending())
}

func TestWatcher_processPending_Cancelled(t *testing.T) {
	rec := &recorder{}
	w := newTestWatcher(t, t.TempDir(), rec.handle, 10*time.Millisecond)
	w.pending["Old.java"] = time.Now().Add(-time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.processPending(ctx)

	assert.Empty(t, rec.calls())
}

func TestWatcher_Start_Context(t *testing.T) {
	w := newTestWatcher(t, t.TempDir(), nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestWatcher_Start_FileChange(t *testing.T) {
	tmpDir := t.TempDir()
	rec := &recorder{}
	w := newTestWatcher(t, tmpDir, rec.handle, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	require.Eventually(t, func() bool {
		return len(w.WatchedDirs()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	javaFile := filepath.Join(tmpDir, "App.java")
	require.NoError(t, os.WriteFile(javaFile, []byte("public class App {}\n"), 0o644))

	require.Eventually(t, func() bool {
		return len(rec.calls()) > 0
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, javaFile, rec.calls()[0])
}

func TestWatcher_Start_ExcludedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "target", "classes"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "src"), 0o755))

	w := newTestWatcher(t, tmpDir, nil, 0)
	require.NoError(t, w.addTree(tmpDir))

	watched := w.WatchedDirs()
	assert.Contains(t, watched, filepath.Join(tmpDir, "src"))
	for _, path := range watched {
		if filepath.Base(path) == "target" || filepath.Base(path) == "classes" {
			t.Errorf("%s should not be watched", path)
		}
	}
}

func TestWatcher_ConcurrentHandleEvent(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, nil, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := filepath.Join(tmpDir, string(rune('A'+i%10))+".java")
			w.handleEvent(fsnotify.Event{Name: name, Op: fsnotify.Write})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, w.Pending())
}
