package asset

import (
	"archive/zip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchFunc func(ctx context.Context, src string, progress func(float64)) (string, error)

func (f fetchFunc) Fetch(ctx context.Context, src string, progress func(float64)) (string, error) {
	return f(ctx, src, progress)
}

// collect blocks until the request finishes and returns its events.
func collect(t *testing.T, req *Request) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-req.Events():
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("request did not finish")
		}
	}
}

func newLoader(f Fetcher) *Loader {
	log, _ := test.NewNullLogger()
	return NewLoader(f, log)
}

func TestLoadSuccess(t *testing.T) {
	l := newLoader(fetchFunc(func(_ context.Context, src string, progress func(float64)) (string, error) {
		progress(0.5)
		progress(1.5)
		return "/cache/" + src, nil
	}))
	events := collect(t, l.Load(context.Background(), "eagle.glb"))
	require.Len(t, events, 3)
	assert.Equal(t, Event{Kind: Progress, Fraction: 0.5}, events[0])
	assert.Equal(t, Event{Kind: Progress, Fraction: 1}, events[1], "fractions are clamped")
	assert.Equal(t, Event{Kind: Loaded, Path: "/cache/eagle.glb"}, events[2])
}

func TestLoadFailure(t *testing.T) {
	boom := errors.New("network down")
	l := newLoader(fetchFunc(func(context.Context, string, func(float64)) (string, error) {
		return "", boom
	}))
	events := collect(t, l.Load(context.Background(), "eagle.glb"))
	require.Len(t, events, 1)
	assert.Equal(t, Failed, events[0].Kind)
	assert.ErrorIs(t, events[0].Err, boom)
}

func TestLoadCancel(t *testing.T) {
	started := make(chan struct{})
	l := newLoader(fetchFunc(func(ctx context.Context, _ string, _ func(float64)) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	}))
	req := l.Load(context.Background(), "slow.glb")
	<-started
	req.Cancel()
	events := collect(t, req)
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].Err, context.Canceled)
}

func TestProgressFloodKeepsTerminalEvent(t *testing.T) {
	l := newLoader(fetchFunc(func(_ context.Context, _ string, progress func(float64)) (string, error) {
		for i := 0; i < 1000; i++ {
			progress(float64(i) / 1000)
		}
		return "done.glb", nil
	}))
	req := l.Load(context.Background(), "x")
	events := collect(t, req)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.True(t, last.Terminal())
	assert.Equal(t, "done.glb", last.Path)
}

func TestCompletedAndPoll(t *testing.T) {
	req := Completed("x", Event{Kind: Progress, Fraction: 0.25}, Event{Kind: Failed, Err: os.ErrNotExist})
	var kinds []Kind
	done := req.Poll(func(ev Event) { kinds = append(kinds, ev.Kind) })
	assert.True(t, done)
	assert.Equal(t, []Kind{Progress, Failed}, kinds)
	assert.NotPanics(t, req.Cancel)
}

func TestPollPending(t *testing.T) {
	block := make(chan struct{})
	l := newLoader(fetchFunc(func(context.Context, string, func(float64)) (string, error) {
		<-block
		return "a.glb", nil
	}))
	req := l.Load(context.Background(), "a.glb")
	assert.False(t, req.Poll(func(Event) {}))
	close(block)
	events := collect(t, req)
	assert.Equal(t, Loaded, events[len(events)-1].Kind)
}

func TestFileFetcherLocal(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "eagle.glb")
	require.NoError(t, os.WriteFile(model, []byte("glTF"), 0644))

	f := &FileFetcher{CacheDir: t.TempDir()}
	var got float64
	path, err := f.Fetch(context.Background(), model, func(p float64) { got = p })
	require.NoError(t, err)
	assert.Equal(t, model, path)
	assert.Equal(t, 1.0, got)

	_, err = f.Fetch(context.Background(), filepath.Join(dir, "missing.glb"), func(float64) {})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = f.Fetch(context.Background(), dir, func(float64) {})
	assert.Error(t, err)
}

func TestFileFetcherRemoteZip(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	zf, err := os.Create(bundle)
	require.NoError(t, err)
	zw := zip.NewWriter(zf)
	w, err := zw.Create("eagle/source/eagle.glb")
	require.NoError(t, err)
	_, err = w.Write([]byte("glTF"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, zf.Close())
	data, err := os.ReadFile(bundle)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	cache := t.TempDir()
	f := &FileFetcher{CacheDir: cache}
	var last float64
	path, err := f.Fetch(context.Background(), srv.URL+"/models/eagle.zip", func(p float64) { last = p })
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "bundles", "eagle", "eagle", "source", "eagle.glb"), path)
	assert.Equal(t, 1.0, last)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
