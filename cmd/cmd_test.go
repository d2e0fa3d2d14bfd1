package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/lilyscore/lilypond"
	"github.com/jsphweid/lilyscore/midi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minuetYAML = filepath.Join("..", "scorefile", "testdata", "minuet.yaml")

func TestRenderOptions(t *testing.T) {
	opts, err := renderOptions(true, "nl", "2.22.1")
	require.NoError(t, err)
	assert.Equal(t, lilypond.Absolute, opts.Mode)
	assert.Equal(t, lilypond.Nederlands, opts.Language)
	assert.Equal(t, "2.22.1", opts.Version)

	opts, err = renderOptions(false, "english", "")
	require.NoError(t, err)
	assert.Equal(t, lilypond.DefaultOptions(), opts)

	_, err = renderOptions(false, "latin", "")
	assert.Error(t, err)
}

func TestRenderToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "minuet.ly")
	require.NoError(t, renderToFile(minuetYAML, out, lilypond.DefaultOptions()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `\version "2.24.0"`))
	assert.Contains(t, string(data), "d'4 g,8 a8 b8 c8 |")
}

func TestRenderFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"voices":[{"measures":[[{"note":"c","duration":5}]]}]}`), 0o644))

	_, _, err := renderFile(bad, lilypond.DefaultOptions())
	assert.ErrorIs(t, err, lilypond.ErrInvalidDuration)
	assert.ErrorContains(t, err, "could not render")

	_, _, err = renderFile(filepath.Join(dir, "missing.yaml"), lilypond.DefaultOptions())
	assert.Error(t, err)
}

func TestExportMidiAndInspect(t *testing.T) {
	out := filepath.Join(t.TempDir(), "minuet.mid")
	require.NoError(t, exportMidi(minuetYAML, out, midi.DefaultExportOptions()))

	var buf bytes.Buffer
	require.NoError(t, inspect(&buf, out))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "tracks: 3", lines[0])
	// 7 melody notes and 4 bass keys
	assert.Len(t, lines[1:], 11)
	assert.Contains(t, buf.String(), "key  74")
}

func TestWatchRerendersOnChange(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "score.yaml")
	out := filepath.Join(dir, "score.ly")

	write := func(title string, mtime time.Time) {
		doc := "header: {title: " + title + "}\nvoices:\n  - measures:\n      - - {note: c}\n"
		require.NoError(t, os.WriteFile(in, []byte(doc), 0o644))
		require.NoError(t, os.Chtimes(in, mtime, mtime))
	}
	contains := func(s string) func() bool {
		return func() bool {
			data, err := os.ReadFile(out)
			return err == nil && strings.Contains(string(data), s)
		}
	}

	now := time.Now()
	write("First", now)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, in, out, lilypond.DefaultOptions(), 10*time.Millisecond, 20*time.Millisecond)
	}()

	require.Eventually(t, contains(`title = "First"`), 2*time.Second, 10*time.Millisecond)

	write("Second", now.Add(time.Minute))
	require.Eventually(t, contains(`title = "Second"`), 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
