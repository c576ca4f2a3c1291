package buildfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"poebuilds/lib/scrapers/poeforum"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeThreads struct {
	builds map[string]poeforum.Build
	calls  []string
}

var errMissing = errors.New("thread missing")

func (f *fakeThreads) FetchThread(_ context.Context, threadId string) (poeforum.Build, error) {
	f.calls = append(f.calls, threadId)
	build, ok := f.builds[threadId]
	if !ok {
		return poeforum.Build{}, errMissing
	}
	return build, nil
}

func newFakeThreads() *fakeThreads {
	return &fakeThreads{builds: map[string]poeforum.Build{
		"1": {Title: "First", Body: "body one"},
		"2": {Title: "Second", Body: "body\ntwo"},
	}}
}

func TestWriteOverwrites(t *testing.T) {
	fetcher := NewFetcher(newFakeThreads())
	filename := filepath.Join(t.TempDir(), "build.txt")
	require.NoError(t, os.WriteFile(filename, []byte("a much longer previous content"), 0644))

	require.NoError(t, fetcher.Write(context.Background(), "2", filename))

	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, "Second\nbody\ntwo", string(contents))
}

func TestWriteFailureLeavesFile(t *testing.T) {
	fetcher := NewFetcher(newFakeThreads())
	filename := filepath.Join(t.TempDir(), "build.txt")
	require.NoError(t, os.WriteFile(filename, []byte("keep"), 0644))

	err := fetcher.Write(context.Background(), "404", filename)
	require.ErrorIs(t, err, errMissing)

	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, "keep", string(contents))
}

func TestReadThreadRefs(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "builds.txt")
	require.NoError(t, os.WriteFile(filename, []byte("1 - First\n\n2 - Second - with dash\r\n"), 0644))

	refs, err := ReadThreadRefs(filename)
	require.NoError(t, err)
	require.Equal(t, []poeforum.ThreadRef{
		{Id: "1", Title: "First"},
		{Id: "2", Title: "Second - with dash"},
	}, refs)

	require.NoError(t, os.WriteFile(filename, []byte("1 - First\ngarbage\n"), 0644))
	_, err = ReadThreadRefs(filename)
	var parseErr *poeforum.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, err.Error(), ":2:")
}

func TestFetchAll(t *testing.T) {
	threads := newFakeThreads()
	fetcher := NewFetcher(threads)

	dir := t.TempDir()
	refsFile := filepath.Join(dir, "builds.txt")
	require.NoError(t, os.WriteFile(refsFile, []byte("1 - First\n2 - Second\n1 - First\n"), 0644))

	outDir := filepath.Join(dir, "corpus")
	written, err := fetcher.FetchAll(context.Background(), refsFile, outDir, rate.NewLimiter(rate.Inf, 1))
	require.NoError(t, err)
	require.Equal(t, 3, written)
	require.Equal(t, []string{"1", "2", "1"}, threads.calls)

	contents, err := os.ReadFile(BuildFilename(outDir, "1"))
	require.NoError(t, err)
	require.Equal(t, "First\nbody one", string(contents))
}

func TestFetchAllAborts(t *testing.T) {
	threads := newFakeThreads()
	fetcher := NewFetcher(threads)

	dir := t.TempDir()
	refsFile := filepath.Join(dir, "builds.txt")
	require.NoError(t, os.WriteFile(refsFile, []byte("1 - First\n9 - Gone\n2 - Second\n"), 0644))

	outDir := filepath.Join(dir, "corpus")
	written, err := fetcher.FetchAll(context.Background(), refsFile, outDir, nil)
	require.ErrorIs(t, err, errMissing)
	require.Equal(t, 1, written)
	require.Equal(t, []string{"1", "9"}, threads.calls)

	_, err = os.Stat(BuildFilename(outDir, "1"))
	require.NoError(t, err)
	_, err = os.Stat(BuildFilename(outDir, "2"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteAgainstForum(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forum/view-thread/77" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><body>
<h1 class="layoutBoxTitle">RF Chieftain</h1>
<table class="forumTable"><tr><td><div class="content">Spoiler
-----------
see https://poe.ninja/x</div></td></tr></table>
</body></html>`))
	}))
	defer srv.Close()

	client, err := poeforum.NewClient(poeforum.ClientOptions{BaseUrl: srv.URL + "/forum/"})
	require.NoError(t, err)
	fetcher := NewFetcher(client)

	filename := filepath.Join(t.TempDir(), "77.txt")
	require.NoError(t, fetcher.Write(context.Background(), "77", filename))

	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, "RF Chieftain\n\n-----\nsee <link>", string(contents))

	err = fetcher.Write(context.Background(), "78", filepath.Join(t.TempDir(), "78.txt"))
	var httpErr *poeforum.HTTPError
	require.ErrorAs(t, err, &httpErr)
}
