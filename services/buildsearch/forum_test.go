package buildsearch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const listingTemplate = `<html><body><table class="forumTable">
<tr><td><div class="thread_title"><div class="title"><a href="/forum/view-thread/%[1]d01">page %[1]d first</a></div></div></td></tr>
<tr><td><div class="thread_title"><div class="title"><a href="/forum/view-thread/%[1]d02">page %[1]d second</a></div></div></td></tr>
</table></body></html>`

// newListingServer serves two listing pages for the duelist section.
func newListingServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	for page := 1; page <= 2; page++ {
		body := fmt.Sprintf(listingTemplate, page)
		mux.HandleFunc(fmt.Sprintf("/forum/view-forum/40/page/%d", page), func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
