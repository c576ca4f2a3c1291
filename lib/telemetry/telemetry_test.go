package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestSetupForTestingWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cleanup := SetupForTesting(t, "test:telemetry-noconfig")
	cleanup()

	// second setup for the same service is a no-op
	SetupForTesting(t, "test:telemetry-noconfig")()
}

func TestShutdownEmpty(t *testing.T) {
	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}

func TestInstrumentResty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := resty.New().SetBaseURL(srv.URL)
	InstrumentResty(client, "test")

	res, err := client.R().Get("/")
	require.NoError(t, err)
	require.Equal(t, "ok", res.String())

	res, err = client.R().Get("/missing")
	require.NoError(t, err)
	require.True(t, res.IsError())
}
