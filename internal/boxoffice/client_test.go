package boxoffice_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"summerpool/internal/boxoffice"
	"summerpool/internal/services"
)

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "pool-test/1.0" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		var name string
		switch r.URL.Path {
		case "/cumulative":
			name = "cumulative.html"
		case "/yearly":
			name = "top-grossing.html"
		default:
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Errorf("read fixture: %v", err)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewRequiresLocations(t *testing.T) {
	if _, err := boxoffice.New("", "x"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := boxoffice.New("x", " "); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestClientFetchesBothCharts(t *testing.T) {
	server := fixtureServer(t)
	client, err := boxoffice.New(server.URL+"/cumulative", server.URL+"/yearly",
		boxoffice.WithUserAgent("pool-test/1.0"),
		boxoffice.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rows, err := client.FetchMovieGrossRows(context.Background())
	if err != nil {
		t.Fatalf("FetchMovieGrossRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 gross rows, got %d", len(rows))
	}
	records, err := client.FetchMovieDistributorRows(context.Background())
	if err != nil {
		t.Fatalf("FetchMovieDistributorRows: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	stats := client.Stats()
	if stats.Rows != 11 || stats.Skipped != 3 {
		t.Fatalf("unexpected accumulated stats %+v", stats)
	}
}

func TestClientHTTPErrorIsTransient(t *testing.T) {
	server := fixtureServer(t)
	client, err := boxoffice.New(server.URL+"/missing", server.URL+"/yearly", boxoffice.WithUserAgent("pool-test/1.0"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.FetchMovieGrossRows(context.Background())
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestClientReadsSnapshots(t *testing.T) {
	client, err := boxoffice.New(filepath.Join("testdata", "cumulative.html"), "file://"+filepath.Join("testdata", "top-grossing.html"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if rows, err := client.FetchMovieGrossRows(context.Background()); err != nil || len(rows) != 4 {
		t.Fatalf("snapshot gross rows: %d %v", len(rows), err)
	}
	if records, err := client.FetchMovieDistributorRows(context.Background()); err != nil || len(records) != 4 {
		t.Fatalf("snapshot records: %d %v", len(records), err)
	}
}

func TestClientWrongPageIsValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.html")
	if err := os.WriteFile(path, []byte("<html><body><p>maintenance</p></body></html>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	client, err := boxoffice.New(path, path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.FetchMovieGrossRows(context.Background())
	if !errors.Is(err, services.ErrValidation) || !errors.Is(err, boxoffice.ErrTableNotFound) {
		t.Fatalf("expected validation + table-not-found, got %v", err)
	}
}
