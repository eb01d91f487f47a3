package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelreader/labelkit/httpclient"
)

func TestSubmissionsCreateSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/artist/submissions", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "track.wav", header.Filename)
		assert.Equal(t, "audio-bytes", string(data))

		var meta SubmissionRequest
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("metadata")), &meta))
		assert.Equal(t, "Midnight", meta.Title)

		_ = json.NewEncoder(w).Encode(Submission{ID: 10, Title: meta.Title, ArtistName: meta.ArtistName})
	}))
	defer srv.Close()

	g := NewSubmissions(srv.Client(), srv.URL)
	created, err := g.Create(context.Background(),
		SubmissionRequest{Title: "Midnight", ArtistName: "Nova", Genre: "techno"},
		"track.wav", strings.NewReader("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
}

func TestSubmissionsListAndDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/artist/submissions":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "10", r.URL.Query().Get("size"))
			_ = json.NewEncoder(w).Encode(SubmissionPage{
				Content:       []Submission{{ID: 1, Title: "A"}},
				TotalElements: 21, TotalPages: 3, Number: 2, Size: 10,
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/artist/submissions/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	g := NewSubmissions(srv.Client(), srv.URL)
	ctx := context.Background()

	page, err := g.List(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(21), page.TotalElements)

	require.NoError(t, g.Delete(ctx, 1))
}

func TestSubmissionsStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/artist/stats", r.URL.Path)
		_ = json.NewEncoder(w).Encode(ArtistStats{TotalSubmissions: 4, SigningRequests: 1})
	}))
	defer srv.Close()

	stats, err := NewSubmissions(srv.Client(), srv.URL).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalSubmissions)
	assert.Equal(t, int64(1), stats.SigningRequests)
}

func TestDiscoveryDiscoverBuildsFilterQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/label/discover", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "techno", q.Get("genre"))
		assert.Equal(t, "PENDING", q.Get("status"))
		assert.Equal(t, "0", q.Get("page"))
		assert.Equal(t, "20", q.Get("size"))
		_ = json.NewEncoder(w).Encode(SubmissionPage{Content: []Submission{{ID: 5}}})
	}))
	defer srv.Close()

	page, err := NewDiscovery(srv.Client(), srv.URL).Discover(context.Background(),
		DiscoverOptions{Genre: "techno", Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
}

func TestDiscoveryRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/label/ratings", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("submissionId"))

		var req RatingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(Rating{ID: 77, SubmissionID: 5, Rating: req.Rating, IsInterested: req.IsInterested})
	}))
	defer srv.Close()

	rating, err := NewDiscovery(srv.Client(), srv.URL).Rate(context.Background(), 5,
		RatingRequest{Rating: 4, IsInterested: true})
	require.NoError(t, err)
	assert.Equal(t, int64(77), rating.ID)
	assert.Equal(t, 4, rating.Rating)
	assert.True(t, rating.IsInterested)
}

func TestGatewayErrorsSurfaceVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"labels only"}`))
	}))
	defer srv.Close()

	_, err := NewDiscovery(srv.Client(), srv.URL).Discover(context.Background(), DiscoverOptions{})
	require.Error(t, err)

	var apiErr *httpclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.JSONEq(t, `{"message":"labels only"}`, string(apiErr.Body))
	assert.ErrorIs(t, err, httpclient.ErrForbidden)
}
