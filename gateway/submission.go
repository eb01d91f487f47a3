package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labelreader/labelkit/httpclient"
)

// Submissions is the artist-side CRUD surface.
type Submissions struct {
	client  *http.Client
	baseURL string
}

// NewSubmissions returns a gateway issuing calls through client — the
// session manager's authorized client — against the API root baseURL.
func NewSubmissions(client *http.Client, baseURL string) *Submissions {
	if client == nil {
		client = http.DefaultClient
	}
	return &Submissions{client: client, baseURL: baseURL}
}

// Create uploads a track: a multipart body with the audio file under
// "file" and the JSON-encoded metadata under "metadata".
func (g *Submissions) Create(ctx context.Context, meta SubmissionRequest, filename string, file io.Reader) (*Submission, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	if err := writer.WriteField("metadata", string(metaJSON)); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/artist/submissions", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var created Submission
	if err := httpclient.Do(g.client, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches one submission by ID.
func (g *Submissions) Get(ctx context.Context, id int64) (*Submission, error) {
	var sub Submission
	url := fmt.Sprintf("%s/artist/submissions/%d", g.baseURL, id)
	if err := httpclient.DoJSON(ctx, g.client, http.MethodGet, url, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// List fetches one page of the artist's own submissions.
func (g *Submissions) List(ctx context.Context, page, size int) (*SubmissionPage, error) {
	url := g.baseURL + "/artist/submissions?page=" + strconv.Itoa(page) + "&size=" + strconv.Itoa(size)
	var out SubmissionPage
	if err := httpclient.DoJSON(ctx, g.client, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one submission.
func (g *Submissions) Delete(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/artist/submissions/%d", g.baseURL, id)
	return httpclient.DoJSON(ctx, g.client, http.MethodDelete, url, nil, nil)
}

// Stats fetches the artist dashboard aggregates.
func (g *Submissions) Stats(ctx context.Context) (*ArtistStats, error) {
	var stats ArtistStats
	if err := httpclient.DoJSON(ctx, g.client, http.MethodGet, g.baseURL+"/artist/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
