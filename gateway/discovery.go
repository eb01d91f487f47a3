package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labelreader/labelkit/httpclient"
)

// Discovery is the label-side surface: browsing unsigned submissions and
// rating them.
type Discovery struct {
	client  *http.Client
	baseURL string
}

// NewDiscovery returns a gateway issuing calls through client — the
// session manager's authorized client — against the API root baseURL.
func NewDiscovery(client *http.Client, baseURL string) *Discovery {
	if client == nil {
		client = http.DefaultClient
	}
	return &Discovery{client: client, baseURL: baseURL}
}

// DiscoverOptions filters the discovery feed. Zero values are omitted
// from the query.
type DiscoverOptions struct {
	Page   int
	Size   int
	Genre  string
	Status string
}

// Discover fetches one page of submissions open for review.
func (g *Discovery) Discover(ctx context.Context, opts DiscoverOptions) (*SubmissionPage, error) {
	size := opts.Size
	if size <= 0 {
		size = 20
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("size", strconv.Itoa(size))
	if opts.Genre != "" {
		q.Set("genre", opts.Genre)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}

	var page SubmissionPage
	if err := httpclient.DoJSON(ctx, g.client, http.MethodGet, g.baseURL+"/label/discover?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches one submission as seen from the label side.
func (g *Discovery) Get(ctx context.Context, id int64) (*Submission, error) {
	var sub Submission
	endpoint := fmt.Sprintf("%s/label/submissions/%d", g.baseURL, id)
	if err := httpclient.DoJSON(ctx, g.client, http.MethodGet, endpoint, nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Rate submits a rating for a submission and returns the stored rating.
func (g *Discovery) Rate(ctx context.Context, submissionID int64, req RatingRequest) (*Rating, error) {
	var rating Rating
	endpoint := fmt.Sprintf("%s/label/ratings?submissionId=%d", g.baseURL, submissionID)
	if err := httpclient.DoJSON(ctx, g.client, http.MethodPost, endpoint, req, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// Rating fetches this label's existing rating for a submission.
func (g *Discovery) Rating(ctx context.Context, submissionID int64) (*Rating, error) {
	var rating Rating
	endpoint := fmt.Sprintf("%s/label/submissions/%d/rating", g.baseURL, submissionID)
	if err := httpclient.DoJSON(ctx, g.client, http.MethodGet, endpoint, nil, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// MyRatings fetches one page of the label's own ratings.
func (g *Discovery) MyRatings(ctx context.Context, page, size int) (*RatingPage, error) {
	if size <= 0 {
		size = 10
	}
	endpoint := g.baseURL + "/label/ratings?page=" + strconv.Itoa(page) + "&size=" + strconv.Itoa(size)
	var out RatingPage
	if err := httpclient.DoJSON(ctx, g.client, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
