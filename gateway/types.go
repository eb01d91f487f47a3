package gateway

// Submission is one uploaded track as the server reports it.
type Submission struct {
	ID               int64   `json:"id"`
	ArtistID         int64   `json:"artistId"`
	Title            string  `json:"title"`
	ArtistName       string  `json:"artistName"`
	Genre            string  `json:"genre,omitempty"`
	SubGenre         string  `json:"subGenre,omitempty"`
	BPM              int     `json:"bpm,omitempty"`
	KeySignature     string  `json:"keySignature,omitempty"`
	FilePath         string  `json:"filePath"`
	FileSizeBytes    int64   `json:"fileSizeBytes"`
	DurationSeconds  int     `json:"durationSeconds,omitempty"`
	Description      string  `json:"description,omitempty"`
	Lyrics           string  `json:"lyrics,omitempty"`
	IsPublished      bool    `json:"isPublished"`
	SubmissionStatus string  `json:"submissionStatus"`
	PlayCount        int64   `json:"playCount"`
	AverageRating    float64 `json:"averageRating"`
	TotalRatings     int64   `json:"totalRatings"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// SubmissionRequest is the metadata half of an upload.
type SubmissionRequest struct {
	Title        string `json:"title"`
	ArtistName   string `json:"artistName"`
	Genre        string `json:"genre,omitempty"`
	SubGenre     string `json:"subGenre,omitempty"`
	BPM          int    `json:"bpm,omitempty"`
	KeySignature string `json:"keySignature,omitempty"`
	Description  string `json:"description,omitempty"`
	Lyrics       string `json:"lyrics,omitempty"`
}

// SubmissionPage is the paged envelope for submission listings.
type SubmissionPage struct {
	Content       []Submission `json:"content"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	Number        int          `json:"number"`
	Size          int          `json:"size"`
}

// ArtistStats is the aggregate dashboard summary for an artist.
type ArtistStats struct {
	TotalSubmissions    int64   `json:"totalSubmissions"`
	TotalPlays          int64   `json:"totalPlays"`
	AverageRating       float64 `json:"averageRating"`
	PendingSubmissions  int64   `json:"pendingSubmissions"`
	ApprovedSubmissions int64   `json:"approvedSubmissions"`
	RejectedSubmissions int64   `json:"rejectedSubmissions"`
	SigningRequests     int64   `json:"signingRequests"`
}

// Rating is a label's review of a submission.
type Rating struct {
	ID                      int64  `json:"id"`
	SubmissionID            int64  `json:"submissionId"`
	LabelID                 int64  `json:"labelId"`
	Rating                  int    `json:"rating"`
	ReviewText              string `json:"reviewText,omitempty"`
	IsInterested            bool   `json:"isInterested"`
	ListenedDurationSeconds int    `json:"listenedDurationSeconds,omitempty"`
	CreatedAt               string `json:"createdAt"`
	UpdatedAt               string `json:"updatedAt"`
}

// RatingRequest is the payload for rating a submission.
type RatingRequest struct {
	Rating                  int    `json:"rating"`
	ReviewText              string `json:"reviewText,omitempty"`
	IsInterested            bool   `json:"isInterested"`
	ListenedDurationSeconds int    `json:"listenedDurationSeconds,omitempty"`
}

// RatingPage is the paged envelope for a label's own ratings.
type RatingPage struct {
	Content []Rating `json:"content"`
}
