package notify

// Notification is one entry in the user's notification feed.
type Notification struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	LinkURL   string `json:"linkUrl,omitempty"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// Page is the paged envelope returned by the notification list endpoint.
type Page struct {
	Content       []Notification `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
}

// ListOptions filters the notification list. A zero value lists the first
// page at the poller's default page size.
type ListOptions struct {
	Page       int
	Size       int
	UnreadOnly bool
}
