package domain

// VideoPayload is the public video response: static metadata plus live
// counters and approved comments.
type VideoPayload struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	Poster       string    `json:"poster"`
	Views        int64     `json:"views"`
	Downloads    int64     `json:"downloads"`
	AppDownloads int64     `json:"appDownloads"`
	Comments     []Comment `json:"comments"`
	CommentCount int       `json:"commentCount"`
}
