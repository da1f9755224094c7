package models

// Media types as derived from upload MIME types.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeFile  = "file"
)

// Media is an uploaded file attached to a news item or an elon.
type Media struct {
	ID   int    `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}
