package domain

// Artifact is a processed photo as stored.
type Artifact struct {
	Name     string
	URL      string
	Size     int
	Bytes    int64
	Original string
}

// UploadResponse is the body returned for a successful upload. Size is the
// edge length of the square output in pixels.
type UploadResponse struct {
	URL  string `json:"url"`
	Size int    `json:"size"`
}
