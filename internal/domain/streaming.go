package domain

// StreamingSource is a video/audio feed (e.g. a door camera) addressable by number.
type StreamingSource struct {
	ID          string `json:"id" yaml:"id"`
	Number      string `json:"number" yaml:"number"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
	Open        bool   `json:"open" yaml:"open"`
}
