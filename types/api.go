package types

import "time"

// AudioFile describes one playable file in the audio root
type AudioFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// ErrorResponse is the JSON body of every failed API request
type ErrorResponse struct {
	Error string `json:"error"`
}

// LibraryUpdate is pushed to websocket subscribers when the audio root changes
type LibraryUpdate struct {
	Files     []AudioFile `json:"files"`
	Count     int         `json:"count"`
	Timestamp time.Time   `json:"timestamp"`
}
