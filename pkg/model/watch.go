package model

// WatchState stores the persistent state of a folder watcher.
type WatchState struct {
	WatchPath     string `json:"watchPath"`     // Absolute path being watched
	ProjectKey    string `json:"projectKey"`    // Destination project key
	ProjectName   string `json:"projectName"`   // Destination project display name
	DebounceMs    int    `json:"debounceMs"`    // Debounce delay in milliseconds
	StartedAt     int64  `json:"startedAt"`     // Unix timestamp (seconds)
	LastProcessed int64  `json:"lastProcessed"` // Unix timestamp (seconds)
}
