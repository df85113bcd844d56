package models

// Download status
const (
	StatusDownloaded = "downloaded"
	StatusFailed     = "failed"
)

// DownloadLog represents a log message from the downloader
type DownloadLog struct {
	RunID  string      `json:"runId"`
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Data   ConfigEntry `json:"data"`
	Path   string      `json:"path,omitempty"`
	Bytes  int         `json:"bytes"`
}
