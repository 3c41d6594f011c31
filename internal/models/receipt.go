package models

// Receipt is an attachment already persisted by the backend.
type Receipt struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

// PendingReceipt is a local file queued for upload once the transaction
// itself has been saved.
type PendingReceipt struct {
	LocalID string
	Path    string
}
