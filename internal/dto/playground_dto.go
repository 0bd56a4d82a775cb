package dto

// SnapshotRequest carries the playground autosave payload.
type SnapshotRequest struct {
	Source string `json:"source"`
}

// SnapshotResponse returns the last autosaved playground source.
type SnapshotResponse struct {
	Source string `json:"source"`
}
