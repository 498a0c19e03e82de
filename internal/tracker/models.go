package tracker

// DeleteResult summarizes a bulk-delete operation
type DeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
