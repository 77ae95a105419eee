package entity

// SyncResult aggregates the outcome of one reconciliation run against an
// external table snapshot. TotalRows always equals
// Inserted + Updated + Skipped + BadData; Deleted is extra and only set by
// the deletion-enabled catalog variant.
type SyncResult struct {
	Entity        string `json:"entity"`
	TotalRows     int    `json:"total_rows"`
	Inserted      int    `json:"inserted"`
	Updated       int    `json:"updated"`
	Skipped       int    `json:"skipped"`
	BadData       int    `json:"bad_data"`
	Deleted       int    `json:"deleted"`
	InvalidReport string `json:"invalid_report,omitempty"`
}

// Consistent verifies the counter invariant.
func (r *SyncResult) Consistent() bool {
	return r.TotalRows == r.Inserted+r.Updated+r.Skipped+r.BadData
}
