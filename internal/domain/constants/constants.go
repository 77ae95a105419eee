package constants

// Pagination and display.
const (
	// DefaultInlineRowsPerPage rows per page in admin inline lists.
	DefaultInlineRowsPerPage = 3

	// SearchResultsLimit max carpets rendered for one search.
	SearchResultsLimit = 50

	// MaxMessageLength Telegram text message limit in runes.
	MaxMessageLength = 4096
)

// Broadcast.
const (
	// BroadcastBatchSize users notified concurrently per batch.
	BroadcastBatchSize = 30

	// BroadcastBatchPauseSeconds pause between batches to stay under
	// Telegram rate limits.
	BroadcastBatchPauseSeconds = 1
)

// External sources.
const (
	// FetchMaxRetries attempts for one spreadsheet fetch.
	FetchMaxRetries = 3

	// FetchRetryDelaySeconds pause between fetch attempts.
	FetchRetryDelaySeconds = 2
)

// Reconciliation.
const (
	// PriceTolerance absolute float tolerance below which a stored price
	// and a sheet price count as equal.
	PriceTolerance = 1e-6

	// HeaderRowNumber the header occupies row 1; data starts at row 2.
	HeaderRowNumber = 1

	// FirstDataRowNumber row number reported for the first data row.
	FirstDataRowNumber = HeaderRowNumber + 1
)
