package config

// Defaults for the reconciliation heuristics and uploads
const (
	// DefaultSortLocale is the BCP 47 tag used to sort library titles
	DefaultSortLocale = "fr"

	// DefaultUploadMaxFileSize bounds each uploaded library export
	DefaultUploadMaxFileSize = 5 << 20
)
