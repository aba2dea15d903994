package config

const (
	// DefaultDatabasePath is the default path of the entry collection file.
	DefaultDatabasePath = "./data.json"

	// DefaultEntriesDir is the default root for per-entry asset directories.
	DefaultEntriesDir = "./entries"

	// DefaultConvertCommand is the external EPUB-to-PDF conversion tool.
	DefaultConvertCommand = "ebook-convert"
)
