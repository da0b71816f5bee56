package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	// Same as folder names for consistency.
	MaxDocumentTitleLength = 255

	// MaxDocumentContentBytes caps document content size. Payloads above
	// this are rejected at validation, before reaching the store.
	MaxDocumentContentBytes = 5 << 20
)
