package validation

const (
	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxNameLength       = 120
	MaxMethodNameLength = 80
	MaxNotesLength      = 500

	// Percent fees above this are almost certainly a typo.
	MaxPercentFee = 100
)
