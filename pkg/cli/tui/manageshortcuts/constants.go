package manageshortcuts

// Step constants for the manage shortcuts state machine
const (
	StepList = iota
	StepEdit
	StepDeleteConfirm
	StepResetConfirm
)

// Edit form fields
const (
	FieldName = iota
	FieldURL
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80
