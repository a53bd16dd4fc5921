package domain

import "errors"

// Sentinel errors for the domain layer. Components wrap them with context using
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is.
var (
	// ErrValidation marks input rejected before any state change, such as blank
	// credential fields or slider values outside their bounds.
	ErrValidation = errors.New("validation failed")

	// ErrAuth marks a sign-in attempt with an unknown username or wrong password.
	ErrAuth = errors.New("invalid username or password")

	// ErrStoreCorruption marks a credential file that cannot be read as a
	// two-column username/password table.
	ErrStoreCorruption = errors.New("credential store is corrupt")

	// ErrDataset marks a business dataset that is missing or lacks an expected column.
	ErrDataset = errors.New("dataset unavailable")

	// ErrFit marks training data the least-squares solve cannot handle.
	ErrFit = errors.New("model fit failed")

	// ErrIO marks a failure to write an output artifact such as the PDF report.
	ErrIO = errors.New("i/o failure")
)
