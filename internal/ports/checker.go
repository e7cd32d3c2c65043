package ports

import "github.com/stoik/spoofguard/internal/domain"

// Checker analyzes free text for spoofed links
// Implemented by *detection.Detector. Implementations must be safe for
// concurrent use and must not perform I/O.
type Checker interface {
	Analyze(text string) domain.SpoofingVerdict
}
