// Package buffer abstracts the host's document store. The engine never reads
// or writes documents directly; it asks a Provider for buffer text by an
// opaque identity string and hands updated text back the same way.
package buffer

// Provider supplies and accepts buffer text for a document identity. Identity
// is opaque to the engine; it is the host's notion of "which document".
type Provider interface {
	// GetText returns the current text of the identified buffer. The second
	// return value is false when the buffer does not exist.
	GetText(identity string) (string, bool)

	// SetText replaces the full text of the identified buffer, creating it
	// if absent.
	SetText(identity string, text string) error
}
