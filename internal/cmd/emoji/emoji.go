// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

// Symbol constants for CLI status lines.
const (
	// Success represents successful completion of an operation.
	Success = "✓"

	// Error represents a failed or aborted operation.
	Error = "✗"

	// Warning represents a completed operation with problems.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"
)
