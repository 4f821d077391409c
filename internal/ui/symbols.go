package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Artifact written
	SymbolFail     = "✗" // Operation failed
	SymbolWarning  = "⚠" // Non-fatal problem
	SymbolPending  = "○" // Not yet started
	SymbolComplete = "●" // Step done
)
