package main

// Exit codes
const (
	ExitSuccess     = 0 // Success, end of input or interrupt
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Missing or invalid configuration
	ExitTimeout     = 3 // No input within the input timeout
	ExitSearchError = 4 // Aladin search failed (search command)
)
