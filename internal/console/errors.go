package console

import "errors"

// Console errors. Each is reported at the dispatch boundary and the session
// continues.
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUsage           = errors.New("usage")
	ErrScriptRecursion = errors.New("script is already running")
	ErrScriptDepth     = errors.New("script nesting too deep")
)

// errEndOfInput ends the session when the interactive stream is exhausted.
var errEndOfInput = errors.New("end of input")

// errReadInput wraps a failure of the interactive stream.
var errReadInput = errors.New("reading input")
