package concset

var (
	// ErrInvalidOptions is wrapped by option validation failures.
	ErrInvalidOptions = errorsNew("concset: invalid options")

	// ErrRetryBudgetExhausted is carried by the panic raised when an
	// optimistic operation fails validation more times than its budget
	// allows. Under normal contention this cannot happen.
	ErrRetryBudgetExhausted = errorsNew("concset: optimistic retry budget exhausted")

	// ErrCorrupted is wrapped by Check when a structural invariant does not hold.
	ErrCorrupted = errorsNew("concset: structure corrupted")
)

// lightweight local errors.New; errors.Is works on identity
func errorsNew(s string) error { return &strErr{s} }

type strErr struct{ s string }

func (e *strErr) Error() string { return e.s }
