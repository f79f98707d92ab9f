package risk

// ErrInvalid reports a parameter that failed validation.
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }
