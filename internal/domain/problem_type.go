package domain

// ProblemType is a canonical category of infrastructure issue, unique by
// case-insensitive name.
type ProblemType struct {
	ID          int64
	Name        string
	Description string
}
