package domain

// Collar types. Purely descriptive: blue-collar operational roles vs
// white-collar office roles.
const (
	CollarBlue  = "blue"
	CollarWhite = "white"
)

// Interview outcomes. A candidate with no outcome yet carries NULL.
const (
	ResultPositive = "positive"
	ResultNegative = "negative"
)

func ValidCollarType(s string) bool {
	return s == CollarBlue || s == CollarWhite
}

func ValidResult(s string) bool {
	return s == ResultPositive || s == ResultNegative
}
