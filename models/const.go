package models

// Bounds enforced on recipe submissions. Amounts and cooking times are
// small positive integers in the canonical API contract.
const (
	MinAmount      = 1
	MaxAmount      = 32000
	MinCookingTime = 1
	MaxCookingTime = 32000
)
