package termpose

// DuplicatePolicy controls map decoding when a key appears more than once.
type DuplicatePolicy int

const (
	LastWins         DuplicatePolicy = iota // Keep the value of the last occurrence.
	RejectDuplicates                        // Fail with CodeDuplicateKey at the repeated key.
)

func (p DuplicatePolicy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case RejectDuplicates:
		return "reject"
	default:
		return "unknown"
	}
}
