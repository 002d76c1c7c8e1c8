package entity

// Mark is the sign a player puts on the board.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

// Toggle returns the opposite mark. Anything that is not X becomes X.
func (that Mark) Toggle() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// IsValid reports whether the mark is one a board can hold.
func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) String() string {
	return string(that)
}
