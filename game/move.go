package game

import "fmt"

// Play is a cell index on the 8x8 board, row-major. The value Skip is the
// forfeit move a player makes when no capturing play exists.
type Play uint8

// Skip is one past the last cell index.
const Skip Play = 64

// NewPlay builds a Play from board coordinates. Coordinates outside [0,8)
// are a programming error and panic.
func NewPlay(row, col uint8) Play {
	if row >= 8 || col >= 8 {
		panic(fmt.Sprintf("play out of range: row=%d col=%d", row, col))
	}
	return Play(row*8 + col)
}

// Row returns the board row of a non-skip play.
func (p Play) Row() uint8 {
	return uint8(p) / 8
}

// Col returns the board column of a non-skip play.
func (p Play) Col() uint8 {
	return uint8(p) % 8
}

func (p Play) String() string {
	if p == Skip {
		return "skip"
	}
	// a1..h8, columns as letters
	return fmt.Sprintf("%c%d", 'a'+rune(p.Col()), p.Row()+1)
}
