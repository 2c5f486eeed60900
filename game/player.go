package game

// Player identifies a side. Black always moves first.
type Player uint8

const (
	Black Player = iota
	White
)

func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

// Won maps a side to the outcome in which it wins.
func (p Player) Won() Outcome {
	if p == Black {
		return BlackWon
	}
	return WhiteWon
}

func (p Player) String() string {
	if p == Black {
		return "black"
	}
	return "white"
}

// Outcome classifies a game: still running, won by one side, or drawn.
type Outcome uint8

const (
	InProgress Outcome = iota
	BlackWon
	WhiteWon
	Tie
)

func (o Outcome) String() string {
	switch o {
	case BlackWon:
		return "black wins"
	case WhiteWon:
		return "white wins"
	case Tie:
		return "tie"
	default:
		return "in progress"
	}
}

// Cell is the occupancy of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	CellBlack
	CellWhite
)

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "B"
	case CellWhite:
		return "W"
	default:
		return "-"
	}
}
