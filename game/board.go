package game

import (
	"fmt"
	"math/bits"
	"strings"
)

// Game is an Othello board held as one 64-bit occupancy mask per side,
// row-major from a1 (bit 0) to h8 (bit 63). It is a plain value: copying the
// struct clones the whole position.
type Game struct {
	BlackPieces uint64
	WhitePieces uint64

	// PlayerToMove is the side that moves next.
	PlayerToMove Player
	// PreviousMove is the play that produced this position.
	PreviousMove Play
}

// NewGame returns the canonical starting position: black on the d4/e5
// diagonal, white on e4/d5, black to move.
func NewGame() Game {
	return Game{
		BlackPieces:  1<<NewPlay(3, 3) | 1<<NewPlay(4, 4),
		WhitePieces:  1<<NewPlay(3, 4) | 1<<NewPlay(4, 3),
		PlayerToMove: Black,
	}
}

// Per-direction edge masks applied after every shift. Without them a disk on
// the h file would wrap onto the a file of a neighboring row (and vice
// versa). Directions 0-3 shift the bitfield down, 4-7 shift it up.
var shiftMasks = [8]uint64{
	0x7F7F7F7F7F7F7F7F, // right
	0x007F7F7F7F7F7F7F, // down-right
	0xFFFFFFFFFFFFFFFF, // down
	0x00FEFEFEFEFEFEFE, // down-left
	0xFEFEFEFEFEFEFEFE, // left
	0xFEFEFEFEFEFEFE00, // up-left
	0xFFFFFFFFFFFFFFFF, // up
	0x7F7F7F7F7F7F7F00, // up-right
}

var (
	lshifts = [8]uint{0, 0, 0, 0, 1, 9, 8, 7}
	rshifts = [8]uint{1, 9, 8, 7, 0, 0, 0, 0}
)

// shiftDisks moves every disk in the bitfield one step in the given
// direction, dropping disks that would cross a board edge.
func shiftDisks(disks uint64, dir int) uint64 {
	if dir < 4 {
		return (disks >> rshifts[dir]) & shiftMasks[dir]
	}
	return (disks << lshifts[dir]) & shiftMasks[dir]
}

// disks returns the mover's and the opponent's occupancy masks.
func (g *Game) disks() (mine, theirs uint64) {
	if g.PlayerToMove == Black {
		return g.BlackPieces, g.WhitePieces
	}
	return g.WhitePieces, g.BlackPieces
}

// GeneratePlaysBitfield computes the legal-move mask for the side to move.
// For each direction it walks runs of opponent disks adjacent to a friendly
// disk; empty cells one past such a run are legal landing squares. An 8-wide
// board bounds any run at 6 disks, hence one seed shift plus five
// accumulation shifts per direction.
func (g *Game) GeneratePlaysBitfield() uint64 {
	mine, theirs := g.disks()
	empty := ^(mine | theirs)

	if g.BlackPieces&g.WhitePieces != 0 {
		panic("disk sets must be disjoint")
	}

	var legal uint64
	for dir := 0; dir < 8; dir++ {
		x := shiftDisks(mine, dir) & theirs
		x |= shiftDisks(x, dir) & theirs
		x |= shiftDisks(x, dir) & theirs
		x |= shiftDisks(x, dir) & theirs
		x |= shiftDisks(x, dir) & theirs
		x |= shiftDisks(x, dir) & theirs
		legal |= shiftDisks(x, dir) & empty
	}
	return legal
}

// GeneratePlays decodes the legal-move mask into ascending plays. The result
// is never empty: a blocked side gets exactly [Skip].
func (g *Game) GeneratePlays() []Play {
	bitfield := g.GeneratePlaysBitfield()

	plays := make([]Play, 0, 20)
	for bf := bitfield; bf != 0; bf &= bf - 1 {
		plays = append(plays, Play(bits.TrailingZeros64(bf)))
	}

	if len(plays) == 0 {
		plays = append(plays, Skip)
	}
	return plays
}

// HasValidPlays reports whether the side to move has a capturing play.
func (g *Game) HasValidPlays() bool {
	return g.GeneratePlaysBitfield() != 0
}

// IsValidPlay reports whether the play's bit is set in the legal-move mask.
// Skip is not represented in the mask; its legality is implied by
// GeneratePlays returning [Skip].
func (g *Game) IsValidPlay(p Play) bool {
	return g.GeneratePlaysBitfield()&(1<<p) != 0
}

// MakePlay mutates the board with the given play and records it as
// PreviousMove. A Skip flips only the mover. Callers must pick plays from
// GeneratePlays: an occupied target or a value past the Skip sentinel
// panics, and an empty but non-capturing cell leaves an invalid position.
func (g *Game) MakePlay(p Play) {
	g.resolvePlay(p)
	g.PreviousMove = p
}

func (g *Game) resolvePlay(p Play) {
	if p > Skip {
		panic(fmt.Sprintf("play %d is beyond the board", p))
	}

	if p == Skip {
		g.PlayerToMove = g.PlayerToMove.Opponent()
		return
	}

	var mine, theirs *uint64
	if g.PlayerToMove == Black {
		mine, theirs = &g.BlackPieces, &g.WhitePieces
	} else {
		mine, theirs = &g.WhitePieces, &g.BlackPieces
	}

	newDisk := uint64(1) << p
	if (*mine|*theirs)&newDisk != 0 {
		panic(fmt.Sprintf("target cell %v is occupied", p))
	}

	*mine |= newDisk

	// Re-walk every direction's opponent run from the new disk; a run counts
	// as captured only when a friendly disk bounds its far end.
	var captured uint64
	for dir := 0; dir < 8; dir++ {
		x := shiftDisks(newDisk, dir) & *theirs
		x |= shiftDisks(x, dir) & *theirs
		x |= shiftDisks(x, dir) & *theirs
		x |= shiftDisks(x, dir) & *theirs
		x |= shiftDisks(x, dir) & *theirs
		x |= shiftDisks(x, dir) & *theirs

		if bounding := shiftDisks(x, dir) & *mine; bounding != 0 {
			captured |= x
		}
	}

	*mine ^= captured
	*theirs ^= captured

	g.PlayerToMove = g.PlayerToMove.Opponent()

	if *mine&*theirs != 0 {
		panic("disk sets must still be disjoint")
	}
}

// Counts returns the number of disks per side.
func (g *Game) Counts() (black, white int) {
	return bits.OnesCount64(g.BlackPieces), bits.OnesCount64(g.WhitePieces)
}

// Outcome classifies the position. The game counts as over only once every
// cell is occupied; a stalled position with empty cells still reads as
// InProgress here, and layers that can stall (rollouts, the engine loop)
// carry their own double-skip checks.
func (g *Game) Outcome() Outcome {
	if ^(g.BlackPieces|g.WhitePieces) != 0 {
		return InProgress
	}
	return CountWinner(g.BlackPieces, g.WhitePieces)
}

// CountWinner decides a finished game by comparing disk counts.
func CountWinner(blackPieces, whitePieces uint64) Outcome {
	black := bits.OnesCount64(blackPieces)
	white := bits.OnesCount64(whitePieces)
	switch {
	case black > white:
		return BlackWon
	case white > black:
		return WhiteWon
	default:
		return Tie
	}
}

// CellState returns the occupancy of one square, for rendering.
func (g *Game) CellState(row, col uint8) Cell {
	mask := uint64(1) << NewPlay(row, col)
	switch {
	case g.BlackPieces&mask != 0:
		return CellBlack
	case g.WhitePieces&mask != 0:
		return CellWhite
	default:
		return Empty
	}
}

func (g *Game) String() string {
	var sb strings.Builder
	for row := uint8(0); row < 8; row++ {
		for col := uint8(0); col < 8; col++ {
			sb.WriteString(g.CellState(row, col).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
