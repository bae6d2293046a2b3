package game

// The arena is a fixed line of eight cells. The challenger starts on the
// leftmost cell and the opponent on the rightmost one.
const (
	ArenaMinCell = 0
	ArenaMaxCell = 7
	ArenaCells   = ArenaMaxCell - ArenaMinCell + 1
)

// ArenaPhase is the battle state machine phase.
type ArenaPhase string

const (
	PhaseSetup    ArenaPhase = "setup"
	PhaseMoving   ArenaPhase = "moving"
	PhaseCombat   ArenaPhase = "combat"
	PhaseFinished ArenaPhase = "finished"
)

// ClampCell bounds a cell index to the arena line. Out-of-bounds movement is
// defined behavior (clamped), never an error.
func ClampCell(cell int) int {
	if cell < ArenaMinCell {
		return ArenaMinCell
	}
	if cell > ArenaMaxCell {
		return ArenaMaxCell
	}
	return cell
}

// Distance returns the cell distance between two positions.
func Distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Direction returns the unit step from `from` toward `to` (0 when equal).
func Direction(from, to int) int {
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	default:
		return 0
	}
}

// ComputePhase derives the moving/combat phase from the two positions and
// effective ranges: combat as soon as either side can reach the other.
// Finished and setup are owned by the state machine, never produced here.
func ComputePhase(posA, posB, rangeA, rangeB int) ArenaPhase {
	d := Distance(posA, posB)
	if d <= rangeA || d <= rangeB {
		return PhaseCombat
	}
	return PhaseMoving
}
