package entity

const (
	MarkerX Marker = "X"
	MarkerO Marker = "O"

	EmptyCell Marker = ""
)

// Marker - symbol a player puts on the board.
type Marker string

// Opponent - returns the other marker. Anything that is not X or O has no opponent.
func (that Marker) Opponent() Marker {
	switch that {
	case MarkerX:
		return MarkerO
	case MarkerO:
		return MarkerX
	default:
		return EmptyCell
	}
}

func (that Marker) IsValid() bool {
	return that == MarkerX || that == MarkerO
}

type random interface {
	Intn(n int) int
}

// DrawMarkers - randomly splits X and O between the human (first) and the computer (second).
func DrawMarkers(rng random) (Marker, Marker) {
	if rng.Intn(2) == 0 {
		return MarkerX, MarkerO
	}
	return MarkerO, MarkerX
}
