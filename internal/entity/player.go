package entity

const (
	HumanKind    = "human"
	ComputerKind = "computer"

	ComputerName = "ComputerBot"
)

type Player struct {
	Name string `json:"name"`
	Mark Marker `json:"mark"`
	Kind string `json:"kind"`
}

func NewHumanPlayer(name string, mark Marker) *Player {
	return &Player{
		Name: name,
		Mark: mark,
		Kind: HumanKind,
	}
}

func NewComputerPlayer(mark Marker) *Player {
	return &Player{
		Name: ComputerName,
		Mark: mark,
		Kind: ComputerKind,
	}
}

func (that *Player) IsBot() bool {
	return that.Kind == ComputerKind
}
