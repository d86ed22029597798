package game

// Direction is one of the four movement commands.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Step returns the tile offset for one move in d.
func (d Direction) Step() (dRow, dCol int) {
	switch d {
	case North:
		return 1, 0
	case South:
		return -1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "nowhere"
	}
}
