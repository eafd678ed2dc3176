package filter

// Channel identifies one of the three color planes of a ChannelImage.
type Channel int

const (
	Red   Channel = 0
	Green Channel = 1
	Blue  Channel = 2
)

// NumChannels is the number of color planes the engine operates on.
const NumChannels = 3

// Channels lists the planes in their fixed processing order.
var Channels = [NumChannels]Channel{Red, Green, Blue}

// Valid reports whether c names one of the three planes.
func (c Channel) Valid() bool {
	return c >= Red && c <= Blue
}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}
