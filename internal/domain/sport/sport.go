package sport

import (
	"fmt"
	"strings"
)

// Sport identifies one supported sport. The set is closed; adding a sport
// means adding a constant here and registering one adapter for it.
type Sport string

const (
	Soccer     Sport = "soccer"
	Basketball Sport = "basketball"
	Hockey     Sport = "hockey"
	Football   Sport = "football" // gridiron / american football
)

func All() []Sport {
	return []Sport{Soccer, Basketball, Hockey, Football}
}

func Parse(value string) (Sport, error) {
	switch Sport(strings.ToLower(strings.TrimSpace(value))) {
	case Soccer:
		return Soccer, nil
	case Basketball:
		return Basketball, nil
	case Hockey:
		return Hockey, nil
	case Football:
		return Football, nil
	default:
		return "", fmt.Errorf("unknown sport %q", value)
	}
}

func (s Sport) String() string {
	return string(s)
}

func (s Sport) Valid() bool {
	switch s {
	case Soccer, Basketball, Hockey, Football:
		return true
	default:
		return false
	}
}
