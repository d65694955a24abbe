package team

import (
	"fmt"
	"strings"

	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
)

// Team is the provider-agnostic view of one club or franchise.
type Team struct {
	ID         string // canonical, sport-prefixed ("soccer-33")
	ProviderID string // provider-native identifier
	Name       string
	ShortName  string
	Sport      sport.Sport
	League     string
	Country    string
	Venue      string
	Founded    int
}

// CanonicalID derives the stable identifier for a (sport, provider id) pair.
func CanonicalID(s sport.Sport, providerID string) string {
	return fmt.Sprintf("%s-%s", s, strings.TrimSpace(providerID))
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if !t.Sport.Valid() {
		return fmt.Errorf("team sport %q is not supported", t.Sport)
	}

	return nil
}
