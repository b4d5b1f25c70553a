package jokeapi

import (
	"github.com/cockroachdb/errors"
)

// Joke ID range served by the API.
const (
	MinJokeID = 1
	MaxJokeID = 451
)

// Joke is the record returned by the API.
// Setup and Punchline are pointers, so an absent field
// is not confused with an empty one.
type Joke struct {
	ID        int     `json:"id" yaml:"id"`
	Type      string  `json:"type" yaml:"type"`
	Setup     *string `json:"setup" yaml:"setup" validate:"required"`
	Punchline *string `json:"punchline" yaml:"punchline" validate:"required"`
}

// JokeType is the closed set of categories accepted by the by-type endpoint.
type JokeType string

const (
	General     JokeType = "general"
	KnockKnock  JokeType = "knock-knock"
	Programming JokeType = "programming"
	Dad         JokeType = "dad"
)

// JokeTypes returns all supported joke types.
func JokeTypes() []JokeType {
	return []JokeType{General, KnockKnock, Programming, Dad}
}

// Valid returns true if t is one of the supported joke types.
func (t JokeType) Valid() bool {
	switch t {
	case General, KnockKnock, Programming, Dad:
		return true
	}
	return false
}

func (t JokeType) String() string {
	return string(t)
}

// ParseJokeType returns JokeType for s,
// or ErrInvalidArgument if s is not a supported type.
func ParseJokeType(s string) (JokeType, error) {
	t := JokeType(s)
	if !t.Valid() {
		return "", errors.Wrapf(ErrInvalidArgument, "unsupported joke type %q, expected one of %v", s, JokeTypes())
	}
	return t, nil
}

// ValidateID returns ErrInvalidArgument if id is outside of [MinJokeID, MaxJokeID].
func ValidateID(id int) error {
	if id < MinJokeID || id > MaxJokeID {
		return errors.Wrapf(ErrInvalidArgument, "joke id %d is out of range [%d, %d]", id, MinJokeID, MaxJokeID)
	}
	return nil
}
