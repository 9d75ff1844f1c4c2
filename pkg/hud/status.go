package hud

import (
	"strconv"
	"strings"
)

// StatusKey identifies one built-in condition.
type StatusKey string

const (
	StatusBleeding   StatusKey = "bleeding"
	StatusTooCold    StatusKey = "toocold"
	StatusTooHot     StatusKey = "toohot"
	StatusComfort    StatusKey = "comfort"
	StatusStarving   StatusKey = "starving"
	StatusDehydrated StatusKey = "dehydrated"
	StatusRadiation  StatusKey = "radiation"
	StatusWet        StatusKey = "wet"
	StatusDrowning   StatusKey = "drowning"
	StatusBuildPriv  StatusKey = "buildpriv"
	StatusUpkeep     StatusKey = "upkeep"
)

// Token is one active built-in condition as it is reported for a tick.
// Only the drowning token carries a value ("drowning 0.5").
type Token string

// Key returns the condition part of the token.
func (t Token) Key() StatusKey {
	if i := strings.IndexByte(string(t), ' '); i >= 0 {
		return StatusKey(t[:i])
	}
	return StatusKey(t)
}

// Privilege describes the building privilege zone the user stands in.
type Privilege struct {
	Authorized bool
}

// Vitals is the read-only snapshot of host state the evaluator looks at.
type Vitals struct {
	Bleeding    float64
	Temperature float64
	Comfort     float64
	Calories    float64
	Hydration   float64
	Radiation   float64
	Wetness     float64
	Oxygen      float64

	// Privilege is nil when no building privilege covers the user.
	Privilege *Privilege
}

// User is the subject of a tick. Vitals reports false when the user
// reference is no longer valid (disconnected, entity removed).
type User interface {
	ID() string
	Vitals() (Vitals, bool)
}

// Thresholds are the trigger points for the built-in checks.
type Thresholds struct {
	Cold       float64 // temperature below
	Hot        float64 // temperature above
	Starving   float64 // calories below
	Dehydrated float64 // hydration below
	Wet        float64 // wetness at or above
	Oxygen     float64 // oxygen below
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Cold:       5,
		Hot:        40,
		Starving:   40,
		Dehydrated: 25,
		Wet:        0.02,
		Oxygen:     1,
	}
}

// Evaluate returns the active built-in tokens in display order.
func Evaluate(v Vitals, th Thresholds) []Token {
	tokens := make([]Token, 0, 4)
	if v.Bleeding > 0 {
		tokens = append(tokens, Token(StatusBleeding))
	}
	if v.Temperature < th.Cold {
		tokens = append(tokens, Token(StatusTooCold))
	}
	if v.Temperature > th.Hot {
		tokens = append(tokens, Token(StatusTooHot))
	}
	if v.Comfort > 0 {
		tokens = append(tokens, Token(StatusComfort))
	}
	if v.Calories < th.Starving {
		tokens = append(tokens, Token(StatusStarving))
	}
	if v.Hydration < th.Dehydrated {
		tokens = append(tokens, Token(StatusDehydrated))
	}
	if v.Radiation > 0 {
		tokens = append(tokens, Token(StatusRadiation))
	}
	if v.Wetness >= th.Wet {
		tokens = append(tokens, Token(StatusWet))
	}
	if v.Oxygen < th.Oxygen {
		tokens = append(tokens, Token(string(StatusDrowning)+" "+strconv.FormatFloat(v.Oxygen, 'g', -1, 64)))
	}
	// buildpriv and upkeep always travel together
	if v.Privilege != nil && v.Privilege.Authorized {
		tokens = append(tokens, Token(StatusBuildPriv), Token(StatusUpkeep))
	}
	return tokens
}
