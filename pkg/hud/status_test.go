package hud

import (
	"reflect"
	"testing"
)

func TestEvaluateNormalVitalsHasNoTokens(t *testing.T) {
	if got := Evaluate(normalVitals(), DefaultThresholds()); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
}

func TestEvaluateDrowningCarriesOxygen(t *testing.T) {
	v := normalVitals()
	v.Oxygen = 0.5

	got := Evaluate(v, DefaultThresholds())
	want := []Token{"drowning 0.5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got[0].Key() != StatusDrowning {
		t.Fatalf("expected drowning key, got %q", got[0].Key())
	}
}

func TestEvaluateOrderIsFixed(t *testing.T) {
	v := Vitals{
		Bleeding:    1,
		Temperature: 2, // too cold
		Comfort:     0.3,
		Calories:    10,
		Hydration:   5,
		Radiation:   4,
		Wetness:     0.5,
		Oxygen:      0.25,
		Privilege:   &Privilege{Authorized: true},
	}
	want := []Token{
		"bleeding", "toocold", "comfort", "starving", "dehydrated",
		"radiation", "wet", "drowning 0.25", "buildpriv", "upkeep",
	}
	for i := 0; i < 3; i++ {
		if got := Evaluate(v, DefaultThresholds()); !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: expected %v, got %v", i, want, got)
		}
	}

	v.Temperature = 45
	got := Evaluate(v, DefaultThresholds())
	if got[1] != Token(StatusTooHot) {
		t.Fatalf("expected toohot in second slot, got %v", got)
	}
}

func TestEvaluatePrivilegeTokensArePaired(t *testing.T) {
	cases := []struct {
		name string
		priv *Privilege
		want int
	}{
		{"no privilege", nil, 0},
		{"not authorized", &Privilege{Authorized: false}, 0},
		{"authorized", &Privilege{Authorized: true}, 2},
	}
	for _, tc := range cases {
		v := normalVitals()
		v.Privilege = tc.priv
		got := Evaluate(v, DefaultThresholds())
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d tokens, got %v", tc.name, tc.want, got)
		}
		if tc.want == 2 && (got[0] != Token(StatusBuildPriv) || got[1] != Token(StatusUpkeep)) {
			t.Fatalf("%s: expected buildpriv then upkeep, got %v", tc.name, got)
		}
	}
}

func TestEvaluateWetThresholdIsInclusive(t *testing.T) {
	v := normalVitals()
	v.Wetness = 0.02
	got := Evaluate(v, DefaultThresholds())
	if len(got) != 1 || got[0] != Token(StatusWet) {
		t.Fatalf("expected wet at threshold, got %v", got)
	}
}
