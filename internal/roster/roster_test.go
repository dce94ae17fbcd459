package roster

import (
	"reflect"
	"testing"
)

func TestAPIName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{name: "D.Va", want: "dVa"},
		{name: "d.va", want: "dVa"},
		{name: "Wrecking Ball", want: "wreckingBall"},
		{name: "Soldier:76", want: "soldier76"},
		{name: "tracer", want: "tracer"},
	}
	for _, tc := range cases {
		got, ok := APIName(tc.name)
		if !ok {
			t.Fatalf("expected %s to resolve", tc.name)
		}
		if got != tc.want {
			t.Fatalf("api name for %s: got %s, want %s", tc.name, got, tc.want)
		}
	}
	if _, ok := APIName("Overlord"); ok {
		t.Fatalf("expected unknown hero to be rejected")
	}
}

func TestDisplayNameAcceptsBothForms(t *testing.T) {
	for _, name := range []string{"dVa", "D.Va", "d.va"} {
		got, ok := DisplayName(name)
		if !ok || got != "D.Va" {
			t.Fatalf("display name for %s: got %s ok=%v", name, got, ok)
		}
	}
}

func TestColorAndRole(t *testing.T) {
	if got := Color("Tracer"); got != "#D89442" {
		t.Fatalf("unexpected Tracer color: %s", got)
	}
	if got := Color("Overlord"); got != "" {
		t.Fatalf("expected empty color for unknown hero, got %s", got)
	}
	if got := Role("Mercy"); got != "Support" {
		t.Fatalf("unexpected Mercy role: %s", got)
	}
}

func TestRoles(t *testing.T) {
	want := []string{RoleAll, "Damage", "Support", "Tank"}
	if got := Roles(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected roles: %v", got)
	}
}

func TestHeroesByRole(t *testing.T) {
	all := HeroesByRole(RoleAll)
	if len(all) != len(Heroes()) {
		t.Fatalf("expected All to match every hero, got %d", len(all))
	}
	for _, name := range HeroesByRole("Support") {
		if Role(name) != "Support" {
			t.Fatalf("hero %s leaked into the Support filter", name)
		}
	}
}
