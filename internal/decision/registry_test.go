package decision

import "testing"

func TestRegistryOrderIsStable(t *testing.T) {
	want := []string{
		"HIGH_TICKET",
		"VELOCITY",
		"LOCATION_MISMATCH",
		"HIGH_IP_DISTANCE",
		"CHARGEBACK_HISTORY",
		"RAIL_LIMIT",
		"ONLINE_VERIFICATION",
		"LOYALTY_BOOST",
	}
	rules := NewRegistry().Rules()
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i, r := range rules {
		if r.ID() != want[i] {
			t.Fatalf("rule %d: expected %s, got %s", i, want[i], r.ID())
		}
	}
}
