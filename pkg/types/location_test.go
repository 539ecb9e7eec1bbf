package types

import "testing"

func TestLocationMerge(t *testing.T) {
	base := Location{State: strPtr("Kerala"), City: strPtr("Kochi")}
	merged := base.Merge(Location{City: strPtr("  Thrissur "), Country: strPtr("India")})

	if *merged.State != "Kerala" {
		t.Fatalf("expected state untouched, got %q", *merged.State)
	}
	if *merged.City != "Thrissur" {
		t.Fatalf("expected trimmed city, got %q", *merged.City)
	}
	if *merged.Country != "India" {
		t.Fatalf("expected country set, got %q", *merged.Country)
	}
	if *base.City != "Kochi" {
		t.Fatal("merge must not mutate the receiver")
	}
}

func TestLocationIsZero(t *testing.T) {
	if !(Location{}).IsZero() {
		t.Fatal("empty location should be zero")
	}
	if !(Location{City: strPtr("  ")}).IsZero() {
		t.Fatal("blank parts should count as zero")
	}
	if (Location{Country: strPtr("India")}).IsZero() {
		t.Fatal("location with a country is not zero")
	}
}

func strPtr(v string) *string {
	return &v
}
