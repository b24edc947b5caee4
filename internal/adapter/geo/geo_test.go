package geo

import "testing"

func TestCandidateFromHash(t *testing.T) {
	fields := map[string]string{
		"active":        "1",
		"active_orders": "2",
		"rating":        "4.5",
		"name":          "Sari",
	}

	candidate, ok := candidateFromHash("w-1", 1.5, fields)
	if !ok {
		t.Fatal("expected candidate")
	}
	if candidate.ExternalID != "w-1" || candidate.Name != "Sari" {
		t.Fatalf("unexpected identity: %+v", candidate)
	}
	if candidate.ActiveOrders != 2 || candidate.Rating != 4.5 {
		t.Fatalf("unexpected annotations: %+v", candidate)
	}
	if candidate.DistanceMeters != 1500 {
		t.Fatalf("expected 1500m, got %d", candidate.DistanceMeters)
	}
}

func TestCandidateFromHashSkipsInactive(t *testing.T) {
	if _, ok := candidateFromHash("w-1", 1, map[string]string{"active": "0"}); ok {
		t.Fatal("inactive worker must be skipped")
	}
	if _, ok := candidateFromHash("w-1", 1, map[string]string{}); ok {
		t.Fatal("missing annotation hash must be skipped")
	}
}

func TestAreaCheckerContains(t *testing.T) {
	// Centered on Jakarta with a 30km radius.
	checker := NewAreaChecker(-6.2088, 106.8456, 30)

	if !checker.Contains(-6.2088, 106.8456) {
		t.Fatal("center must be inside")
	}
	if !checker.Contains(-6.3, 106.9) {
		t.Fatal("point ~15km away must be inside")
	}
	if checker.Contains(-7.7956, 110.3695) {
		t.Fatal("Yogyakarta is far outside a 30km Jakarta radius")
	}
}
