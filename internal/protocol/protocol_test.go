package protocol

import "testing"

func TestCatalogIDsCoversCatalogInOrder(t *testing.T) {
	ids := CatalogIDs()

	if len(ids) != len(Catalog) {
		t.Fatalf("expected %d ids, got %d", len(Catalog), len(ids))
	}
	seen := map[ID]bool{}
	for _, id := range ids {
		if _, ok := Catalog[id]; !ok {
			t.Errorf("id %s not in the catalog", id)
		}
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}

	// Regulation options come before the tests so gate output reads
	// intervention-first.
	if ids[0] != BoxBreathing {
		t.Errorf("expected box_breathing first, got %s", ids[0])
	}
}

func TestCatalogIDsReturnsACopy(t *testing.T) {
	a := CatalogIDs()
	a[0] = "mutated"
	b := CatalogIDs()
	if b[0] != BoxBreathing {
		t.Fatal("CatalogIDs leaked the backing slice")
	}
}

func TestCognitiveTestsCarryContraindications(t *testing.T) {
	for _, id := range []ID{ReactionTest, MemoryTest, FocusTest} {
		e := Catalog[id]
		if e.Category != CategoryTest {
			t.Errorf("%s: expected the test category, got %s", id, e.Category)
		}
		if len(e.Contraindications) == 0 {
			t.Errorf("%s: expected contraindication tags", id)
		}
	}
}
