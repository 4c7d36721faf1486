package fts

import "testing"

func TestSearcher_SetAttributeRejectsDuplicateID(t *testing.T) {
	s := NewSearcher()
	if !s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0}) {
		t.Fatalf("first SetAttribute(1, ...) should succeed")
	}
	if s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 1}) {
		t.Fatalf("SetAttribute on an already-registered id should return false")
	}
}

func TestSearcher_InsertDocAttributeUnknownID(t *testing.T) {
	s := NewSearcher()
	if err := s.InsertDocAttribute(1, 99, "hello"); err != ErrAttributeNotFound {
		t.Fatalf("InsertDocAttribute with an unregistered id = %v, want ErrAttributeNotFound", err)
	}
}

func TestSearcher_QueryFindsEqualMatch(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0})
	s.InsertDocAttribute(10, 1, "red mountain bicycle")
	s.InsertDocAttribute(11, 1, "blue city scooter")

	sq := NewSearchQuery(NewWordQuery("bicycle", OpEqual, Required, 0))
	res := s.Query(sq)

	if res.Len() != 1 || !res.ContainsDoc(10) {
		t.Fatalf("Query(bicycle) = %v, want only doc 10", res.DocIDs())
	}
}

func TestSearcher_RemoveDocClearsIndex(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0})
	s.InsertDocAttribute(10, 1, "red bicycle")

	s.RemoveDoc(10)

	sq := NewSearchQuery(NewWordQuery("bicycle", OpEqual, Required, 0))
	res := s.Query(sq)
	if res.Len() != 0 {
		t.Fatalf("Query after RemoveDoc = %v, want no matches", res.DocIDs())
	}
}

func TestSearcher_RemoveAttributeStopsFeedingResults(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0})
	s.InsertDocAttribute(10, 1, "red bicycle")

	if !s.RemoveAttribute(1) {
		t.Fatalf("RemoveAttribute(1) should report true for a registered attribute")
	}
	if s.RemoveAttribute(1) {
		t.Fatalf("RemoveAttribute(1) called twice should report false the second time")
	}

	sq := NewSearchQuery(NewWordQuery("bicycle", OpEqual, Required, 0))
	if res := s.Query(sq); res.Len() != 0 {
		t.Fatalf("Query after RemoveAttribute = %v, want no matches", res.DocIDs())
	}
}

func TestSearcher_TiersGroupByPriority(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 1})
	s.SetAttribute(2, AttributeOptions{Direction: Forward, Priority: 0})

	tiers := s.getTiers()
	if len(tiers) != 2 {
		t.Fatalf("getTiers() = %d tiers, want 2", len(tiers))
	}
	if tiers[0].Priority != 0 || tiers[1].Priority != 1 {
		t.Fatalf("tiers are not sorted ascending by priority: %+v", tiers)
	}
}

func TestSearcher_CompareRanksExactAheadOfFuzzy(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0})
	s.InsertDocAttribute(10, 1, "country estate")
	s.InsertDocAttribute(11, 1, "county estate")

	sq := NewSearchQuery(NewWordQuery("country", OpFuzzy, Required, 0))
	res := s.Query(sq)

	if res.Len() != 2 {
		t.Fatalf("Query(fuzzy country) = %v, want both docs", res.DocIDs())
	}
	if cmp := res.Compare(10, 11); cmp >= 0 {
		t.Fatalf("Compare(exact, fuzzy) = %d, want the exact match ranked ahead", cmp)
	}
}
