package fts

import "testing"

func TestSearcher_HigherPriorityTierDecidesFirst(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0}) // title
	s.SetAttribute(2, AttributeOptions{Direction: Forward, Priority: 1}) // body

	// Doc 10 matches in the high-priority attribute; doc 11 only matches in
	// the lower-priority one. Doc 10 should rank first regardless of what
	// the lower tier would have said on its own.
	s.InsertDocAttribute(10, 1, "bicycle")
	s.InsertDocAttribute(10, 2, "unrelated filler text")
	s.InsertDocAttribute(11, 1, "unrelated")
	s.InsertDocAttribute(11, 2, "bicycle bicycle bicycle")

	sq := NewSearchQuery(NewWordQuery("bicycle", OpEqual, Optional, 0))
	res := s.Query(sq)

	if res.Len() != 2 {
		t.Fatalf("Query(bicycle) = %v, want both docs", res.DocIDs())
	}
	if cmp := res.Compare(10, 11); cmp >= 0 {
		t.Fatalf("Compare(10, 11) = %d, want doc 10 ranked ahead by its title-tier match", cmp)
	}
}

func TestSearcher_ProximityBreaksMatchDistanceTie(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0})

	s.InsertDocAttribute(10, 1, "red bicycle for sale")
	s.InsertDocAttribute(11, 1, "red something something something bicycle")

	sq := NewSearchQuery(
		NewWordQuery("red", OpEqual, Optional, 0),
		NewWordQuery("bicycle", OpEqual, Optional, 1),
	)
	res := s.Query(sq)

	if cmp := res.Compare(10, 11); cmp >= 0 {
		t.Fatalf("Compare(10, 11) = %d, want the tighter-proximity doc ranked ahead", cmp)
	}
}

func TestSearcher_MatchesEnumeratesAttribution(t *testing.T) {
	s := NewSearcher()
	s.SetAttribute(1, AttributeOptions{Direction: Forward, Priority: 0})
	s.InsertDocAttribute(10, 1, "red bicycle")

	sq := NewSearchQuery(NewWordQuery("bicycle", OpEqual, Required, 0))
	res := s.Query(sq)

	matches := res.Matches(10)
	found := false
	for _, m := range matches {
		if m.Word == "bicycle" && m.QueryIndex == 0 && m.Distance.Kind == DistanceExact {
			found = true
		}
	}
	if !found {
		t.Fatalf("Matches(10) = %+v, want an exact attribution for 'bicycle' at query index 0", matches)
	}
}
