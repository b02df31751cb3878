package stories

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(list []Story) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ObjectID
	}
	return out
}

func TestSort(t *testing.T) {
	list := []Story{storyOne, storyTwo, storyThree}

	tests := []struct {
		key     SortKey
		reverse bool
		want    []string
	}{
		{SortNone, false, []string{"0", "1", "2"}},
		{SortTitle, false, []string{"2", "0", "1"}},
		{SortAuthor, false, []string{"1", "0", "2"}},
		{SortComments, false, []string{"2", "0", "1"}},
		{SortPoints, false, []string{"2", "1", "0"}},
		{SortPoints, true, []string{"0", "1", "2"}},
	}

	for _, tt := range tests {
		got := ids(Sort(list, tt.key, tt.reverse))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Sort(%s, reverse=%v) mismatch (-want +got):\n%s", tt.key, tt.reverse, diff)
		}
	}

	if diff := cmp.Diff([]string{"0", "1", "2"}, ids(list)); diff != "" {
		t.Errorf("Sort modified its input:\n%s", diff)
	}
}

func TestSortStable(t *testing.T) {
	a := Story{ObjectID: "a", Points: 1}
	b := Story{ObjectID: "b", Points: 1}
	c := Story{ObjectID: "c", Points: 2}

	got := ids(Sort([]Story{a, b, c}, SortPoints, false))
	if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
		t.Errorf("equal keys should keep arrival order (-want +got):\n%s", diff)
	}
}

func TestSortExtremeCounts(t *testing.T) {
	low := Story{ObjectID: "low", Points: math.MinInt, NumComments: math.MinInt}
	high := Story{ObjectID: "high", Points: math.MaxInt, NumComments: math.MaxInt}
	zero := Story{ObjectID: "zero"}

	for _, key := range []SortKey{SortPoints, SortComments} {
		got := ids(Sort([]Story{low, high, zero}, key, false))
		if diff := cmp.Diff([]string{"high", "zero", "low"}, got); diff != "" {
			t.Errorf("Sort(%s) mismatch (-want +got):\n%s", key, diff)
		}
	}
}

func TestSortingSelect(t *testing.T) {
	var s Sorting

	s = s.Select(SortTitle)
	if s.Key != SortTitle || s.Reverse {
		t.Errorf("first select = %+v", s)
	}
	s = s.Select(SortTitle)
	if !s.Reverse {
		t.Error("selecting the active key should flip direction")
	}
	s = s.Select(SortPoints)
	if s.Key != SortPoints || s.Reverse {
		t.Errorf("switching key should reset direction, got %+v", s)
	}
	s = s.Select(SortNone).Select(SortNone)
	if s.Reverse {
		t.Error("SortNone never reverses")
	}
}

func TestSortingNextWraps(t *testing.T) {
	s := Sorting{Key: SortPoints, Reverse: true}
	if next := s.Next(); next.Key != SortNone || next.Reverse {
		t.Errorf("Next() from last key = %+v", next)
	}
	if next := (Sorting{}).Next(); next.Key != SortTitle {
		t.Errorf("Next() from none = %v", next.Key)
	}
}

func TestParseSortKey(t *testing.T) {
	for _, k := range SortKeys() {
		got, ok := ParseSortKey(k.String())
		if !ok || got != k {
			t.Errorf("ParseSortKey(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseSortKey("rank"); ok {
		t.Error("unknown name should not parse")
	}
}
