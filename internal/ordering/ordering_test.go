package ordering

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/weeks/internal/apperr"
)

func sequence(t *testing.T, n int) []Entry {
	t.Helper()
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		key, err := AppendKey(entries)
		if err != nil {
			t.Fatalf("AppendKey: %v", err)
		}
		entries = append(entries, Entry{ID: int64(i + 1), Key: key})
	}
	return entries
}

func ids(entries []Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMidpoint_BetweenAandB(t *testing.T) {
	k, err := Midpoint("a", "b")
	if err != nil {
		t.Fatalf("Midpoint: %v", err)
	}
	if !("a" < k && k < "b") {
		t.Errorf("key %q not between a and b", k)
	}
}

func TestMidpoint_StrictlyBetween(t *testing.T) {
	cases := []struct{ low, high string }{
		{"", ""},
		{"", "b"},
		{"", "n"},
		{"", "ab"},
		{"n", ""},
		{"z", ""},
		{"zz", ""},
		{"a", "b"},
		{"an", "b"},
		{"ab", "ac"},
		{"abc", "abd"},
		{"n", "u"},
		{"n", "nn"},
		{"hello", "world"},
		{"az", "b"},
	}
	for _, tc := range cases {
		k, err := Midpoint(tc.low, tc.high)
		if err != nil {
			t.Errorf("Midpoint(%q, %q): %v", tc.low, tc.high, err)
			continue
		}
		if k <= tc.low || (tc.high != "" && k >= tc.high) {
			t.Errorf("Midpoint(%q, %q) = %q, not strictly between", tc.low, tc.high, k)
		}
		if strings.HasSuffix(k, "a") {
			t.Errorf("Midpoint(%q, %q) = %q ends with the minimum digit", tc.low, tc.high, k)
		}
	}
}

func TestMidpoint_Deterministic(t *testing.T) {
	a, _ := Midpoint("abc", "abd")
	b, _ := Midpoint("abc", "abd")
	if a != b {
		t.Errorf("midpoint not deterministic: %q vs %q", a, b)
	}
}

func TestMidpoint_InvertedBounds(t *testing.T) {
	for _, tc := range []struct{ low, high string }{{"b", "a"}, {"n", "n"}} {
		_, err := Midpoint(tc.low, tc.high)
		if !errors.Is(err, apperr.ErrInvertedBounds) {
			t.Errorf("Midpoint(%q, %q) err = %v, want ErrInvertedBounds", tc.low, tc.high, err)
		}
	}
}

func TestMidpoint_NoRoom(t *testing.T) {
	// No key over the alphabet fits between these bounds.
	for _, tc := range []struct{ low, high string }{{"", "a"}, {"b", "ba"}, {"~", ""}} {
		if _, err := Midpoint(tc.low, tc.high); !errors.Is(err, apperr.ErrNoKeySpace) {
			t.Errorf("Midpoint(%q, %q) err = %v, want ErrNoKeySpace", tc.low, tc.high, err)
		}
	}
}

func TestMidpoint_RepeatedBisectionStaysOrdered(t *testing.T) {
	low, high := "a", "b"
	for i := 0; i < 200; i++ {
		k, err := Midpoint(low, high)
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if !(low < k && k < high) {
			t.Fatalf("iteration %d: %q not in (%q, %q)", i, k, low, high)
		}
		if i%2 == 0 {
			low = k
		} else {
			high = k
		}
	}
}

func TestAppend_StrictlyIncreasing(t *testing.T) {
	entries := sequence(t, 300)
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			t.Fatalf("key %d (%q) >= key %d (%q)", i-1, entries[i-1].Key, i, entries[i].Key)
		}
	}
	if NeedsRepair(entries) {
		t.Error("freshly appended sequence should not need repair")
	}
}

func TestNeedsRepair(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    bool
	}{
		{"empty", nil, false},
		{"ok", []Entry{{1, "g"}, {2, "n"}}, false},
		{"missing", []Entry{{1, "g"}, {2, ""}}, true},
		{"duplicate", []Entry{{1, "n"}, {2, "n"}}, true},
		{"unsorted", []Entry{{1, "u"}, {2, "n"}}, true},
		{"too long", []Entry{{1, strings.Repeat("z", MaxKeyLength+10)}}, true},
		{"trailing min digit", []Entry{{1, "a"}, {2, "b"}}, true},
		{"extends with min digit", []Entry{{1, "n"}, {2, "na"}}, true},
		{"upper case", []Entry{{1, "A"}, {2, "B"}}, true},
		{"foreign byte", []Entry{{1, "g"}, {2, "n~"}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NeedsRepair(tc.entries); got != tc.want {
				t.Errorf("NeedsRepair = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMalformedKeys_RepairRestoresRoom(t *testing.T) {
	moveUp := func(entries []Entry) (string, error) {
		k, _, err := MoveUp(entries, 2)
		return k, err
	}
	insertAfter := func(entries []Entry) (string, error) {
		return InsertAfter(entries, 1)
	}
	tests := []struct {
		name string
		keys [2]string
		op   func([]Entry) (string, error)
	}{
		{"min digit at top", [2]string{"a", "b"}, moveUp},
		{"upper case", [2]string{"A", "B"}, moveUp},
		{"trailing min digit", [2]string{"n", "na"}, insertAfter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries := []Entry{{1, tc.keys[0]}, {2, tc.keys[1]}}
			if _, err := tc.op(entries); !errors.Is(err, apperr.ErrNoKeySpace) {
				t.Fatalf("before repair err = %v, want ErrNoKeySpace", err)
			}
			if !NeedsRepair(entries) {
				t.Fatal("NeedsRepair = false")
			}
			if _, err := tc.op(Renormalize(entries)); err != nil {
				t.Errorf("after repair: %v", err)
			}
		})
	}
}

func TestRenormalize_PreservesOrder(t *testing.T) {
	in := []Entry{{7, ""}, {3, "zz"}, {9, ""}, {1, "b"}, {4, "b"}}
	out := Renormalize(in)
	if !sameIDs(ids(in), ids(out)) {
		t.Fatalf("order changed: %v -> %v", ids(in), ids(out))
	}
	if NeedsRepair(out) {
		t.Errorf("renormalized keys still need repair: %v", Keys(out))
	}
	if in[0].Key != "" {
		t.Error("input slice must not be modified")
	}
}

func TestRenormalize_AllMissing(t *testing.T) {
	in := make([]Entry, 50)
	for i := range in {
		in[i].ID = int64(100 - i)
	}
	out := Renormalize(in)
	if !sameIDs(ids(in), ids(out)) {
		t.Fatal("order changed")
	}
	if NeedsRepair(out) {
		t.Error("renormalized keys still need repair")
	}
}

func TestInsertAfter(t *testing.T) {
	entries := []Entry{{1, "a"}, {2, "b"}, {3, "n"}}
	k, err := InsertAfter(entries, 1)
	if err != nil {
		t.Fatalf("InsertAfter: %v", err)
	}
	if !("a" < k && k < "b") {
		t.Errorf("key %q not between a and b", k)
	}
	k, err = InsertAfter(entries, 3)
	if err != nil {
		t.Fatalf("InsertAfter last: %v", err)
	}
	if k <= "n" {
		t.Errorf("key %q not after n", k)
	}
	if _, err := InsertAfter(entries, 42); !errors.Is(err, apperr.ErrUnknownID) {
		t.Errorf("err = %v, want ErrUnknownID", err)
	}
}

func TestMoveUp(t *testing.T) {
	entries := sequence(t, 4)

	key, moved, err := MoveUp(entries, 3)
	if err != nil || !moved {
		t.Fatalf("MoveUp: moved=%v err=%v", moved, err)
	}
	got := ids(Apply(entries, 3, key))
	if want := []int64{1, 3, 2, 4}; !sameIDs(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	key, moved, err = MoveUp(entries, 2)
	if err != nil || !moved {
		t.Fatalf("MoveUp second: moved=%v err=%v", moved, err)
	}
	if got := ids(Apply(entries, 2, key)); !sameIDs(got, []int64{2, 1, 3, 4}) {
		t.Errorf("order = %v", got)
	}
}

func TestMoveUp_FirstIsNoop(t *testing.T) {
	entries := sequence(t, 3)
	key, moved, err := MoveUp(entries, 1)
	if err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	if moved || key != entries[0].Key {
		t.Errorf("first entry moved: key=%q moved=%v", key, moved)
	}
}

func TestMoveDown(t *testing.T) {
	entries := sequence(t, 4)
	key, moved, err := MoveDown(entries, 2)
	if err != nil || !moved {
		t.Fatalf("MoveDown: moved=%v err=%v", moved, err)
	}
	if got := ids(Apply(entries, 2, key)); !sameIDs(got, []int64{1, 3, 2, 4}) {
		t.Errorf("order = %v", got)
	}
	key, moved, err = MoveDown(entries, 3)
	if err != nil || !moved {
		t.Fatalf("MoveDown: moved=%v err=%v", moved, err)
	}
	if got := ids(Apply(entries, 3, key)); !sameIDs(got, []int64{1, 2, 4, 3}) {
		t.Errorf("order = %v", got)
	}
	key, moved, _ = MoveDown(entries, 4)
	if moved || key != entries[3].Key {
		t.Error("last entry must not move")
	}
}

func TestMoveUpThenDown_RestoresOrder(t *testing.T) {
	entries := sequence(t, 5)
	before := ids(entries)

	key, _, err := MoveUp(entries, 3)
	if err != nil {
		t.Fatal(err)
	}
	entries = Apply(entries, 3, key)
	key, _, err = MoveDown(entries, 3)
	if err != nil {
		t.Fatal(err)
	}
	entries = Apply(entries, 3, key)
	if got := ids(entries); !sameIDs(got, before) {
		t.Errorf("order = %v, want %v", got, before)
	}
}

func TestMove_UnknownID(t *testing.T) {
	entries := sequence(t, 2)
	if _, _, err := MoveUp(entries, 99); !errors.Is(err, apperr.ErrUnknownID) {
		t.Errorf("MoveUp err = %v", err)
	}
	if _, _, err := MoveDown(entries, 99); !errors.Is(err, apperr.ErrUnknownID) {
		t.Errorf("MoveDown err = %v", err)
	}
}

func TestReorder(t *testing.T) {
	tests := []struct {
		from, to int
		want     []int64
	}{
		{0, 4, []int64{2, 3, 4, 5, 1}},
		{4, 0, []int64{5, 1, 2, 3, 4}},
		{1, 3, []int64{1, 3, 4, 2, 5}},
		{3, 1, []int64{1, 4, 2, 3, 5}},
		{2, 3, []int64{1, 2, 4, 3, 5}},
	}
	for _, tc := range tests {
		entries := sequence(t, 5)
		id, key, err := Reorder(entries, tc.from, tc.to)
		if err != nil {
			t.Fatalf("Reorder(%d, %d): %v", tc.from, tc.to, err)
		}
		if id != entries[tc.from].ID {
			t.Errorf("Reorder(%d, %d) id = %d", tc.from, tc.to, id)
		}
		if got := ids(Apply(entries, id, key)); !sameIDs(got, tc.want) {
			t.Errorf("Reorder(%d, %d) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestReorder_Rejects(t *testing.T) {
	entries := sequence(t, 3)
	if _, _, err := Reorder(entries, 1, 1); !errors.Is(err, apperr.ErrSameIndex) {
		t.Errorf("same index err = %v", err)
	}
	for _, idx := range [][2]int{{-1, 0}, {0, 3}, {5, 1}} {
		if _, _, err := Reorder(entries, idx[0], idx[1]); !errors.Is(err, apperr.ErrIndexOutOfRange) {
			t.Errorf("Reorder(%d, %d) err = %v", idx[0], idx[1], err)
		}
	}
}

func TestReorder_RandomSequenceKeepsKeysUnique(t *testing.T) {
	entries := sequence(t, 8)
	moves := [][2]int{{0, 7}, {7, 0}, {3, 4}, {4, 3}, {6, 1}, {2, 5}, {0, 1}, {1, 0}}
	for round := 0; round < 20; round++ {
		for _, m := range moves {
			id, key, err := Reorder(entries, m[0], m[1])
			if err != nil {
				t.Fatalf("round %d Reorder(%d, %d): %v", round, m[0], m[1], err)
			}
			entries = Apply(entries, id, key)
			if len(entries) != 8 {
				t.Fatalf("lost entries: %d", len(entries))
			}
			for i := 1; i < len(entries); i++ {
				if entries[i-1].Key >= entries[i].Key {
					t.Fatalf("keys not strictly increasing: %v", Keys(entries))
				}
			}
		}
	}
}
