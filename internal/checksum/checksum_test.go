package checksum

import (
	"testing"

	"github.com/starford/weeks/internal/ordering"
)

func TestSum(t *testing.T) {
	const emptySHA = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != emptySHA {
		t.Errorf("Sum(nil) = %s", got)
	}
}

func TestSnapshot(t *testing.T) {
	base := []ordering.Entry{{ID: 1, Key: "g"}, {ID: 2, Key: "n"}}
	tag := Snapshot(base)
	if tag != Snapshot([]ordering.Entry{{ID: 1, Key: "g"}, {ID: 2, Key: "n"}}) {
		t.Error("snapshot not deterministic")
	}

	changed := [][]ordering.Entry{
		{{ID: 1, Key: "g"}, {ID: 2, Key: "u"}},
		{{ID: 2, Key: "n"}, {ID: 1, Key: "g"}},
		{{ID: 1, Key: "g"}},
		{{ID: 1, Key: "g"}, {ID: 2, Key: "n"}, {ID: 3, Key: "u"}},
	}
	for i, entries := range changed {
		if Snapshot(entries) == tag {
			t.Errorf("case %d: snapshot did not change", i)
		}
	}
}
