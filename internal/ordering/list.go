package ordering

import (
	"fmt"

	"github.com/starford/weeks/internal/apperr"
)

// Entry is one member of an ordering context. ID is the store's item id.
type Entry struct {
	ID  int64
	Key string
}

// Keys returns the keys of entries in sequence order.
func Keys(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}

// NeedsRepair reports whether the sequence must be renormalized before keys
// can be computed against it: a key is missing or malformed, the keys are not
// strictly increasing, or a key has outgrown its budget.
//
// The budget is MaxKeyLength plus one byte per member, since appended keys
// themselves grow with the length of the list.
func NeedsRepair(entries []Entry) bool {
	budget := MaxKeyLength + len(entries)
	for i, e := range entries {
		if !WellFormed(e.Key) || len(e.Key) > budget {
			return true
		}
		if i > 0 && entries[i-1].Key >= e.Key {
			return true
		}
	}
	return false
}

// WellFormed reports whether key could have been produced by Midpoint: it is
// non-empty, uses only the digits a..z and does not end in a. Any other key
// may leave no room next to it.
func WellFormed(key string) bool {
	if key == "" || key[len(key)-1] == minDigit {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < minDigit || key[i] > maxDigit {
			return false
		}
	}
	return true
}

// Renormalize assigns fresh, strictly increasing keys to every entry in the
// current sequence order. The input slice is not modified.
func Renormalize(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	prev := ""
	for i, e := range entries {
		// Appending after the previous fresh key cannot fail.
		prev = midString(prev, "")
		out[i] = Entry{ID: e.ID, Key: prev}
	}
	return out
}

// Position returns the index of id in entries.
func Position(entries []Entry, id int64) (int, error) {
	for i, e := range entries {
		if e.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("ordering: id %d: %w", id, apperr.ErrUnknownID)
}

// keyAt returns the key at i, or the empty sentinel when i is outside the list.
func keyAt(entries []Entry, i int) string {
	if i < 0 || i >= len(entries) {
		return ""
	}
	return entries[i].Key
}

// AppendKey returns a key positioned after the last entry.
func AppendKey(entries []Entry) (string, error) {
	return Midpoint(keyAt(entries, len(entries)-1), "")
}

// InsertAfter returns a key positioned directly after id.
func InsertAfter(entries []Entry, id int64) (string, error) {
	p, err := Position(entries, id)
	if err != nil {
		return "", err
	}
	return Midpoint(entries[p].Key, keyAt(entries, p+1))
}

// MoveUp returns the new key for id so that it lands above its predecessor.
// The first entry keeps its own key and moved is false.
func MoveUp(entries []Entry, id int64) (key string, moved bool, err error) {
	p, err := Position(entries, id)
	if err != nil {
		return "", false, err
	}
	if p == 0 {
		return entries[p].Key, false, nil
	}
	key, err = Midpoint(keyAt(entries, p-2), entries[p-1].Key)
	if err != nil {
		return "", false, err
	}
	return key, true, nil
}

// MoveDown returns the new key for id so that it lands below its successor.
// The last entry keeps its own key and moved is false.
func MoveDown(entries []Entry, id int64) (key string, moved bool, err error) {
	p, err := Position(entries, id)
	if err != nil {
		return "", false, err
	}
	if p == len(entries)-1 {
		return entries[p].Key, false, nil
	}
	key, err = Midpoint(entries[p+1].Key, keyAt(entries, p+2))
	if err != nil {
		return "", false, err
	}
	return key, true, nil
}

// Reorder returns the id at index from and the key that places it at index to
// of the resulting list. Both indices refer to the current sequence.
func Reorder(entries []Entry, from, to int) (id int64, key string, err error) {
	if from < 0 || from >= len(entries) || to < 0 || to >= len(entries) {
		return 0, "", fmt.Errorf("ordering: reorder %d -> %d of %d: %w", from, to, len(entries), apperr.ErrIndexOutOfRange)
	}
	if from == to {
		return 0, "", fmt.Errorf("ordering: reorder %d -> %d: %w", from, to, apperr.ErrSameIndex)
	}

	var low, high string
	if to < from {
		// Lands in front of the entry currently at to.
		low, high = keyAt(entries, to-1), entries[to].Key
	} else {
		// Lands behind the entry currently at to.
		low, high = entries[to].Key, keyAt(entries, to+1)
	}
	key, err = Midpoint(low, high)
	if err != nil {
		return 0, "", err
	}
	return entries[from].ID, key, nil
}

// Apply returns a copy of entries with id's key replaced and the sequence
// re-sorted by key.
func Apply(entries []Entry, id int64, key string) []Entry {
	out := make([]Entry, 0, len(entries))
	var moved *Entry
	for _, e := range entries {
		if e.ID == id {
			moved = &Entry{ID: id, Key: key}
			continue
		}
		out = append(out, e)
	}
	if moved == nil {
		return out
	}
	i := 0
	for i < len(out) && out[i].Key < key {
		i++
	}
	out = append(out, Entry{})
	copy(out[i+1:], out[i:])
	out[i] = *moved
	return out
}
