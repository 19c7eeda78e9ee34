package stats

import "testing"

func TestWindowStatistics(t *testing.T) {
	type spec struct {
		size    int
		samples []Value
		expAvg  Value
		expMin  Value
	}
	specs := []spec{
		spec{3, []Value{Some(3), Some(1), Some(2)}, Some(2), Some(1)},
		// Only the last 3 samples count
		spec{3, []Value{Some(0), Some(100), Some(4), Some(6), Some(8)}, Some(6), Some(4)},
		// A missing sample invalidates the whole window
		spec{3, []Value{Some(4), None, Some(8)}, None, None},
		// ...until it is evicted
		spec{3, []Value{None, Some(4), Some(6), Some(8)}, Some(6), Some(4)},
		spec{1, []Value{Some(1), Some(9)}, Some(9), Some(9)},
		spec{4, nil, None, None},
	}

	for index, s := range specs {
		w, err := NewWindow(s.size)
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		for _, v := range s.samples {
			w.Add(v)
		}

		if w.Len() > s.size {
			t.Fatalf("[spec %d] window length %d exceeds size %d", index, w.Len(), s.size)
		}
		if got := w.Average(); got != s.expAvg {
			t.Fatalf("[spec %d] expected average %v; got %v", index, s.expAvg, got)
		}
		if got := w.Minimum(); got != s.expMin {
			t.Fatalf("[spec %d] expected minimum %v; got %v", index, s.expMin, got)
		}
	}
}

func TestWindowInvalidSize(t *testing.T) {
	if _, err := NewWindow(0); err != ErrInvalidCapacity {
		t.Fatalf("expected ErrInvalidCapacity; got %v", err)
	}
}
