package pagination

import "testing"

func TestNewParamsClamps(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
	}{
		{0, 0, 1, DefaultLimit, 0},
		{3, 10, 3, 10, 20},
		{1, 1000, 1, MaxLimit, 0},
	}
	for _, tt := range tests {
		p := NewParams(tt.page, tt.limit)
		if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
			t.Errorf("NewParams(%d, %d) = %+v", tt.page, tt.limit, p)
		}
	}
}

func TestSliceAndMeta(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := NewParams(2, 2)
	got := Slice(items, p)
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("page 2 = %v", got)
	}

	last := Slice(items, NewParams(3, 2))
	if len(last) != 1 || last[0] != 5 {
		t.Errorf("page 3 = %v", last)
	}

	if beyond := Slice(items, NewParams(9, 2)); len(beyond) != 0 {
		t.Errorf("expected empty page, got %v", beyond)
	}

	meta := GetMeta(p, int64(len(items)))
	if meta.TotalPages != 3 || !meta.HasNext || !meta.HasPrev {
		t.Errorf("unexpected meta %+v", meta)
	}
}
