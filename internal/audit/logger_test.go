package audit

import "testing"

func TestFilterNormalize(t *testing.T) {
	cases := []struct {
		in         Filter
		page, size int
	}{
		{Filter{}, 1, 50},
		{Filter{Page: 3, Limit: 20}, 3, 20},
		{Filter{Page: -1, Limit: 500}, 1, 50},
	}
	for _, tc := range cases {
		f := tc.in
		f.Normalize()
		if f.Page != tc.page || f.Limit != tc.size {
			t.Errorf("Normalize(%+v) = page %d limit %d", tc.in, f.Page, f.Limit)
		}
	}
}
