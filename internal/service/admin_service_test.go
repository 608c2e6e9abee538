package service

import "testing"

func TestMonthName(t *testing.T) {
	cases := []struct {
		m    int
		want string
	}{
		{1, "Jan"},
		{6, "Jun"},
		{12, "Dec"},
		{0, ""},
		{13, ""},
	}
	for _, c := range cases {
		if got := monthName(c.m); got != c.want {
			t.Errorf("monthName(%d) = %q, want %q", c.m, got, c.want)
		}
	}
}
