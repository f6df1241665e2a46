package format

import (
	"strings"
	"testing"
	"time"
)

func TestCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1000, "1,000"},
		{3292679, "3,292,679"},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Errorf("Count(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMean_RoundsToWholeRentals(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{20, "20"},
		{20.5, "21"},
		{4504.6, "4,505"},
		{53.8986, "54"},
	}
	for _, tt := range tests {
		if got := Mean(tt.in); got != tt.want {
			t.Errorf("Mean(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100.0 / 3, "33.33%"},
		{0, "0.00%"},
		{100, "100.00%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHour(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{8, "08:00"},
		{17, "17:00"},
	}
	for _, tt := range tests {
		if got := Hour(tt.in); got != tt.want {
			t.Errorf("Hour(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	if got := Labels(nil); got != NoLabels {
		t.Errorf("Labels(nil) = %q, want %q", got, NoLabels)
	}
	if got := Labels([]string{"Spring", "Summer"}); got != "Spring, Summer" {
		t.Errorf("Labels = %q, want %q", got, "Spring, Summer")
	}
}

func TestBytes(t *testing.T) {
	if got := Bytes(-1); got != "0 B" {
		t.Errorf("Bytes(-1) = %q, want %q", got, "0 B")
	}
	if got := Bytes(1000); got != "1.0 kB" {
		t.Errorf("Bytes(1000) = %q, want %q", got, "1.0 kB")
	}
}

func TestAgo(t *testing.T) {
	if got := Ago(time.Time{}); got != "never" {
		t.Errorf("Ago(zero) = %q, want never", got)
	}
	if got := Ago(time.Now().Add(-2 * time.Hour)); !strings.Contains(got, "hours ago") {
		t.Errorf("Ago(-2h) = %q, want it to contain %q", got, "hours ago")
	}
}
