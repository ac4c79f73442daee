package main

import (
	"testing"
	"time"

	"cliplab/internal/geometry"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    geometry.Point
		wantErr bool
	}{
		{name: "origin", input: "0,0", want: geometry.Point{}},
		{name: "full", input: "1,1", want: geometry.Point{X: 1, Y: 1}},
		{name: "fractional", input: "0.25,0.75", want: geometry.Point{X: 0.25, Y: 0.75}},
		{name: "spaces", input: " 0.5 , 0.5 ", want: geometry.Point{X: 0.5, Y: 0.5}},
		{name: "missing component", input: "0.5", wantErr: true},
		{name: "extra component", input: "0.1,0.2,0.3", wantErr: true},
		{name: "not a number", input: "a,b", wantErr: true},
		{name: "above one", input: "1.5,0.5", wantErr: true},
		{name: "negative", input: "-0.1,0.5", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePoint(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parsePoint(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePoint(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("parsePoint(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestCropSummary(t *testing.T) {
	full := cropSummary(geometry.Point{}, geometry.Point{X: 1, Y: 1})
	if full != "full frame" {
		t.Fatalf("full-frame summary = %q", full)
	}
	partial := cropSummary(geometry.Point{X: 0.1, Y: 0.2}, geometry.Point{X: 0.9, Y: 0.8})
	if partial != "0.100,0.200 – 0.900,0.800" {
		t.Fatalf("partial summary = %q", partial)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(1500 * time.Millisecond); got != "1.5s" {
		t.Fatalf("formatDuration = %q", got)
	}
	if got := formatDuration(time.Second + 123456*time.Microsecond); got != "1.123s" {
		t.Fatalf("formatDuration = %q", got)
	}
}
