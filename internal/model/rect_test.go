package model

import "testing"

func TestParseRect(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Rect
		wantErr bool
	}{
		{"simple", "[10,20][110,70]", Rect{10, 20, 110, 70}, false},
		{"zero origin", "[0,0][1080,2400]", Rect{0, 0, 1080, 2400}, false},
		{"internal whitespace", "[ 10, 20 ][ 110, 70 ]", Rect{10, 20, 110, 70}, false},
		{"surrounding whitespace", "  [10,20][110,70]  ", Rect{10, 20, 110, 70}, false},
		{"missing bracket", "[10,20][110,70", Rect{}, true},
		{"negative coordinate", "[-10,20][110,70]", Rect{}, true},
		{"not a rect", "Button text here", Rect{}, true},
		{"empty", "", Rect{}, true},
		{"single point", "[10,20]", Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRect(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRect(%q): expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRect(%q): %v", tt.in, err)
			}
			if *got != tt.want {
				t.Errorf("ParseRect(%q) = %v, want %v", tt.in, *got, tt.want)
			}
		})
	}
}

func TestValidRect(t *testing.T) {
	valid := []string{"[10,20][110,70]", "[0,0][0,0]", "[ 10, 20 ][ 110, 70 ]"}
	for _, s := range valid {
		if !ValidRect(s) {
			t.Errorf("ValidRect(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "[10,20]", "[10,20][110,70] trailing", "x[10,20][110,70]", "[10.5,20][110,70]"}
	for _, s := range invalid {
		if ValidRect(s) {
			t.Errorf("ValidRect(%q) = true, want false", s)
		}
	}
}

func TestFindRect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"embedded in attributes", "text: OK\nbounds: [34,120][86,160]\nclickable: true", "[34,120][86,160]"},
		{"first of two wins", "[1,2][3,4] and [5,6][7,8]", "[1,2][3,4]"},
		{"none", "no bounds rendered here", ""},
		{"bare rect", "[0,0][10,10]", "[0,0][10,10]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindRect(tt.text); got != tt.want {
				t.Errorf("FindRect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRectString(t *testing.T) {
	r := Rect{X1: 34, Y1: 120, X2: 86, Y2: 160}
	if got := r.String(); got != "[34,120][86,160]" {
		t.Errorf("String() = %q", got)
	}
}

func TestRectCenter(t *testing.T) {
	tests := []struct {
		rect  Rect
		wantX int
		wantY int
	}{
		{Rect{10, 20, 110, 70}, 60, 45},
		{Rect{0, 0, 1, 1}, 0, 0},
		{Rect{0, 0, 3, 3}, 1, 1},
	}
	for _, tt := range tests {
		x, y := tt.rect.Center()
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%v.Center() = (%d,%d), want (%d,%d)", tt.rect, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestSelectionHasRectangle(t *testing.T) {
	if (Selection{}).HasRectangle() {
		t.Error("empty selection should not have a rectangle")
	}
	if !(Selection{Rectangle: "[1,2][3,4]"}).HasRectangle() {
		t.Error("valid rectangle not recognized")
	}
	if (Selection{Rectangle: "garbage"}).HasRectangle() {
		t.Error("malformed rectangle accepted")
	}
}
