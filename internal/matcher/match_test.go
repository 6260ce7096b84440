package matcher

import "testing"

func TestExact(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		search    string
		from      int
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{
			name:      "simple match",
			original:  "a\nb\nc",
			search:    "b",
			from:      0,
			wantStart: 2,
			wantEnd:   3,
			wantOK:    true,
		},
		{
			name:      "respects from offset",
			original:  "x x x",
			search:    "x",
			from:      1,
			wantStart: 2,
			wantEnd:   3,
			wantOK:    true,
		},
		{
			name:     "no match",
			original: "a\nb\nc",
			search:   "zzz",
			from:     0,
			wantOK:   false,
		},
		{
			name:     "from beyond end",
			original: "abc",
			search:   "a",
			from:     10,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := Exact(tt.original, tt.search, tt.from)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (span.Start != tt.wantStart || span.End != tt.wantEnd) {
				t.Errorf("span = %+v, want [%d, %d)", span, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestLineTrimmed(t *testing.T) {
	tests := []struct {
		name     string
		original string
		search   string
		from     int
		want     string // expected matched text, "" means no match
	}{
		{
			name:     "indentation drift",
			original: "a\n  b  \nc",
			search:   "b",
			from:     0,
			want:     "  b  \n",
		},
		{
			name:     "multiline window",
			original: "func f() {\n\treturn 1\n}\n",
			search:   "func f() {\n    return 1\n}",
			from:     0,
			want:     "func f() {\n\treturn 1\n}\n",
		},
		{
			name:     "trailing search newline ignored",
			original: "x\ny\nz",
			search:   "y\n",
			from:     0,
			want:     "y\n",
		},
		{
			name:     "interior drift does not match",
			original: "a\nCHANGED\nc",
			search:   "a\nb\nc",
			from:     0,
			want:     "",
		},
		{
			name:     "match before from is skipped",
			original: "b\nx\nb\n",
			search:   "b",
			from:     1,
			want:     "b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := LineTrimmed(tt.original, tt.search, tt.from)
			if tt.want == "" {
				if ok {
					t.Fatalf("matched %q, want no match", tt.original[span.Start:span.End])
				}
				return
			}
			if !ok {
				t.Fatal("no match, want one")
			}
			if got := tt.original[span.Start:span.End]; got != tt.want {
				t.Errorf("matched %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineTrimmedFromOffsetSkipsEarlierWindow(t *testing.T) {
	original := "b\nx\nb\n"
	span, ok := LineTrimmed(original, "b", 1)
	if !ok {
		t.Fatal("no match, want one")
	}
	if span.Start != 4 {
		t.Errorf("span start = %d, want 4 (second b)", span.Start)
	}
}

func TestBlockAnchor(t *testing.T) {
	tests := []struct {
		name     string
		original string
		search   string
		want     string
	}{
		{
			name:     "interior drift matches by anchors",
			original: "func f() {\n\tmodified body\n}\nrest",
			search:   "func f() {\n\toriginal body\n}",
			want:     "func f() {\n\tmodified body\n}\n",
		},
		{
			name:     "two line search never anchors",
			original: "start\nend\n",
			search:   "start\nend",
			want:     "",
		},
		{
			name:     "window length must equal search line count",
			original: "func f() {\n\ta\n\tb\n}\n",
			search:   "func f() {\n\tx\n}",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := BlockAnchor(tt.original, tt.search, 0)
			if tt.want == "" {
				if ok {
					t.Fatalf("matched %q, want no match", tt.original[span.Start:span.End])
				}
				return
			}
			if !ok {
				t.Fatal("no match, want one")
			}
			if got := tt.original[span.Start:span.End]; got != tt.want {
				t.Errorf("matched %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindStrategyOrder(t *testing.T) {
	m := New(false)

	// Exact wins even when a trimmed window appears earlier.
	original := "  b  \nb\n"
	span, ok := m.Find(original, "b", 0)
	if !ok {
		t.Fatal("no match")
	}
	if got := original[span.Start:span.End]; got != "b" {
		t.Errorf("matched %q, want exact %q", got, "b")
	}

	// Exact-only matcher refuses what the fallbacks would accept.
	exact := New(true)
	if _, ok := exact.Find("  b  \n", "b\n", 0); ok {
		t.Error("exact-only matcher should not fall back")
	}
}

func TestMostSimilarLine(t *testing.T) {
	content := "alpha\nbeta\ngamma\n"
	lineNum, line, ratio := MostSimilarLine(content, "betta")
	if lineNum != 2 || line != "beta" {
		t.Errorf("got line %d %q, want line 2 %q", lineNum, line, "beta")
	}
	if ratio < 0.5 {
		t.Errorf("ratio = %v, want >= 0.5", ratio)
	}
}
