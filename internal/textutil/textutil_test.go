package textutil

import (
	"reflect"
	"testing"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Crystal structure of   COX-1 ", "Crystal structure of COX-1"},
		{"italic", "Structure from <i>Homo sapiens</i> cells", "Structure from Homo sapiens cells"},
		{"entity", "Ca&sup2;&#43; binding &amp; release", "Ca²+ binding & release"},
		{"subscript", "H<sub>2</sub>O complex", "H2O complex"},
		{"script dropped", "a<script>alert(1)</script>b", "ab"},
		{"line break", "first<br>second", "first second"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.in); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"AU-2017374860-A1\nAU-2017374860-B2\n", []string{"AU-2017374860-A1", "AU-2017374860-B2"}},
		{"US-1-A\r\nUS-2-B\r\n", []string{"US-1-A", "US-2-B"}},
		{"\n\nEP-3\n\n", []string{"EP-3"}},
		{"", []string{}},
		{"   \n  ", []string{}},
	}

	for _, tt := range tests {
		got := SplitLines(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
