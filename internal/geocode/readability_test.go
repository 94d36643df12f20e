package geocode

import "testing"

func TestIsReadable(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Avenida Paulista", true},
		{"Parque Ibirapuera", true},
		{"Rua XV", true},
		{"89XF+RV", false},
		{"89xf+rv", false},
		{"8FVC9G8F+5W", false},
		{"1234", false},
		{"42", false},
		{"", false},
		{"  ", false},
		{"ab", false},
		{"Sé", false}, // two runes even though the accent takes two bytes
		{"Luz", true},
		{"Trés", true},
		{"  Centro  ", true},
	}

	for _, tt := range tests {
		if got := isReadable(tt.input); got != tt.want {
			t.Errorf("isReadable(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
