package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{BinNumber, "BIN_NUMBER"},
		{ShiftRightAssign, "SHIFT_RIGHT_ASSIGN"},
		{ConsoleWriteLine, "CONSOLE_WRITELINE"},
		{EOF, "EOF"},
		{Kind(999), "Kind(999)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}

func TestEqualComparesAllFields(t *testing.T) {
	base := New(Number, "42", int64(42), 1, 1)

	tests := []struct {
		name  string
		other Token
		want  bool
	}{
		{"identical", New(Number, "42", int64(42), 1, 1), true},
		{"kind", New(HexNumber, "42", int64(42), 1, 1), false},
		{"lexeme", New(Number, "042", int64(42), 1, 1), false},
		{"literal", New(Number, "42", int64(41), 1, 1), false},
		{"literal type", New(Number, "42", float64(42), 1, 1), false},
		{"line", New(Number, "42", int64(42), 2, 1), false},
		{"column", New(Number, "42", int64(42), 1, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Expected Equal=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := New(String, `"hi"`, "hi", 3, 5)
	b := New(String, `"hi"`, "hi", 3, 5)
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Error("Expected equal tokens to hash equally")
	}

	c := New(String, `"hi"`, "hi", 3, 6)
	if a.Hash() == c.Hash() {
		t.Error("Expected different columns to change the hash")
	}

	// int64(1) and rune(1) must not collide
	i := New(Number, "1", int64(1), 1, 1)
	r := New(Number, "1", rune(1), 1, 1)
	if i.Hash() == r.Hash() {
		t.Error("Expected literal payload type to be part of the hash")
	}
}
