package deck

import "testing"

func TestNewCardValue(t *testing.T) {
	tests := []struct {
		rank Rank
		want int
	}{
		{Ace, 1},
		{Two, 2},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
	}

	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			c := NewCard(Spades, tt.rank)
			if c.Value() != tt.want {
				t.Errorf("NewCard(%s).Value() = %d, want %d", tt.rank, c.Value(), tt.want)
			}
		})
	}
}

func TestCardPredicates(t *testing.T) {
	ace := NewCard(Hearts, Ace)
	if !ace.IsAce() || ace.IsTenValue() {
		t.Errorf("ace predicates wrong for %s", ace)
	}
	queen := NewCard(Clubs, Queen)
	if queen.IsAce() || !queen.IsTenValue() {
		t.Errorf("queen predicates wrong for %s", queen)
	}
	if !ace.IsRed() || queen.IsRed() {
		t.Error("IsRed() should follow the suit")
	}
	if !(Card{}).IsZero() || ace.IsZero() {
		t.Error("only the zero Card should report IsZero")
	}
	if got := NewCard(Diamonds, Ten).Describe(); got != "10 of Diamonds" {
		t.Errorf("Describe() = %q", got)
	}
	if got := NewCard(Spades, King).String(); got != "K♠" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack",
			input: "AsKh",
			expected: []Card{
				NewCard(Spades, Ace),
				NewCard(Hearts, King),
			},
		},
		{
			name:  "ten spelled two ways",
			input: "10d Tc",
			expected: []Card{
				NewCard(Diamonds, Ten),
				NewCard(Clubs, Ten),
			},
		},
		{
			name:  "symbols and commas",
			input: "7♣, 5♥",
			expected: []Card{
				NewCard(Clubs, Seven),
				NewCard(Hearts, Five),
			},
		},
		{
			name:  "case insensitive",
			input: "aSqD",
			expected: []Card{
				NewCard(Spades, Ace),
				NewCard(Diamonds, Queen),
			},
		},
		{
			name:    "invalid rank",
			input:   "XsKs",
			wantErr: true,
		},
		{
			name:    "lone one",
			input:   "1s",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AsKx",
			wantErr: true,
		},
		{
			name:    "missing suit",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !cardsEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("Jh")
	if err != nil {
		t.Fatalf("ParseCard() error = %v", err)
	}
	if c != NewCard(Hearts, Jack) {
		t.Errorf("ParseCard() = %v", c)
	}

	if _, err := ParseCard("JhQs"); err == nil {
		t.Error("ParseCard() should reject more than one card")
	}
}

func TestMustParseCards(t *testing.T) {
	cards := MustParseCards("As Ks")
	expected := []Card{NewCard(Spades, Ace), NewCard(Spades, King)}
	if !cardsEqual(cards, expected) {
		t.Errorf("MustParseCards() = %v, want %v", cards, expected)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCards() should panic on invalid input")
		}
	}()
	MustParseCards("invalid")
}

func cardsEqual(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
