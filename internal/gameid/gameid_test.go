package gameid

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/randutil"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	require.Len(t, id, 26)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	clock := quartz.NewMock(t)
	g := NewGenerator(clock, randutil.New(1))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, g.Generate())
		clock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestGenerateDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	a := NewGenerator(clock, randutil.New(9)).Generate()
	b := NewGenerator(clock, randutil.New(9)).Generate()
	assert.Equal(t, a, b)
	assert.NoError(t, Validate(a))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "too short", id: "abc", wantErr: true},
		{name: "bad character", id: "0123456789abcdefghjkmnpqiu", wantErr: true},
		{name: "trailing bits set", id: "0123456789abcdefghjkmnpqr1", wantErr: true},
		{name: "valid", id: "0123456789abcdefghjkmnpqr0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
