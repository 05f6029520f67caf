package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	meter := [][]int{{1, 0, 1}, {1, 0, 1}}
	scheme := []int{1, 1}

	tests := []struct {
		name    string
		lines   [][]Word
		wantErr bool
	}{
		{
			name: "valid couplet",
			lines: [][]Word{
				{w("Rot", "ot", 1), w("Gewinnt", "innt", 0, 1)},
				{w("Tag", "ag", 1), w("Zerrinnt", "innt", 0, 1)},
			},
		},
		{
			name:    "missing line",
			lines:   [][]Word{{w("Rot", "ot", 1), w("Gewinnt", "innt", 0, 1)}},
			wantErr: true,
		},
		{
			name: "wrong meter",
			lines: [][]Word{
				{w("Rot", "ot", 1), w("Gewinnt", "innt", 0, 1)},
				{w("Zerrinnt", "innt", 0, 1), w("Tag", "ag", 1)},
			},
			wantErr: true,
		},
		{
			name: "rhyme mismatch",
			lines: [][]Word{
				{w("Rot", "ot", 1), w("Gewinnt", "innt", 0, 1)},
				{w("Tag", "ag", 1), w("Verlust", "ust", 0, 1)},
			},
			wantErr: true,
		},
		{
			name: "word used twice",
			lines: [][]Word{
				{w("Rot", "ot", 1), w("Gewinnt", "innt", 0, 1)},
				{w("Rot", "ot", 1), w("Zerrinnt", "innt", 0, 1)},
			},
			wantErr: true,
		},
		{
			name:    "empty line",
			lines:   [][]Word{{w("Rot", "ot", 1), w("Gewinnt", "innt", 0, 1)}, {}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(meter, scheme, tt.lines)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedPoem)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
