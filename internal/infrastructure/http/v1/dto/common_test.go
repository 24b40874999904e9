package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "plain date",
			input: `"2024-03-15"`,
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 truncated to date",
			input: `"2024-03-15T14:30:00Z"`,
			want:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "null is zero",
			input: `null`,
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOnly
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.True(t, d.Time.Equal(tt.want), "got %v, want %v", d.Time, tt.want)
		})
	}
}

func TestDateOnlyUnmarshalRejectsGarbage(t *testing.T) {
	var d DateOnly
	assert.Error(t, json.Unmarshal([]byte(`"15/03/2024"`), &d))
}

func TestDateOnlyMarshal(t *testing.T) {
	d := DateOnly{Time: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(out))
}
