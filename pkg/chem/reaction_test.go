package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionInvolves(t *testing.T) {
	r := Reaction{ElementsInvolved: []string{"Fe", "O"}}

	assert.True(t, r.Involves("Fe"))
	assert.True(t, r.Involves("fe"))
	assert.True(t, r.Involves("O"))
	assert.False(t, r.Involves("Au"))
}

func TestParseReactionCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   ReactionCategory
		wantOK bool
	}{
		{"industrial", ReactionIndustrial, true},
		{"INDUSTRIAL", ReactionIndustrial, true},
		{"notable", ReactionNotable, true},
		{"kitchen", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseReactionCategory(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReactionTypeMatches(t *testing.T) {
	assert.True(t, ReactionCombustion.Matches("combustion"))
	assert.True(t, ReactionCombustion.Matches("COMBUSTION"))
	assert.False(t, ReactionCombustion.Matches("redox"))
	assert.True(t, ReactionType("steam reforming").Matches("Steam Reforming"))
}

func TestDecodeReactions(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantLen int
		wantErr bool
	}{
		{"bare array", `[{"id": "a"}, {"id": "b"}]`, 2, false},
		{"wrapper object", `{"reactions": [{"id": "a"}]}`, 1, false},
		{"empty array", `[]`, 0, false},
		{"wrapper missing key", `{"rxns": []}`, 0, true},
		{"garbage", `not json`, 0, true},
		{"empty file", ``, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rxns, err := DecodeReactions([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rxns, tt.wantLen)
		})
	}
}
