//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMetrics() ResumeMetrics {
	return ResumeMetrics{
		BuzzwordBingo:    2,
		FluffFactor:      4.5,
		PassivePatty:     1,
		SuperlativeSlam:  0,
		JargonJolt:       3.2,
		NumberCruncher:   7,
		VerbVibes:        60,
		SentenceSauna:    12.5,
		HyperboleHunter:  1,
		PunctuationParty: 1.8,
		RoastCharacter:   "Captain Synergy",
		RoastScore:       71,
		TopBuzzword:      "synergy",
		Name:             "Jane Doe",
	}
}

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Count
		wantErr bool
	}{
		{name: "integer", input: `3`, want: 3},
		{name: "integral float", input: `3.0`, want: 3},
		{name: "exponent", input: `1e2`, want: 100},
		{name: "negative integer", input: `-2`, want: -2},
		{name: "fractional", input: `2.5`, wantErr: true},
		{name: "string", input: `"3"`, wantErr: true},
		{name: "too large", input: `1e20`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Count
			err := json.Unmarshal([]byte(tt.input), &c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestResumeMetrics_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(validMetrics())
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	expected := []string{
		"buzzwordBingo", "fluffFactor", "passivePatty", "superlativeSlam",
		"jargonJolt", "numberCruncher", "verbVibes", "sentenceSauna",
		"hyperboleHunter", "punctuationParty", "roastCharacter", "roastScore",
		"topBuzzword", "name",
	}
	assert.Len(t, fields, len(expected))
	for _, key := range expected {
		assert.Contains(t, fields, key)
	}
}

func TestResumeMetrics_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(m *ResumeMetrics)
		wantField string
	}{
		{name: "valid", mutate: func(m *ResumeMetrics) {}},
		{name: "empty top buzzword allowed", mutate: func(m *ResumeMetrics) { m.TopBuzzword = "" }},
		{name: "boundary percentages", mutate: func(m *ResumeMetrics) { m.FluffFactor = 100; m.VerbVibes = 0 }},
		{name: "fluff over 100", mutate: func(m *ResumeMetrics) { m.FluffFactor = 120 }, wantField: "fluffFactor"},
		{name: "negative passive count", mutate: func(m *ResumeMetrics) { m.PassivePatty = -1 }, wantField: "passivePatty"},
		{name: "roast score over 100", mutate: func(m *ResumeMetrics) { m.RoastScore = 101 }, wantField: "roastScore"},
		{name: "negative jargon", mutate: func(m *ResumeMetrics) { m.JargonJolt = -0.5 }, wantField: "jargonJolt"},
		{name: "missing character", mutate: func(m *ResumeMetrics) { m.RoastCharacter = "" }, wantField: "roastCharacter"},
		{name: "whitespace character", mutate: func(m *ResumeMetrics) { m.RoastCharacter = " \t\n " }, wantField: "roastCharacter"},
		{name: "sauna over 100", mutate: func(m *ResumeMetrics) { m.SentenceSauna = 100.1 }, wantField: "sentenceSauna"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMetrics()
			tt.mutate(&m)

			err := m.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var rangeErr *RangeError
			require.True(t, errors.As(err, &rangeErr))
			require.Len(t, rangeErr.Violations, 1)
			assert.Equal(t, tt.wantField, rangeErr.Violations[0].Field)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestResumeMetrics_Validate_BlankCharacterRule(t *testing.T) {
	m := validMetrics()
	m.RoastCharacter = "   "

	var rangeErr *RangeError
	require.True(t, errors.As(m.Validate(), &rangeErr))
	require.Len(t, rangeErr.Violations, 1)
	assert.Equal(t, "notblank", rangeErr.Violations[0].Rule)
	assert.Equal(t, "   ", rangeErr.Violations[0].Value)
}

func TestRoastRequest_Decode(t *testing.T) {
	var req RoastRequest
	require.NoError(t, json.Unmarshal([]byte(`{"text":"Led a team"}`), &req))
	assert.Equal(t, "Led a team", req.Text)

	var missing RoastRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Empty(t, missing.Text)
}
