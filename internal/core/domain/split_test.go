package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_IsValid(t *testing.T) {
	assert.True(t, ModeLines.IsValid())
	assert.True(t, ModeSize.IsValid())
	assert.False(t, Mode("").IsValid())
	assert.False(t, Mode("tokens").IsValid())
	assert.False(t, Mode("LINES").IsValid())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "lines", ModeLines.String())
	assert.Equal(t, "size", ModeSize.String())
}

func TestParams_Int(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		want    int
		wantErr bool
	}{
		{"absent uses default", Params{}, 250, false},
		{"nil params uses default", nil, 250, false},
		{"nil value uses default", Params{"lines": nil}, 250, false},
		{"int", Params{"lines": 300}, 300, false},
		{"int64", Params{"lines": int64(300)}, 300, false},
		{"float64 integral", Params{"lines": float64(300)}, 300, false},
		{"json number", Params{"lines": json.Number("300")}, 300, false},
		{"numeric string", Params{"lines": " 300 "}, 300, false},
		{"zero", Params{"lines": 0}, 0, true},
		{"negative", Params{"lines": -5}, 0, true},
		{"fractional", Params{"lines": 2.5}, 0, true},
		{"non-numeric string", Params{"lines": "many"}, 0, true},
		{"bool", Params{"lines": true}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.Int(ParamLines, DefaultLines)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Clone(t *testing.T) {
	orig := Params{"lines": 10}
	clone := orig.Clone()
	clone["lines"] = 20

	assert.Equal(t, 10, orig["lines"])

	var nilParams Params
	empty := nilParams.Clone()
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestPieceID(t *testing.T) {
	assert.Equal(t, "0001", PieceID(1))
	assert.Equal(t, "0042", PieceID(42))
	assert.Equal(t, "9999", PieceID(9999))
	assert.Equal(t, "10000", PieceID(10000))
}

func TestManifest_JSONShape(t *testing.T) {
	m := Manifest{
		Source:    ManifestSource{Filename: "a.txt", SHA256: "abc", LengthChars: 3},
		CreatedAt: "2026-01-01T00:00:00.000000+00:00",
		Mode:      ModeLines,
		Params:    Params{},
		Pieces:    []ManifestPiece{{ID: "0001", LengthChars: 3}},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"source": {"filename": "a.txt", "sha256": "abc", "length_chars": 3},
		"created_at": "2026-01-01T00:00:00.000000+00:00",
		"mode": "lines",
		"params": {},
		"pieces": [{"id": "0001", "length_chars": 3}]
	}`, string(data))
	assert.False(t, m.Skipped())

	m.SkippedReason = SkippedBelowThreshold
	assert.True(t, m.Skipped())
}
