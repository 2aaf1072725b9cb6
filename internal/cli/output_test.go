package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/ensemble/internal/domain/model"
)

func sampleResult() model.RankedResult {
	return model.RankedResult{
		Outfits: []model.OutfitCandidate{
			{
				Slots: []model.Slot{
					{Role: model.RoleTop, Item: model.Item{ID: "top-1234567890", Attributes: map[string]string{model.DimCategory: "tank top"}}},
					{Role: model.RoleBottom, Item: model.Item{ID: "bottom-1"}},
				},
				Score:      72.5,
				TotalPrice: 135,
				Breakdown: model.OutfitBreakdown{
					CohesionBonus: 4.2,
					Penalties:     []model.ScoreLine{{Name: "over_budget", Value: 3}},
				},
			},
		},
		FallbackNotices: []model.FallbackNotice{
			{Role: model.RoleShoes, Reason: "no available candidates; role omitted from outfits"},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleResult()))

	var decoded model.RankedResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Outfits, 1)
	assert.Equal(t, 72.5, decoded.Outfits[0].Score)
	assert.Equal(t, model.RoleShoes, decoded.FallbackNotices[0].Role)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "top:tank top")
	assert.Contains(t, out, "bottom-1")
	assert.Contains(t, out, "over_budget")
	assert.Contains(t, out, "[shoes]")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	res := model.RankedResult{
		FallbackNotices: []model.FallbackNotice{{Reason: "no outfits could be assembled from the available inventory"}},
	}
	require.NoError(t, writeTable(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "no outfits matched the request")
	assert.Contains(t, out, "no outfits could be assembled")
}

func TestHelperText(t *testing.T) {
	assert.Equal(t, "-", penaltiesText(nil))
	assert.Equal(t, "top, shoes", rolesText([]model.Role{model.RoleTop, model.RoleShoes}))
	assert.Equal(t, "short", shortID("short"))
	assert.Equal(t, "abcdefgh", shortID("abcdefghijkl"))

	slots := []model.Slot{{Role: model.RoleShoes, Item: model.Item{ID: "shoe-id-long"}}}
	assert.Equal(t, "shoes:shoe-id-", slotsText(slots))

	if !strings.Contains(noticeText(model.FallbackNotice{Reason: "x"}), "x") {
		t.Error("noticeText should carry the reason")
	}
}
