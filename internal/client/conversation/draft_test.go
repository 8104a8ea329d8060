package conversation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

func TestAcceptableAmountInput(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"", true},
		{"-", true},
		{"123", true},
		{"-123", true},
		{"0", true},
		{"-12a", false},
		{"12.5", false},
		{"1 000", false},
		{"+5", false},
		{"--1", false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.ok, acceptableAmountInput(tc.in), "input %q", tc.in)
	}
}

func TestSetInsertAmount_RejectsInvalidKeepsPrevious(t *testing.T) {
	d := models.InsertDraft{Items: []models.InsertItem{{Amount: "50000", Included: true}}}

	d2 := SetInsertAmount(d, 0, "-12a")
	require.Equal(t, "50000", d2.Items[0].Amount)

	d3 := SetInsertAmount(d, 0, "-")
	require.Equal(t, "-", d3.Items[0].Amount)
}

func TestSetInsertDescription_CopyOnWrite(t *testing.T) {
	d := models.InsertDraft{Items: []models.InsertItem{{Description: "coffee"}, {Description: "lunch"}}}

	d2 := SetInsertDescription(d, 0, "tea")
	require.Equal(t, "coffee", d.Items[0].Description)
	require.Equal(t, "tea", d2.Items[0].Description)
	require.Equal(t, "lunch", d2.Items[1].Description)
}

func TestSetInsertFields_OutOfRangeIndexIgnored(t *testing.T) {
	d := models.InsertDraft{Items: []models.InsertItem{{Description: "a"}}}

	require.Equal(t, d, SetInsertDescription(d, 5, "x"))
	require.Equal(t, d, SetInsertAmount(d, -1, "10"))
	require.Equal(t, d, SetInsertIncluded(d, 1, false))
}

func TestSetUpdateAmount_TolerantRule(t *testing.T) {
	d := models.UpdateDraft{TargetID: 7}

	d2 := SetUpdateAmount(d, "-")
	require.NotNil(t, d2.UpdatedAmount)
	require.Equal(t, "-", *d2.UpdatedAmount)

	d3 := SetUpdateAmount(d2, "abc")
	require.Equal(t, "-", *d3.UpdatedAmount)

	require.Nil(t, d.UpdatedAmount)
}

func TestSetDeleteIncluded_CopyOnWrite(t *testing.T) {
	d := models.DeleteDraft{Items: []models.DeleteItem{{ID: 1, Included: true}, {ID: 2, Included: true}}}

	d2 := SetDeleteIncluded(d, 1, false)
	require.True(t, d.Items[1].Included)
	require.False(t, d2.Items[1].Included)
}

func TestParseKeywords(t *testing.T) {
	require.Equal(t, []string{"ăn", "uống", "đi chơi"}, ParseKeywords("ăn, uống, , đi chơi"))
	require.Empty(t, ParseKeywords("  ,  , "))
	require.Equal(t, []string{"one"}, ParseKeywords("one"))
}
