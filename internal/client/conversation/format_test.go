package conversation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount_VietnameseGrouping(t *testing.T) {
	require.Equal(t, "-60.000 ₫", FormatAmount(-60000))
	require.Equal(t, "1.000.000 ₫", FormatAmount(1000000))
	require.Equal(t, "0 ₫", FormatAmount(0))
}

func TestFormatDate(t *testing.T) {
	require.Equal(t, "01/03/2025", FormatDate("2025-03-01"))
	require.Equal(t, "01/03/2025", FormatDate("2025-03-01T00:00:00"))
	// Unparseable input passes through unchanged.
	require.Equal(t, "yesterday", FormatDate("yesterday"))
	require.Equal(t, "", FormatDate(""))
}
