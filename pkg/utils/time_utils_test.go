package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate(" 2024-06-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024/06/01", "01-06-2024", "2024-13-01", "2024-02-30", "2024-06-01T10:00:00Z"} {
		_, err := ParseISODate(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "Sat, 01 Jun 2024", FormatDisplayDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, FormatDisplayDate(time.Time{}))
}
