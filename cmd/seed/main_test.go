package main

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCatalog(t *testing.T) {
	input := `[{
		"id": "camp-1",
		"name": "Art Barn",
		"camp_sessions": [{"start_date": "2025-06-10", "end_date": "2025-06-14", "days_of_week": ["Monday"]}],
		"camp_interests": [{"tag": "Art"}, {"id": "i-2", "interest_name": "Painting"}]
	}, {
		"name": "Robot Lab",
		"camp_sessions": [],
		"camp_interests": []
	}]`

	camps, err := readCatalog(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, camps, 2)

	assert.Equal(t, "camp-1", camps[0].ID)
	require.Len(t, camps[0].Sessions, 1)
	_, err = uuid.Parse(camps[0].Sessions[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Monday"}, camps[0].Sessions[0].DaysOfWeek)
	assert.Equal(t, "i-2", camps[0].Interests[1].ID)
	assert.NotEmpty(t, camps[0].Interests[0].ID)

	_, err = uuid.Parse(camps[1].ID)
	assert.NoError(t, err)
}

func TestReadCatalog_Invalid(t *testing.T) {
	_, err := readCatalog(strings.NewReader(`{"not": "a list"}`))
	assert.Error(t, err)

	_, err = readCatalog(strings.NewReader(`[{"id": "x", "name": "  "}]`))
	assert.ErrorContains(t, err, "name is required")
}
