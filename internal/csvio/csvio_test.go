package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anafaris/wedding-api/internal/models"
)

func TestParseDispatchesRowKinds(t *testing.T) {
	input := strings.Join([]string{
		"Item_name, Link, Total, Contributor, Amount, Timestamp",
		"Plates, http://x, 100, 0, 0,",
		"Plates, http://x, 100, John, 50, 2024-01-01T00:00:00",
	}, "\n")

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Declaration)
	assert.Nil(t, rows[0].Contribution)
	assert.Equal(t, "Plates", rows[0].Declaration.Name)
	assert.Equal(t, "http://x", rows[0].Declaration.Link)
	assert.Equal(t, "100", rows[0].Declaration.Total.String())

	require.NotNil(t, rows[1].Contribution)
	assert.Nil(t, rows[1].Declaration)
	assert.Equal(t, "John", rows[1].Contribution.Contributor)
	assert.Equal(t, "50", rows[1].Contribution.Amount.String())
	assert.Equal(t, "100", rows[1].Contribution.Total.String())
	assert.Equal(t, 2024, rows[1].Contribution.Timestamp.Year())
}

func TestParseMalformedAmountReportsRow(t *testing.T) {
	input := strings.Join([]string{
		"Item_name, Link, Total, Contributor, Amount, Timestamp",
		"Plates, http://x, 100, 0, 0,",
		"Plates, http://x, 100, John, abc, 2024-01-01T00:00:00Z",
	}, "\n")

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)

	parseErr, ok := err.(*models.ParseError)
	require.True(t, ok, "expected a ParseError, got %T", err)
	assert.Equal(t, 2, parseErr.Row)
	assert.Contains(t, parseErr.Error(), "row 2")
	assert.Contains(t, parseErr.Error(), "Amount")
}

func TestParseRejectsBadHeader(t *testing.T) {
	input := "Name, Url, Goal, Who, Much, When\nPlates, http://x, 100, 0, 0,\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)

	parseErr, ok := err.(*models.ParseError)
	require.True(t, ok)
	assert.Equal(t, 0, parseErr.Row)
}

func TestParseValidatesAmountOnItemRows(t *testing.T) {
	cases := map[string]struct {
		row string
		ok  bool
	}{
		"garbage amount":  {"Plates, http://x, 100, 0, abc,", false},
		"nonzero amount":  {"Plates, http://x, 100, 0, 50,", false},
		"zero amount":     {"Plates, http://x, 100, 0, 0,", true},
		"blank amount":    {"Plates, http://x, 100, 0, ,", true},
		"negative amount": {"Plates, http://x, 100, 0, -1,", false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			input := "Item_name, Link, Total, Contributor, Amount, Timestamp\n" + tc.row + "\n"
			rows, err := Parse(strings.NewReader(input))
			if tc.ok {
				require.NoError(t, err)
				require.Len(t, rows, 1)
				assert.NotNil(t, rows[0].Declaration)
				return
			}
			parseErr, ok := err.(*models.ParseError)
			require.True(t, ok, "expected a ParseError, got %v", err)
			assert.Equal(t, 1, parseErr.Row)
		})
	}
}

func TestParseRejectsNonPositiveValues(t *testing.T) {
	cases := map[string]string{
		"zero total":      "Plates, http://x, 0, 0, 0,",
		"negative amount": "Plates, http://x, 100, John, -5, 2024-01-01T00:00:00Z",
		"empty name":      ", http://x, 100, 0, 0,",
	}

	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			input := "Item_name, Link, Total, Contributor, Amount, Timestamp\n" + row + "\n"
			_, err := Parse(strings.NewReader(input))
			require.Error(t, err)
			parseErr, ok := err.(*models.ParseError)
			require.True(t, ok)
			assert.Equal(t, 1, parseErr.Row)
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.RegistryItem{
		{
			ID:    "plates",
			Name:  "Plates",
			Link:  "http://x",
			Total: decimal.NewFromInt(100),
			Contributions: []models.Contribution{
				{ContributorName: "John", Amount: decimal.NewFromInt(50), Timestamp: ts},
			},
		},
	}

	out, err := Serialize(items)
	require.NoError(t, err)

	rows, err := Parse(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Declaration)
	assert.Equal(t, "Plates", rows[0].Declaration.Name)
	assert.Equal(t, "100", rows[0].Declaration.Total.String())

	require.NotNil(t, rows[1].Contribution)
	assert.Equal(t, "John", rows[1].Contribution.Contributor)
	assert.Equal(t, "50", rows[1].Contribution.Amount.String())
	assert.True(t, rows[1].Contribution.Timestamp.Equal(ts))
}

func TestSerializeRSVPs(t *testing.T) {
	rsvps := []models.RSVP{
		{Name: "Aisyah", Pax: 2, Wishes: "Congrats!", Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	}

	out, err := SerializeRSVPs(rsvps)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Pax,Wishes,Timestamp", lines[0])
	assert.Equal(t, "Aisyah,2,Congrats!,2024-06-01T12:00:00Z", lines[1])
}

func TestTemplateParses(t *testing.T) {
	rows, err := Parse(bytes.NewReader(Template()))
	require.NoError(t, err)

	var declarations, contributions int
	for _, row := range rows {
		if row.Declaration != nil {
			declarations++
		} else {
			contributions++
		}
	}
	assert.Equal(t, 2, declarations)
	assert.Equal(t, 2, contributions)
}
