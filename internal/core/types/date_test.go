package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDateOrdering(t *testing.T) {
	a := MustDate("2024-03-01")
	b := MustDate("2024-03-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.True(t, a.Equal(MustDate("2024-03-01")))
}

func TestDateAddDays(t *testing.T) {
	d := MustDate("2024-02-28")

	// 2024 is a leap year
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2024-02-27", d.AddDays(-1).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	type payload struct {
		Due Date  `json:"due"`
		End *Date `json:"end,omitempty"`
	}

	raw := []byte(`{"due":"2024-03-15","end":null}`)
	var p payload
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "2024-03-15", p.Due.String())
	if p.End != nil {
		assert.True(t, p.End.IsZero())
	}

	out, err := json.Marshal(p.Due)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-15", d.String())

	require.NoError(t, d.Scan("2024-06-30"))
	assert.Equal(t, "2024-06-30", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := MustDate("2024-03-15").Value()
	require.NoError(t, err)
	ts, ok := v.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTodayUsesLocation(t *testing.T) {
	utc := Today(time.UTC)
	assert.False(t, utc.IsZero())

	// nil falls back to UTC
	assert.False(t, Today(nil).IsZero())
}
