package archive

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateStamp_Compare(t *testing.T) {
	cases := []struct {
		name string
		a, b DateStamp
		want int
	}{
		{"equal", NewDateStamp(2020, 1, 2, ""), NewDateStamp(2020, 1, 2, "00:00"), 0},
		{"year", NewDateStamp(2019, 12, 31, "23:59"), NewDateStamp(2020, 1, 1, ""), -1},
		{"month", NewDateStamp(2020, 3, 1, ""), NewDateStamp(2020, 2, 28, ""), 1},
		{"day", NewDateStamp(2020, 1, 2, ""), NewDateStamp(2020, 1, 5, ""), -1},
		{"time", NewDateStamp(2020, 1, 2, "09:30"), NewDateStamp(2020, 1, 2, "10:00"), -1},
		{"padded hour", NewDateStamp(2020, 1, 2, "9:30"), NewDateStamp(2020, 1, 2, "10:00"), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Compare(tc.b))
			require.Equal(t, -tc.want, tc.b.Compare(tc.a))
		})
	}
}

func TestDateStamp_Format(t *testing.T) {
	d := NewDateStamp(2021, 4, 7, "")
	require.Equal(t, "2021-04-07", d.Date())
	require.Equal(t, "2021-04-07 00:00", d.String())
	require.Equal(t, "00:00", DateStamp{Year: 2021, Month: 1, Day: 1}.Clock())
}

func TestParseDateStamp(t *testing.T) {
	cases := map[string]DateStamp{
		"2020-01-02":                NewDateStamp(2020, 1, 2, ""),
		"2020-1-2 7:05":             NewDateStamp(2020, 1, 2, "07:05"),
		"2020-01-02T13:45:10Z":      NewDateStamp(2020, 1, 2, "13:45"),
		" 2020-01-02 13:45 ":        NewDateStamp(2020, 1, 2, "13:45"),
		"2020-01-02T13:45:00+02:00": NewDateStamp(2020, 1, 2, "13:45"),
	}
	for in, want := range cases {
		got, err := ParseDateStamp(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseDateStamp("yesterday")
	require.Error(t, err)
}

func TestDateStamp_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A DateStamp `json:"a"`
		B DateStamp `json:"b"`
		C DateStamp `json:"c"`
		D DateStamp `json:"d"`
	}
	raw := `{"a": {"year": 2020, "month": 1, "day": 5, "time": "12:00"},
	         "b": {"year": "2020", "month": "2", "day": "3"},
	         "c": "2019-11-30 08:15",
	         "d": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Equal(t, NewDateStamp(2020, 1, 5, "12:00"), payload.A)
	require.Equal(t, NewDateStamp(2020, 2, 3, ""), payload.B)
	require.Equal(t, NewDateStamp(2019, 11, 30, "08:15"), payload.C)
	require.True(t, payload.D.IsZero())
}

func TestDateStamp_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(NewDateStamp(2020, 1, 2, ""))
	require.NoError(t, err)
	require.JSONEq(t, `{"year":2020,"month":1,"day":2,"time":"00:00"}`, string(out))
}
