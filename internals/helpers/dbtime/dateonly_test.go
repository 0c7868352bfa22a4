package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "tanggal polos", in: "2026-03-02", want: "2026-03-02"},
		{name: "dengan spasi", in: "  2026-03-02 ", want: "2026-03-02"},
		{name: "timestamp penuh diambil tanggalnya", in: "2026-03-02T15:04:05Z", want: "2026-03-02"},
		{name: "format salah", in: "02-03-2026", wantErr: true},
		{name: "kosong", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestFromTimeNormalizesToUTCMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// jam & zona dibuang: kunci (class, date) harus stabil lintas zona input
	local := time.Date(2026, 3, 2, 23, 30, 0, 0, loc)
	d := FromTime(local)

	assert.Equal(t, "2026-03-02", d.String())
	assert.Equal(t, time.UTC, d.Time.Location())
	assert.Zero(t, d.Time.Hour())
}

func TestDateOnlyEqual(t *testing.T) {
	a, err := ParseDate("2026-03-02")
	require.NoError(t, err)
	b := FromTime(time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC))
	c, err := ParseDate("2026-03-03")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestDateOnlyJSON(t *testing.T) {
	d, err := ParseDate("2026-03-02")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-02"`, string(raw))

	var back DateOnly
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back))
}

func TestDateOnlyValue(t *testing.T) {
	d, err := ParseDate("2026-03-02")
	require.NoError(t, err)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", v)

	var zero DateOnly
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
