package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024/05/10", "2024-05-10", true},
		{"2024/5/1(水)", "2024-05-01", true},
		{"返却期日： 2024-12-31", "2024-12-31", true},
		{"2024.1.9", "2024-01-09", true},
		{"2024年3月7日", "2024-03-07", true},
		{"２０２４／０６／０１", "2024-06-01", true},
		{"R6.5.10", "2024-05-10", true},
		{"令和6年5月10日", "2024-05-10", true},
		{"令和元年5月1日", "2019-05-01", true},
		{"H31.4.30", "2019-04-30", true},
		{"2024/02/30", "", false},
		{"", "", false},
		{"未定", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestLoanItemExpired(t *testing.T) {
	today := time.Date(2024, 5, 10, 15, 0, 0, 0, Tokyo)

	assert.True(t, LoanItem{ReturnDate: "2024/05/09"}.Expired(today))
	assert.False(t, LoanItem{ReturnDate: "2024/05/10"}.Expired(today))
	assert.False(t, LoanItem{ReturnDate: "2024/05/11"}.Expired(today))
	assert.False(t, LoanItem{ReturnDate: ""}.Expired(today))

	// 23:30 UTC on the 9th is already the 10th in Tokyo.
	utc := time.Date(2024, 5, 9, 23, 30, 0, 0, time.UTC)
	assert.True(t, LoanItem{ReturnDate: "2024/05/09"}.Expired(utc))
}

func TestCredentialsStringRedactsPassword(t *testing.T) {
	c := Credentials{UserID: "0123456", Password: "secret"}
	assert.NotContains(t, c.String(), "secret")
	assert.Contains(t, c.String(), "0123456")
}

func TestResultJSONKeys(t *testing.T) {
	r := Result{
		Region: "minato",
		Loans: []LoanItem{{
			Title:         "Go言語",
			ReservedCount: IntPtr(2),
			IsReserved:    BoolPtr(true),
		}},
		Reservations: []ReservationItem{{Title: "本", ReserveRank: "3"}},
	}

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Contains(t, got, "lent_items")
	assert.Contains(t, got, "reserve_items")

	loan := got["lent_items"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(2), loan["reserved_count"])
	assert.Nil(t, loan["extend_count"])
	assert.Nil(t, loan["is_extendable"])
}
