package nakano

import (
	"testing"

	"libreader/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got := normalize([]string{"\t\tあ\nい\t ", "", "x"})
	assert.Equal(t, [][]string{{"あ", "い"}, {""}, {"x"}}, got)
}

func TestParseLoans(t *testing.T) {
	cells := []string{
		"1", "", "銀河鉄道の\n夜", "2024/04/20", "2024/05/04\n(土)", "中野東図書館", "", "", "予約あり", "",
		"2", "", "注文の多い料理店", "2024/04/21", "2024/05/05", "本町図書館", "", "", "", "",
	}

	items, err := parseLoans(cells)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "銀河鉄道の夜", first.Title)
	assert.Equal(t, "2024/04/20", first.CheckoutDate)
	assert.Equal(t, "2024/05/04", first.ReturnDate)
	assert.Equal(t, "中野東図書館", first.CheckoutLocation)
	assert.True(t, *first.IsReserved)
	assert.Empty(t, first.Category)
	assert.Nil(t, first.ReservedCount)

	assert.False(t, *items[1].IsReserved)
}

func TestParseLoansShortRow(t *testing.T) {
	_, err := parseLoans([]string{"1", "", "title", "2024/04/20"})
	assert.ErrorIs(t, err, scraper.ErrUnexpectedLayout)
}

func TestParseReservations(t *testing.T) {
	cells := []string{
		// regular record, status at offset+1
		"", "予約中", "2024/03/01\n予約順位\n3", "受取館\n中野図書館", "風の\n又三郎", "", "メール", "取消",
		// record with one extra cell before its status
		"", "受取館変更可", "取置済", "2024/02/01", "受取館\n東中野図書館", "セロ弾きのゴーシュ", "2024/05/10", "連絡方法\n電話", "",
	}

	items, err := parseReservations(cells)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "予約中", first.ReserveStatus)
	assert.Equal(t, "2024/03/01", first.ReserveDate)
	assert.Equal(t, "3", first.ReserveRank)
	assert.Equal(t, "中野図書館", first.ReceiveLocation)
	assert.Equal(t, "風の又三郎", first.Title)
	assert.Equal(t, "", first.ReserveExpireDate)
	assert.Equal(t, "メール", first.NotificationMethod)

	second := items[1]
	assert.Equal(t, "取置済", second.ReserveStatus)
	assert.Equal(t, "2024/02/01", second.ReserveDate)
	assert.Equal(t, "", second.ReserveRank)
	assert.Equal(t, "東中野図書館", second.ReceiveLocation)
	assert.Equal(t, "セロ弾きのゴーシュ", second.Title)
	assert.Equal(t, "2024/05/10", second.ReserveExpireDate)
	assert.Equal(t, "電話", second.NotificationMethod)
}

func TestParseReservationsEmpty(t *testing.T) {
	items, err := parseReservations(nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = parseReservations([]string{"該当する資料はありません"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParseReservationsTruncatedRecord(t *testing.T) {
	cells := []string{"", "予約中", "2024/03/01", "受取館\n中野図書館"}

	_, err := parseReservations(cells)
	assert.ErrorIs(t, err, scraper.ErrUnexpectedLayout)
}
