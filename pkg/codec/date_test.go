package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeydtaylor/steeze-students/pkg/model"
)

func TestParseDateFormatLayouts(t *testing.T) {
	cases := map[string]string{
		"yyyy/MM/dd":   "2006/01/02",
		"dd.MM.yyyy":   "02.01.2006",
		"yyyy-M-d":     "2006-1-2",
		"d MMM yyyy":   "2 Jan 2006",
		"MMMM d, yyyy": "January 2, 2006",
		"yyyyMMdd":     "20060102",
	}
	for pattern, layout := range cases {
		t.Run(pattern, func(t *testing.T) {
			f, err := ParseDateFormat(pattern)
			require.NoError(t, err)
			assert.Equal(t, layout, f.Layout())
			assert.Equal(t, pattern, f.Pattern())
		})
	}
}

func TestParseDateFormatRejects(t *testing.T) {
	for _, pattern := range []string{
		"",
		"   ",
		"yy/MM/dd",
		"yyyy/MM",
		"yyyy/MMMMM/dd",
		"yyyy/MM/ddd",
		"yyyy/MM/dd HH",
		"yyyy_MM_dd",
		"yyyy/MM/dd'T'",
		"yyyy1MM/dd",
		"yyyyMd",
		"yyyy/Md",
		"dMyyyy",
		"yyyyMMd",
		"Md/yyyy",
		"yyyydMM",
	} {
		_, err := ParseDateFormat(pattern)
		assert.Error(t, err, "pattern %q", pattern)
	}
}

func TestDateFormatRoundTrip(t *testing.T) {
	dates := []model.Date{
		model.NewDate(1999, time.January, 1),
		model.NewDate(2000, time.February, 29),
		model.NewDate(2024, time.December, 31),
		model.NewDate(1001, time.July, 9),
	}
	for _, pattern := range []string{DefaultDatePattern, "dd.MM.yyyy", "d MMM yyyy", "MMMM d, yyyy", "yyyyMMdd"} {
		f := MustDateFormat(pattern)
		for _, d := range dates {
			got, err := f.Parse(f.Format(d))
			require.NoError(t, err, "pattern %q date %s", pattern, d)
			assert.Equal(t, d, got, "pattern %q", pattern)
		}
	}
}

func TestSeparatedSingleLetterTokensRoundTrip(t *testing.T) {
	jan15 := model.NewDate(2000, time.January, 15)
	for _, pattern := range []string{"yyyy/M/d", "d.M.yyyy", "MMMd yyyy", "dMMMyyyy"} {
		f, err := ParseDateFormat(pattern)
		require.NoError(t, err, pattern)
		got, err := f.Parse(f.Format(jan15))
		require.NoError(t, err, pattern)
		assert.Equal(t, jan15, got, pattern)
	}
}

func TestDefaultDateFormat(t *testing.T) {
	f := MustDateFormat(DefaultDatePattern)
	assert.Equal(t, "1999/01/01", f.Format(model.NewDate(1999, time.January, 1)))

	_, err := f.Parse("1999-01-01")
	assert.Error(t, err)
	_, err = f.Parse("1999/1/1")
	assert.Error(t, err)
}

func TestMustDateFormatPanics(t *testing.T) {
	assert.Panics(t, func() { MustDateFormat("nope") })
}
