package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDecodeLedger_Formats(t *testing.T) {
	testCases := []struct {
		file, selector, content string
	}{
		{"pea.jsonl", "", `{"command":"deposit","date":"2024-01-01","amount":1000}
{"command":"value","date":"2024-12-31","amount":1100}
`},
		{"pea.yaml", "", `entries:
  - {command: deposit, date: 2024-01-01, amount: 1000}
  - {command: value, date: 2024-12-31, amount: 1100}
`},
		{"pea.YML", "", `entries:
  - {command: deposit, date: 2024-01-01, amount: 1000}
  - {command: value, date: 2024-12-31, amount: 1100}
`},
		{"export.json", "$.account.lines", `{"account":{"lines":[
  {"command":"deposit","date":"2024-01-01","amount":1000},
  {"command":"value","date":"2024-12-31","amount":1100}
]}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			l, err := DecodeLedger(writeFile(t, tc.file, tc.content), tc.selector)
			require.NoError(t, err)
			assert.Equal(t, 2, l.Len())
		})
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	_, err := DecodeLedger(filepath.Join(t.TempDir(), "missing.jsonl"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = DecodeLedger(writeFile(t, "bad.jsonl", "not json\n"), "")
	assert.ErrorContains(t, err, "bad.jsonl")
}

func TestAppendEntry(t *testing.T) {
	file := filepath.Join(t.TempDir(), "ledger.jsonl")
	day := date.MustParse

	require.NoError(t, appendEntry(file, returns.NewDeposit(day("2024-01-01"), returns.M(1000, "EUR"), "initial")))
	require.NoError(t, appendEntry(file, returns.NewValue(day("2024-12-31"), returns.M(1100, "EUR"), "")))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `{"command":"deposit","date":"2024-01-01","currency":"EUR","amount":1000,"memo":"initial"}
{"command":"value","date":"2024-12-31","currency":"EUR","amount":1100}
`, string(content))

	// a second currency is rejected and the file is left untouched
	err = appendEntry(file, returns.NewDeposit(day("2025-01-01"), returns.M(10, "USD"), ""))
	assert.Error(t, err)
	after, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, content, after)
}

func TestAppendEntry_OnlyJSONL(t *testing.T) {
	file := writeFile(t, "ledger.yaml", "entries: []\n")
	err := appendEntry(file, returns.NewDeposit(date.MustParse("2024-01-01"), returns.M(1, ""), ""))
	assert.ErrorContains(t, err, "only .jsonl")
}

func TestRangeFlags(t *testing.T) {
	l := returns.NewLedger()
	day := date.MustParse
	require.NoError(t, l.Append(
		returns.NewDeposit(day("2024-01-10"), returns.M(1000, ""), ""),
		returns.NewValue(day("2024-11-20"), returns.M(1100, ""), ""),
	))

	testCases := []struct {
		name string
		rng  rangeFlags
		want date.Range
	}{
		{"whole ledger", rangeFlags{}, date.NewRange(day("2024-01-10"), day("2024-11-20"))},
		{"end date", rangeFlags{date: "2024-06-30"}, date.NewRange(day("2024-01-10"), day("2024-06-30"))},
		{"start date", rangeFlags{start: "2024-02-01"}, date.NewRange(day("2024-02-01"), day("2024-11-20"))},
		{"period", rangeFlags{period: "month"}, date.NewRange(day("2024-11-01"), day("2024-11-30"))},
		{"quarter containing the date", rangeFlags{period: "quarter", date: "2024-05-15"}, date.NewRange(day("2024-04-01"), day("2024-06-30"))},
		{"start overrides period", rangeFlags{period: "year", start: "2024-03-01", date: "2024-04-01"}, date.NewRange(day("2024-03-01"), day("2024-04-01"))},
		{"before the ledger", rangeFlags{date: "2023-12-31"}, date.NewRange(day("2023-12-31"), day("2023-12-31"))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.rng.Range(l)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []rangeFlags{
		{date: "someday"},
		{start: "someday"},
		{period: "decade"},
		{start: "2024-12-01", date: "2024-11-01"},
	} {
		_, err := bad.Range(l)
		assert.Error(t, err, "%+v", bad)
	}
}
