package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const utcPolicy = "timezone: UTC\n"

const janRecords = `
records:
  - clock_in: "2023-01-10T09:00:00Z"
    clock_out: "2023-01-10T18:00:00Z"
    break_start: "2023-01-10T12:00:00Z"
    break_end: "2023-01-10T13:00:00Z"
  - clock_in: "2023-01-11T22:00:00Z"
    clock_out: "2023-01-12T02:00:00Z"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSummaryText(t *testing.T) {
	policy := writeFile(t, "wage.yaml", utcPolicy)
	records := writeFile(t, "records.yaml", janRecords)

	out, err := run(t, "summary", "--policy", policy, "--records", records, "--year", "2023", "--month", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Total worked: 13:00\n")
	assert.Contains(t, out, "Total wage:   13,500\n")
	assert.Contains(t, out, "8,000")
	assert.Contains(t, out, "5,500")
	assert.Contains(t, out, "2 closed, 0 open")
}

func TestSummaryNet(t *testing.T) {
	policy := writeFile(t, "wage.yaml", utcPolicy)
	records := writeFile(t, "records.yaml", janRecords)

	out, err := run(t, "summary", "--policy", policy, "--records", records, "--year", "2023", "--month", "1", "--net")
	require.NoError(t, err)
	assert.Contains(t, out, "Total worked: 12:00\n")
}

func TestSummaryJSON(t *testing.T) {
	policy := writeFile(t, "wage.yaml", utcPolicy)
	records := writeFile(t, "records.json", `[
		{"clock_in": "2023-01-10T22:00:00Z", "clock_out": "2023-01-11T02:00:00Z"}
	]`)

	out, err := run(t, "summary", "--format", "json", "--policy", policy, "--records", records, "--year", "2023", "--month", "1")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			TotalWorkDuration string `json:"total_work_duration"`
			TotalWage         int64  `json:"total_wage"`
			Consistent        bool   `json:"consistent"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "04:00", resp.Data.TotalWorkDuration)
	assert.Equal(t, int64(5500), resp.Data.TotalWage)
	assert.True(t, resp.Data.Consistent)
}

func TestSummaryCapFromPolicy(t *testing.T) {
	policy := writeFile(t, "wage.yaml", utcPolicy+"monthly_cap_minutes: 300\n")
	records := writeFile(t, "records.yaml", janRecords)

	out, err := run(t, "summary", "--policy", policy, "--records", records, "--year", "2023", "--month", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Total worked: 05:00 (capped)\n")
	assert.Contains(t, out, "Total wage:   13,500\n")
}

func TestSummaryInconsistentRecords(t *testing.T) {
	policy := writeFile(t, "wage.yaml", utcPolicy)
	records := writeFile(t, "records.yaml", `
- clock_in: "2023-01-10T09:00:00Z"
- clock_in: "2023-01-11T09:00:00Z"
`)

	out, err := run(t, "summary", "--policy", policy, "--records", records, "--year", "2023", "--month", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "INCONSISTENT_RECORDS")
	assert.Contains(t, out, "multiple_open")
	assert.NotContains(t, out, "Total worked")
}

func TestSummaryRequiresFlags(t *testing.T) {
	_, err := run(t, "summary", "--year", "2023", "--month", "1")
	assert.Error(t, err)

	records := writeFile(t, "records.yaml", janRecords)
	_, err = run(t, "summary", "--records", records, "--year", "2023", "--month", "13")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateOK(t *testing.T) {
	policy := writeFile(t, "wage.yaml", utcPolicy)
	records := writeFile(t, "records.yaml", janRecords)

	out, err := run(t, "validate", "--policy", policy, "--records", records)
	require.NoError(t, err)
	assert.Equal(t, "OK: 2 record(s) are consistent\n", out)
}

func TestValidateOverlapJSON(t *testing.T) {
	policy := writeFile(t, "wage.yaml", utcPolicy)
	records := writeFile(t, "records.yaml", `
- {clock_in: "2023-01-10T09:00:00Z", clock_out: "2023-01-10T18:00:00Z"}
- {clock_in: "2023-01-10T17:00:00Z", clock_out: "2023-01-10T19:00:00Z"}
`)

	out, err := run(t, "validate", "--format", "json", "--policy", policy, "--records", records)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INCONSISTENT_RECORDS", resp.Error.Code)
	assert.Contains(t, out, `"kind":"overlap"`)
}

func TestValidateBadTimestamp(t *testing.T) {
	records := writeFile(t, "records.yaml", `- {clock_in: "10 Jan 2023"}`)

	_, err := run(t, "validate", "--records", records)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorContains(t, err, "10 Jan 2023")
}

func TestValidateMissingFile(t *testing.T) {
	_, err := run(t, "validate", "--records", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "tiers", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTiers(t *testing.T) {
	out, err := run(t, "tiers")
	require.NoError(t, err)

	assert.Contains(t, out, "Timezone: Asia/Tokyo")
	assert.Contains(t, out, "Monthly cap: 9600 minutes")
	assert.Contains(t, out, "00:00-03:00")
	assert.Contains(t, out, "late_night")
	assert.Contains(t, out, "1250")
}

func TestTiersInvalidPolicy(t *testing.T) {
	policy := writeFile(t, "wage.yaml", `
tiers:
  - {name: day, start_hour: 0, end_hour: 12, rate: 1000}
`)

	_, err := run(t, "tiers", "--policy", policy)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadRecords_Shapes(t *testing.T) {
	list := writeFile(t, "list.yaml", `- {clock_in: "2023-01-10T09:00:00Z", clock_out: null}`)
	records, err := LoadRecords(list)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].ClockOut)

	empty := writeFile(t, "empty.yaml", "")
	records, err = LoadRecords(empty)
	require.NoError(t, err)
	assert.Empty(t, records)

	scalar := writeFile(t, "scalar.yaml", "hello")
	_, err = LoadRecords(scalar)
	assert.Error(t, err)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", assert.AnError)))
}
