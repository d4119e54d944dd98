package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vitals.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadVitalsCSV(t *testing.T) {
	path := writeTrace(t, "time_sec,hr,map,rr,sbp\n0,72,85,14,120\n60,45,58,12,110\n")

	readings, err := LoadVitalsCSV(path)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 72.0, readings[0].HeartRate)
	assert.Equal(t, 85.0, readings[0].MAP)
	assert.Equal(t, 45.0, readings[1].HeartRate)
	assert.Equal(t, 110.0, readings[1].SBP)
}

func TestLoadVitalsCSV_MalformedRow_Fails(t *testing.T) {
	// A malformed reading must be an error, never skipped.
	path := writeTrace(t, "time_sec,hr,map,rr,sbp\n0,seventy,85,14,120\n")

	_, err := LoadVitalsCSV(path)
	assert.Error(t, err)
}

func TestLoadVitalsCSV_ShortRow_Fails(t *testing.T) {
	path := writeTrace(t, "time_sec,hr,map\n0,72,85\n")

	_, err := LoadVitalsCSV(path)
	assert.Error(t, err)
}

func TestLoadVitalsCSV_MissingFile_Fails(t *testing.T) {
	_, err := LoadVitalsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
