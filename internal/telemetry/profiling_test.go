package telemetry

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileType(t *testing.T) {
	got, err := parseProfileType("CPU")
	require.NoError(t, err)
	assert.Equal(t, pyroscope.ProfileCPU, got)

	got, err = parseProfileType("block_duration")
	require.NoError(t, err)
	assert.Equal(t, pyroscope.ProfileBlockDuration, got)

	_, err = parseProfileType("heap")
	assert.Error(t, err)
}

func TestInitProfilingDisabled(t *testing.T) {
	stop, err := InitProfiling(ProfilingConfig{})
	require.NoError(t, err)
	assert.NoError(t, stop())
}

func TestInitProfilingRejectsUnknownType(t *testing.T) {
	_, err := InitProfiling(ProfilingConfig{Enabled: true, ProfileTypes: []string{"bogus"}})
	assert.Error(t, err)
}
