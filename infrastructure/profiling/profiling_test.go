package profiling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/company-research/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/company-research/infrastructure/profiling"
)

func TestStartPyroscope_Disabled(t *testing.T) {
	t.Setenv("ENABLE_CONTINUOUS_PROFILING", "false")

	p, err := profiling.StartPyroscope("company-research", logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Stop())
}

func TestStartPprofServer_DisabledIsNoop(t *testing.T) {
	t.Setenv("ENABLE_PROFILING", "")

	profiling.StartPprofServer(logger.NewNop())
}
