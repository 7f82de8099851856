package report

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretsweep/secretsweep/internal/types"
)

func TestPrintLog(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	PrintLog(log, sample)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "[Keyword][app/.env:1] Suspect: PASSWORD=hunter2", entries[0].Message)
	assert.Equal(t, "Entropy", entries[1].Data["kind"])
	assert.Equal(t, "app/.env", entries[1].Data["file"])
	assert.Equal(t, 2, entries[1].Data["line"])
}

func TestParseFailOn(t *testing.T) {
	for in, want := range map[string]string{"": FailOnAny, "ANY": FailOnAny, "keyword": FailOnKeyword, " entropy ": FailOnEntropy, "never": FailOnNever} {
		got, err := ParseFailOn(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFailOn("high")
	assert.Error(t, err)
}

func TestShouldFail(t *testing.T) {
	kwOnly := []types.Finding{sample[0]}
	assert.True(t, ShouldFail(kwOnly, FailOnAny))
	assert.True(t, ShouldFail(kwOnly, FailOnKeyword))
	assert.False(t, ShouldFail(kwOnly, FailOnEntropy))
	assert.False(t, ShouldFail(sample, FailOnNever))
	assert.False(t, ShouldFail(nil, FailOnAny))
}
