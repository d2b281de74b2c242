package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigitbektasgursoy/cache-simulator/internal/access"
)

func TestAccessCountsReadsAndWritesSeparately(t *testing.T) {
	m := New(100)

	assert.EqualValues(t, 100, m.Access(access.Read))
	assert.EqualValues(t, 100, m.Access(access.Write))
	assert.EqualValues(t, 100, m.Access(access.Read))

	assert.EqualValues(t, 2, m.Reads())
	assert.EqualValues(t, 1, m.Writes())
}

func TestResetZerosCounters(t *testing.T) {
	m := New(50)
	m.Access(access.Read)
	m.Access(access.Write)
	m.Reset()

	assert.EqualValues(t, 0, m.Reads())
	assert.EqualValues(t, 0, m.Writes())
	assert.EqualValues(t, 50, m.Latency, "reset must not touch the configured latency")
}
