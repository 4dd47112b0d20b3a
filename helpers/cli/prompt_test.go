package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	t.Parallel()

	lines := []string{}
	exec := func(line string) { lines = append(lines, line) }
	input := " insert 1 0 \nlist\nexit\nignored\n"
	err := ReadLines(strings.NewReader(input), exec, func() bool {
		return len(lines) > 0 && lines[len(lines)-1] == "exit"
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"insert 1 0", "list", "exit"}, lines)
}
