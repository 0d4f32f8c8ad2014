package clierr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, New(InternalError, "boom").ExitCode())
	assert.Equal(t, 1, New(NoCurrentTask, "nothing running").ExitCode())
}

func TestFromTaskLog_ParseError(t *testing.T) {
	pe := &tasklog.ParseError{Path: "/tmp/day.csv", Line: 3, Text: "x", Reason: "invalid start"}
	err := FromTaskLog(fmt.Errorf("querying: %w", pe))

	var cliErr *Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, ParseError, cliErr.Code)
	assert.Equal(t, 3, cliErr.Details["line"])
	assert.Equal(t, "/tmp/day.csv", cliErr.Details["file"])
}

func TestFromTaskLog_IOError(t *testing.T) {
	err := FromTaskLog(&tasklog.IOError{Op: "open", Path: "/nope", Err: os.ErrPermission})

	var cliErr *Error
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, IOError, cliErr.Code)
	assert.Equal(t, "open", cliErr.Details["op"])
}

func TestFromTaskLog_PassThrough(t *testing.T) {
	assert.NoError(t, FromTaskLog(nil))

	coded := New(TaskRunning, "busy")
	assert.Same(t, coded, FromTaskLog(coded))

	plain := errors.New("plain")
	assert.Equal(t, plain, FromTaskLog(plain))
}
