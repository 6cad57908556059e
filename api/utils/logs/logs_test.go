package logs

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetLogParams_Defaults(t *testing.T) {
	params, err := GetLogParams(httptest.NewRequest("GET", "/logs", nil))
	require.NoError(t, err)
	assert.Equal(t, Params{}, params)
}

func Test_GetLogParams_AllSet(t *testing.T) {
	params, err := GetLogParams(httptest.NewRequest("GET", "/logs?container=step-build&lines=100&sinceTime=2024-03-01T10:00:00Z&file=true&follow=1", nil))
	require.NoError(t, err)
	assert.Equal(t, "step-build", params.Container)
	require.NotNil(t, params.Lines)
	assert.Equal(t, int64(100), *params.Lines)
	require.NotNil(t, params.Since)
	assert.True(t, params.Since.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, params.AsFile)
	assert.True(t, params.Follow)
}

func Test_GetLogParams_Invalid(t *testing.T) {
	_, err := GetLogParams(httptest.NewRequest("GET", "/logs?lines=abc&follow=maybe", nil))
	assert.Error(t, err)

	_, err = GetLogParams(httptest.NewRequest("GET", "/logs?lines=0", nil))
	assert.Error(t, err)
}
