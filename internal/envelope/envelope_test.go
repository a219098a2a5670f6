package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariants(t *testing.T) {
	loading := Loading[int]()
	assert.Equal(t, StatusLoading, loading.Status)

	success := Success(42)
	assert.Equal(t, StatusSuccess, success.Status)
	assert.Equal(t, 42, success.Data)

	failure := Failure[int]("network unreachable")
	assert.Equal(t, StatusError, failure.Status)
	assert.Equal(t, "network unreachable", failure.Message)
	assert.Zero(t, failure.Data)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
}
