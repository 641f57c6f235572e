package view

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	var zero Result[[]string]
	assert.True(t, zero.IsLoading())

	ok := Ok([]string{"a"})
	assert.True(t, ok.IsSuccess())
	assert.True(t, ok.Found)
	assert.Equal(t, []string{"a"}, ok.Value)

	nf := NotFound[*int]()
	assert.True(t, nf.IsSuccess())
	assert.False(t, nf.Found)

	fail := Fail[int]("Failed to fetch item details.")
	assert.True(t, fail.IsFailure())
	assert.Equal(t, "Failed to fetch item details.", fail.Error)
}

func TestFormLifecycle(t *testing.T) {
	f := NewForm()
	assert.Equal(t, Idle, f.State)
	assert.Empty(t, f.Get("email"))

	f.Submit(url.Values{"email": {"ada@futo.edu.ng"}})
	assert.Equal(t, Submitting, f.State)

	f.Reject("Login failed.")
	assert.Equal(t, Rejected, f.State)
	assert.Equal(t, "Login failed.", f.Error)
	assert.Equal(t, "ada@futo.edu.ng", f.Get("email"))

	f.Submit(f.Values)
	assert.Empty(t, f.Error)
	f.Succeed()
	assert.Equal(t, Submitted, f.State)
}

func TestNewBanner(t *testing.T) {
	assert.Nil(t, NewBanner("", time.Second))

	b := NewBanner("Your item report has been submitted.", 0)
	require.NotNil(t, b)
	assert.Equal(t, DefaultBannerTimeout, b.Timeout)
	assert.Equal(t, int64(5000), b.TimeoutMillis())

	b = NewBanner("x", 1500*time.Millisecond)
	assert.Equal(t, int64(1500), b.TimeoutMillis())
}
