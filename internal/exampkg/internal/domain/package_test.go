package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageState_Next(t *testing.T) {
	testCases := []struct {
		name     string
		state    PackageState
		wantNext PackageState
		wantOK   bool
	}{
		{name: "未设置", state: PackageStateUnset, wantNext: PackageStateReady, wantOK: true},
		{name: "ready", state: PackageStateReady, wantNext: PackageStateRunning, wantOK: true},
		{name: "running", state: PackageStateRunning, wantNext: PackageStateStopping, wantOK: true},
		{name: "stopping", state: PackageStateStopping, wantNext: PackageStateStopped, wantOK: true},
		{name: "stopped", state: PackageStateStopped, wantNext: PackageStateArchived, wantOK: true},
		{name: "archived是终态", state: PackageStateArchived, wantOK: false},
		{name: "未知状态", state: PackageState("paused"), wantOK: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := tc.state.Next()
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantNext, next)
			}
		})
	}
}

func TestPackageState_Valid(t *testing.T) {
	for _, s := range []PackageState{
		PackageStateUnset,
		PackageStateReady,
		PackageStateRunning,
		PackageStateStopping,
		PackageStateStopped,
		PackageStateArchived,
	} {
		assert.True(t, s.Valid(), s.String())
	}
	assert.False(t, PackageState("waiting").Valid())
}

func TestPackageState_Terminal(t *testing.T) {
	assert.True(t, PackageStateArchived.Terminal())
	assert.False(t, PackageStateStopped.Terminal())
	assert.False(t, PackageStateUnset.Terminal())
}
