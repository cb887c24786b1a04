package build

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Parallel()

	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfo(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		info      Info
		wantDev   bool
		wantShort string
	}{
		"dev build": {
			info:      Info{Version: "dev", Commit: "unknown"},
			wantDev:   true,
			wantShort: "unknown",
		},
		"release": {
			info:      Info{Version: "1.2.0", Commit: "0123456789abcdef"},
			wantDev:   false,
			wantShort: "01234567",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantDev, tt.info.IsDevBuild())
			assert.Equal(t, tt.wantShort, tt.info.ShortCommit())
		})
	}
}
