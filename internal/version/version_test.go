package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithRevision(t *testing.T) {
	type Case struct {
		settings []debug.BuildSetting
		ok       bool
		want     string
	}
	cases := []Case{
		{want: VERSION},
		{ok: true, want: VERSION},
		{ok: true, settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}, want: VERSION + "+012345678"},
		{ok: true, settings: []debug.BuildSetting{
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.revision", Value: "abc"},
		}, want: VERSION + "+abc-dirty"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, withRevision(&debug.BuildInfo{Settings: c.settings}, c.ok))
	}
}
