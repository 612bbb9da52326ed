package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		attr slog.Attr
		key  string
		val  string
	}{
		{Role("bokeh-issue"), KeyRole, "bokeh-issue"},
		{File("index.md"), KeyFile, "index.md"},
		{Path("/tmp/docs"), KeyPath, "/tmp/docs"},
		{Version("3.5.0"), KeyVersion, "3.5.0"},
		{Bucket("cdn.bokeh.org"), KeyBucket, "cdn.bokeh.org"},
		{Error(errors.New("boom")), KeyError, "boom"},
		{Error(nil), KeyError, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.key, c.attr.Key)
		assert.Equal(t, c.val, c.attr.Value.String())
	}

	assert.Equal(t, int64(12), Line(12).Value.Int64())
	assert.Equal(t, int64(2), Messages(2).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
}
