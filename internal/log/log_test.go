// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)
	h.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	logger.WithFields(log.Fields{"path": "/a/b.yaml", "key": "k"}).Warn("key missing")
	logger.Debug("plain")

	assert.Equal(t,
		"2026-03-04 05:06:07 W key missing key=k path=/a/b.yaml\n"+
			"2026-03-04 05:06:07 D plain\n",
		buf.String())
}

func TestInitLogger_Level(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{env: "", want: log.ErrorLevel},
		{env: "debug", want: log.DebugLevel},
		{env: "WARN", want: log.WarnLevel},
		{env: "bogus", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("TXTCTL_LOG", tt.env)
			InitLogger()

			l, ok := log.Log.(*log.Logger)
			if assert.True(t, ok) {
				assert.Equal(t, tt.want, l.Level)
			}
		})
	}
}
