package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thepudds/robinhood/internal/common"
)

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "dump")
	assert.Contains(t, names, "perf")
}

func TestRootCmd_LogFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedJson  bool
		expectedLevel zerolog.Level
	}{
		{"defaults", nil, false, zerolog.InfoLevel},
		{"debug", []string{"-d"}, false, zerolog.DebugLevel},
		{"json", []string{"--log-json"}, true, zerolog.InfoLevel},
		{"both", []string{"-d", "-j"}, true, zerolog.DebugLevel},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			common.LogDebug, common.LogJson = false, false
			defer func() { common.LogDebug, common.LogJson = false, false }()

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(test.args, "dump", "1", "2"))
			require.NoError(t, rootCmd.Execute())

			assert.Equal(t, test.expectedJson, common.LogJson)
			assert.Equal(t, test.expectedLevel, zerolog.GlobalLevel())
			assert.Contains(t, out.String(), "capacity=4  len=2")
		})
	}
}
