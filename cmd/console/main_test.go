package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubcommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "bare subcommand",
			args: []string{"whoami"},
			want: []string{"whoami"},
		},
		{
			name: "subcommand after flags",
			args: []string{"-a", "http://host:8000", "upload", "clip.mp4"},
			want: []string{"upload", "clip.mp4"},
		},
		{
			name: "flag value matching a command name is not a command",
			args: []string{"-s", "upload"},
			want: nil,
		},
		{
			name: "equals-form flag needs no value skip",
			args: []string{"-s=upload", "whoami"},
			want: []string{"whoami"},
		},
		{
			name: "unknown first word starts the UI",
			args: []string{"frobnicate", "upload"},
			want: nil,
		},
		{
			name: "flags only",
			args: []string{"-a", "http://host:8000"},
			want: nil,
		},
		{
			name: "no arguments",
			args: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subcommandArgs(tt.args))
		})
	}
}
