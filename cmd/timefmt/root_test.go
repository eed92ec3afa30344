package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	timefmt "github.com/goliatone/go-timefmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "short english time",
			args: []string{"format", "--style", "short", "--at", "2024-03-09T07:35:13.215217Z"},
			want: "7:35 AM\n",
		},
		{
			name: "medium french time",
			args: []string{"format", "--locale", "fr", "--at", "2024-03-09T07:35:13Z"},
			want: "07:35:13\n",
		},
		{
			name: "long english time in utc",
			args: []string{"format", "--style", "long", "--at", "2024-03-09T23:59:59Z"},
			want: "11:59:59 PM UTC\n",
		},
		{
			name: "explicit pattern with offset",
			args: []string{"format", "--pattern", "HH:mm O", "--at", "2024-03-09T07:35:13-08:00"},
			want: "07:35 GMT-8\n",
		},
		{
			name: "medium english date",
			args: []string{"format", "--kind", "date", "--at", "2024-03-09T07:35:13Z"},
			want: "Mar 9, 2024\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormatCommandInvalidStyle(t *testing.T) {
	_, err := execute(t, "format", "--style", "huge", "--at", "2024-03-09T07:35:13Z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, timefmt.ErrInvalidFormatType))
}

func TestFormatCommandRejectsBadInput(t *testing.T) {
	_, err := execute(t, "format", "--kind", "week")
	require.Error(t, err)

	_, err = execute(t, "format", "--at", "yesterday")
	require.Error(t, err)

	_, err = execute(t, "format", "--override", "fr")
	require.Error(t, err)
}

func TestHourCycleCommand(t *testing.T) {
	out, err := execute(t, "hour-cycle", "en-AU", "fr", "fr-u-hc-h12")
	require.NoError(t, err)
	assert.Equal(t, "en-AU\th12_with_12\th\nfr\th24_with_0\tH\nfr-u-hc-h12\th12_with_12\th\n", out)
}

func TestStylesCommand(t *testing.T) {
	out, err := execute(t, "styles", "--locale", "de")
	require.NoError(t, err)
	assert.Contains(t, out, "HH:mm:ss")
	assert.Contains(t, out, "d. MMMM y")
}

func TestTokensCommand(t *testing.T) {
	out, err := execute(t, "tokens", "h 'o''clock'")
	require.NoError(t, err)
	assert.Equal(t, "h\t1\nliteral\t\" o'clock\"\n", out)
}

func TestDataOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_formats:\n  short: \"HH:mm\"\n"), 0o644))

	out, err := execute(t, "format", "--override", "en="+path, "--style", "short", "--at", "2024-03-09T19:05:00Z")
	require.NoError(t, err)
	assert.Equal(t, "19:05\n", out)
}
