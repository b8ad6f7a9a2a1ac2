package shell

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archery/internal/display"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{"score --round wa1440", []string{"score", "--round", "wa1440"}, false},
		{`h2h set . --self "X 10 9"`, []string{"h2h", "set", ".", "--self", "X 10 9"}, false},
		{`sight add --note 'new  tab'`, []string{"sight", "add", "--note", "new  tab"}, false},
		{`--note ""`, []string{"--note", ""}, false},
		{"   ", nil, false},
		{`shoot end "X 10`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute(t *testing.T) {
	display.SetColor(false)

	var (
		out  bytes.Buffer
		seen [][]string
	)
	s := New(func(args []string) error {
		seen = append(seen, args)
		if args[0] == "fail" {
			return errors.New("boom")
		}
		return nil
	}, &out)

	assert.False(t, s.Execute("shoot show ."))
	assert.Empty(t, seen)
	assert.Contains(t, out.String(), "no shoot selected")

	assert.False(t, s.Execute("use 0b8e7c2a-1111-2222-3333-444455556666"))
	assert.False(t, s.Execute("shoot show ."))
	require.Len(t, seen, 1)
	assert.Equal(t, []string{"shoot", "show", "0b8e7c2a-1111-2222-3333-444455556666"}, seen[0])
	assert.Equal(t, "archery [0b8e7c2a] > ", s.prompt())

	out.Reset()
	assert.False(t, s.Execute("fail now"))
	assert.Equal(t, "Error: boom\n", out.String())

	assert.False(t, s.Execute("shell"))
	assert.True(t, s.Execute("x"))
	assert.True(t, s.Execute("quit"))
}
