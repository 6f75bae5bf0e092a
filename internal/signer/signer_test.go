package signer_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"tiebasign/internal/signer"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestSign(t *testing.T) {
	tests := []struct {
		name  string
		forum string
		tbs   string
		want  string
	}{
		{name: "ascii", forum: "alpha", tbs: "XYZ", want: "a927c27d7f74ab9265b0e74b4b304228"},
		{name: "empty", forum: "", tbs: "", want: "3b6c08f8c388dcd62c3e09df1ffb8e5b"},
		{name: "utf8 forum", forum: "李毅", tbs: "abc123", want: "855c9ae4a2248d23f09860307bdcde3c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := signer.Sign(tt.forum, tt.tbs)
			require.Equal(t, tt.want, got)
			require.Regexp(t, hexDigest, got)
		})
	}
}

func TestSignDeterministic(t *testing.T) {
	first := signer.Sign("beta", "tbs-value")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, signer.Sign("beta", "tbs-value"))
	}
	require.NotEqual(t, first, signer.Sign("beta", "other-tbs"))
}
