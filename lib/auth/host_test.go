package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHost(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "https://app.phraselab.com", want: "https://app.phraselab.com"},
		{name: "trailing slash", in: "https://app.phraselab.com/", want: "https://app.phraselab.com"},
		{name: "path dropped", in: "https://app.phraselab.com/v2/projects", want: "https://app.phraselab.com"},
		{name: "default https port", in: "https://app.phraselab.com:443", want: "https://app.phraselab.com"},
		{name: "custom port kept", in: "https://app.phraselab.com:8443", want: "https://app.phraselab.com:8443"},
		{name: "bare host", in: "app.phraselab.com", want: "https://app.phraselab.com"},
		{name: "mixed case", in: "HTTPS://App.Phraselab.COM", want: "https://app.phraselab.com"},
		{name: "http default port", in: "http://localhost:80", want: "http://localhost"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeHost(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := NormalizeHost("  ")
		require.Error(t, err)
	})
}
