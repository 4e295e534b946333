package add

import (
	"testing"

	"github.com/Ran-Mewo/zip4go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want *zip4go.Parameters
	}{
		{
			name: "defaults",
			cmd:  Command{Level: "normal", Encryption: "aes256"},
			want: zip4go.DefaultParameters(),
		},
		{
			name: "store at maximum",
			cmd:  Command{Level: "maximum", Encryption: "aes256", Store: true},
			want: zip4go.DefaultParameters(
				zip4go.WithCompressionLevel(zip4go.CompressionLevelMaximum),
				zip4go.WithCompressionMethod(zip4go.Store),
			),
		},
		{
			name: "password enables encryption",
			cmd:  Command{Level: "normal", Encryption: "aes128", Password: "secret"},
			want: zip4go.DefaultParameters(zip4go.WithAES128Encryption("secret")),
		},
		{
			name: "standard encryption",
			cmd:  Command{Level: "fastest", Encryption: "standard", Password: "legacy"},
			want: zip4go.DefaultParameters(
				zip4go.WithCompressionLevel(zip4go.CompressionLevelFastest),
				zip4go.WithStandardEncryption("legacy"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cmd.params()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParamsEncryptionRequiresPassword(t *testing.T) {
	cmd := Command{Level: "normal", Encryption: "aes128"}

	_, err := cmd.params()
	assert.Error(t, err)
}
