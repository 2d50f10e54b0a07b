package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFromOSRelease(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Platform
	}{
		{
			name: "ubuntu",
			content: `NAME="Ubuntu"
ID=ubuntu
ID_LIKE=debian
VERSION_ID="24.04"`,
			want: PlatformDebian,
		},
		{
			name: "debian",
			content: `ID=debian
NAME="Debian GNU/Linux"`,
			want: PlatformDebian,
		},
		{
			name: "amazon linux",
			content: `NAME="Amazon Linux"
ID="amzn"
ID_LIKE="fedora"
VERSION_ID="2023"`,
			want: PlatformRHEL,
		},
		{
			name: "rocky via id_like",
			content: `ID=rocky
ID_LIKE="rhel centos fedora"`,
			want: PlatformRHEL,
		},
		{
			name: "mint falls through to debian via id_like",
			content: `ID=linuxmint
ID_LIKE="ubuntu debian"`,
			want: PlatformDebian,
		},
		{
			name:    "arch is unsupported",
			content: "ID=arch\n",
			want:    PlatformUnknown,
		},
		{
			name:    "empty",
			content: "",
			want:    PlatformUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFromOSRelease(tt.content))
		})
	}
}

func TestParseOSRelease(t *testing.T) {
	fields := parseOSRelease(`# comment
NAME="Ubuntu"
ID=ubuntu

BROKEN LINE`)

	assert.Equal(t, "Ubuntu", fields["NAME"])
	assert.Equal(t, "ubuntu", fields["ID"])
	assert.NotContains(t, fields, "BROKEN LINE")
}
