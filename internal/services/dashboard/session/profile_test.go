package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"Madonna", "M"},
		{"  ", ""},
		{"", ""},
		{"jean-paul sartre", "JS"},
		{"Grace Brewster Murray Hopper", "GB"},
		{"  alan   turing ", "AT"},
		{"émile zola", "ÉZ"},
		{"李 小龍", "李小"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Initials(tc.name), "Initials(%q)", tc.name)
	}
}

func TestFirstName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Grace", FirstName("Grace Hopper"))
	assert.Equal(t, "Madonna", FirstName("  Madonna "))
	assert.Equal(t, "", FirstName(" "))
	assert.Equal(t, "Ada", Profile{Name: "Ada Lovelace"}.FirstName())
	assert.Equal(t, "AL", Profile{Name: "Ada Lovelace"}.Initials())
}

func TestDecodeProfileKeepsFieldsVerbatim(t *testing.T) {
	t.Parallel()

	got, err := decodeProfile([]byte(`{"name":"Grace  Hopper","email":"grace@navy.mil","picture":"https://example.com/g.png","locale":"en"}`))
	require.NoError(t, err)
	assert.Equal(t, Profile{Name: "Grace  Hopper", Email: "grace@navy.mil", Picture: "https://example.com/g.png"}, got)
	assert.True(t, got.HasPicture())
}

func TestDecodeProfileRejectsInvalidBodies(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		``,
		`not json`,
		`null`,
		`{"email":"grace@navy.mil"}`,
		`{"name":"","email":"grace@navy.mil"}`,
		`{"name":"Grace","email":"not-an-email"}`,
		`{"name":42}`,
		`{"name":"Grace Hopper","email":"grace@example.com"} <html>oops</html>`,
		`{"name":"Grace Hopper"}{"name":"Ada"}`,
	} {
		_, err := decodeProfile([]byte(body))
		assert.Error(t, err, "body %q", body)
	}
}

func TestDecodeProfileDropsUnusablePicture(t *testing.T) {
	t.Parallel()

	for _, picture := range []string{"javascript:alert(1)", "/relative.png", "data:image/png;base64,AAAA", "http://", "%zz"} {
		got, err := decodeProfile([]byte(`{"name":"Ada","picture":"` + picture + `"}`))
		require.NoError(t, err, "picture %q", picture)
		assert.False(t, got.HasPicture(), "picture %q should be dropped", picture)
	}
}
