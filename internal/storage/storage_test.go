package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *Store {
	return &Store{bucket: "uploads", publicBase: "https://cdn.example.com"}
}

func TestURLFor(t *testing.T) {
	s := testStore()
	assert.Equal(t, "https://cdn.example.com/uploads/works/a.jpg", s.URLFor("works/a.jpg"))
}

func TestIsManagedURL(t *testing.T) {
	s := testStore()

	assert.True(t, s.IsManagedURL("https://cdn.example.com/uploads/works/a.jpg"))
	assert.False(t, s.IsManagedURL(""))
	assert.False(t, s.IsManagedURL("data:image/jpeg;base64,AAAA"))
	assert.False(t, s.IsManagedURL("https://other.example.com/uploads/a.jpg"))
	// 同域不同 bucket 也不认
	assert.False(t, s.IsManagedURL("https://cdn.example.com/private/a.jpg"))
}

func TestKeyFromURL(t *testing.T) {
	s := testStore()

	key, ok := s.keyFromURL("https://cdn.example.com/uploads/works/a.jpg")
	require.True(t, ok)
	assert.Equal(t, "works/a.jpg", key)

	_, ok = s.keyFromURL("https://cdn.example.com/uploads/")
	assert.False(t, ok)
	_, ok = s.keyFromURL("https://elsewhere.com/uploads/a.jpg")
	assert.False(t, ok)
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("uploads", "海报 v2.png")
	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	// 同名文件生成不同 key
	assert.NotEqual(t, key, ObjectKey("uploads", "海报 v2.png"))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"海报.png", "__.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\x\a.jpg`, "a.jpg"},
		{"", "file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), "input %q", tt.in)
	}
}
