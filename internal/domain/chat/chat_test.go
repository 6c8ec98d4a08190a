package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	req := Request{Messages: []Message{{Role: "user", Content: "hi"}}}
	require.NoError(t, req.Validate())

	req = Request{}
	assert.ErrorContains(t, req.Validate(), "messages are required")
}

func TestRequest_ValidateFiles(t *testing.T) {
	req := Request{
		Messages: []Message{{
			Role:    "user",
			Content: "look",
			Files: []File{
				{Name: "big.png", Type: "image/png", Size: MaxFileSize + 1},
				{Name: "run.exe", Type: "application/x-msdownload", Size: 10},
			},
		}},
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file big.png exceeds the 20MB limit")
	assert.Contains(t, err.Error(), "file type application/x-msdownload is not supported")
}

func TestFile_IsImage(t *testing.T) {
	assert.True(t, File{Type: "image/webp"}.IsImage())
	assert.False(t, File{Type: "application/pdf"}.IsImage())
}
