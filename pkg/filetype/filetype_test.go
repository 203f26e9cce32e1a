package filetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		category Category
		icon     string
	}{
		{"pdf is a document", "pdf", CategoryDocument, "file-text"},
		{"leading dot is accepted", ".pdf", CategoryDocument, "file-text"},
		{"uppercase is accepted", "PDF", CategoryDocument, "file-text"},
		{"mixed case is accepted", "Mp4", CategoryVideo, "file-video"},
		{"png is an image", "png", CategoryImage, "file-image"},
		{"mp3 is audio", "mp3", CategoryAudio, "file-audio"},
		{"xlsx is a spreadsheet", "xlsx", CategorySpreadsheet, "file-spreadsheet"},
		{"go is code", "go", CategoryCode, "file-code"},
		{"zip is an archive", "zip", CategoryArchive, "archive"},
		{"unknown falls back", "xyz", CategoryOther, "file"},
		{"empty falls back", "", CategoryOther, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Classify(tt.ext)
			assert.Equal(t, tt.category, info.Category)
			assert.Equal(t, tt.icon, info.Icon)
		})
	}
}

func TestExt(t *testing.T) {
	assert.Equal(t, "pdf", Ext("report.pdf"))
	assert.Equal(t, "gz", Ext("archive.tar.gz"))
	assert.Equal(t, "", Ext("README"))
	assert.Equal(t, "mp4", Ext("/tmp/clips/intro.MP4"))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1.00 Bytes"},
		{512, "512.00 Bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5242880, "5.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes), "FormatBytes(%d)", tt.bytes)
	}
}
