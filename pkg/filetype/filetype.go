// Package filetype classifies file extensions into display categories and
// formats byte counts for human consumption.
package filetype

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category is a coarse display grouping for a file type.
type Category string

const (
	CategoryDocument    Category = "document"
	CategoryImage       Category = "image"
	CategoryVideo       Category = "video"
	CategoryAudio       Category = "audio"
	CategorySpreadsheet Category = "spreadsheet"
	CategoryCode        Category = "code"
	CategoryArchive     Category = "archive"
	CategoryOther       Category = "other"
)

// Info pairs a category with the icon class used to render it.
type Info struct {
	Category Category
	Icon     string
}

var categories = map[Category]struct {
	icon string
	exts []string
}{
	CategoryDocument:    {"file-text", []string{"pdf", "doc", "docx", "txt", "rtf", "md"}},
	CategoryImage:       {"file-image", []string{"jpg", "jpeg", "png", "gif", "svg", "webp", "bmp"}},
	CategoryVideo:       {"file-video", []string{"mp4", "avi", "mov", "wmv", "flv", "webm", "mkv"}},
	CategoryAudio:       {"file-audio", []string{"mp3", "wav", "flac", "aac", "ogg", "wma"}},
	CategorySpreadsheet: {"file-spreadsheet", []string{"xls", "xlsx", "csv", "ods"}},
	CategoryCode:        {"file-code", []string{"js", "ts", "jsx", "tsx", "html", "css", "py", "java", "cpp", "c", "php", "go", "json"}},
	CategoryArchive:     {"archive", []string{"zip", "rar", "7z", "tar", "gz"}},
}

var byExtension = buildIndex()

func buildIndex() map[string]Info {
	index := make(map[string]Info)
	for cat, def := range categories {
		for _, ext := range def.exts {
			index[ext] = Info{Category: cat, Icon: def.icon}
		}
	}
	return index
}

// Classify maps a file extension (with or without a leading dot, any case)
// to its display category. Unknown extensions get the generic file category,
// never an error.
func Classify(ext string) Info {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if info, ok := byExtension[ext]; ok {
		return info
	}
	return Info{Category: CategoryOther, Icon: "file"}
}

// Ext extracts the lowercased extension of a filename, without the dot.
func Ext(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with binary (1024-based) units, two
// decimal places, choosing the largest unit with a value of at least one.
// Zero renders as "0 Bytes" exactly.
func FormatBytes(b int64) string {
	if b == 0 {
		return "0 Bytes"
	}
	value := float64(b)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}
