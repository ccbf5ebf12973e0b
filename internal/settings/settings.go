// Package settings holds the per-PDF display options of the add-on.
package settings

import (
	"strconv"
	"strings"
)

// Raw option keys as stored with each PDF.
const (
	KeyDisplayImages  = "display_uploaded_images"
	KeyImageFormat    = "display_uploaded_images_format"
	KeyMaxHeight      = "uploaded_images_max_height"
	KeyGroupImages    = "group_uploaded_images"
	KeyConstraintSize = "uploaded_images_constrained_image_size"
)

// Image column layouts.
const (
	Format1Column = "1 Column"
	Format2Column = "2 Column"
	Format3Column = "3 Column"
	Format4Column = "4 Column"
)

const (
	DefaultFormat     = Format1Column
	DefaultMaxHeight  = 300
	DefaultConstraint = 1000
)

// Raw is the key/value map a PDF stores its settings in.
type Raw map[string]string

// Display is the read-only snapshot of the image options for one PDF.
type Display struct {
	DisplayImages bool   `json:"display_images"`
	Format        string `json:"format"`
	MaxHeight     int    `json:"max_height"`
	GroupImages   bool   `json:"group_images"`
}

// Defaults returns the snapshot used when a PDF has no image options saved.
func Defaults() Display {
	return Display{
		Format:    DefaultFormat,
		MaxHeight: DefaultMaxHeight,
	}
}

// FromRaw builds a snapshot from stored settings. Missing or malformed values
// fall back to their defaults.
func FromRaw(raw Raw) Display {
	d := Defaults()
	if raw == nil {
		return d
	}
	d.DisplayImages = isYes(raw[KeyDisplayImages])
	d.GroupImages = isYes(raw[KeyGroupImages])
	if v := strings.TrimSpace(raw[KeyImageFormat]); v != "" {
		d.Format = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(raw[KeyMaxHeight])); err == nil && v > 0 {
		d.MaxHeight = v
	}
	return d
}

// Raw converts the snapshot back to its stored representation.
func (d Display) Raw() Raw {
	return Raw{
		KeyDisplayImages: yesNo(d.DisplayImages),
		KeyImageFormat:   d.Format,
		KeyMaxHeight:     strconv.Itoa(d.MaxHeight),
		KeyGroupImages:   yesNo(d.GroupImages),
	}
}

// ColumnClass returns the CSS class for the configured image layout.
func (d Display) ColumnClass() string {
	switch d.Format {
	case Format2Column:
		return "fileupload-images-two-col"
	case Format3Column:
		return "fileupload-images-three-col"
	case Format4Column:
		return "fileupload-images-four-col"
	default:
		return "fileupload-images-one-col"
	}
}

// HeightLimit returns the max display height in pixels.
func (d Display) HeightLimit() int {
	if d.MaxHeight <= 0 {
		return DefaultMaxHeight
	}
	return d.MaxHeight
}

func isYes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "yes")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
