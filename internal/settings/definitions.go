package settings

import "strconv"

// Definition describes a configurable option for settings screens.
type Definition struct {
	ID      string            `json:"id" yaml:"id"`
	Name    string            `json:"name" yaml:"name"`
	Type    string            `json:"type" yaml:"type"`
	Options []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Std     string            `json:"std" yaml:"std"`
	Desc    string            `json:"desc,omitempty" yaml:"desc,omitempty"`
	Unit    string            `json:"unit,omitempty" yaml:"unit,omitempty"`
	Extra   map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Option is one choice of a radio definition.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

var yesNoOptions = []Option{{Value: "Yes", Label: "Yes"}, {Value: "No", Label: "No"}}

// Definitions returns the per-PDF image options in display order.
func Definitions() []Definition {
	return []Definition{
		{
			ID:      KeyDisplayImages,
			Name:    "Display Uploaded Images",
			Type:    "radio",
			Options: yesNoOptions,
			Std:     "No",
			Desc:    "When enabled, uploaded images will be displayed in the PDF using the image format defined below. Non-image files will continue to be displayed as links in the standard list format.",
		},
		{
			ID:   KeyImageFormat,
			Name: "Image Format",
			Type: "radio",
			Options: []Option{
				{Value: Format1Column, Label: "1 Column"},
				{Value: Format2Column, Label: "2 Columns"},
				{Value: Format3Column, Label: "3 Columns"},
				{Value: Format4Column, Label: "4 Columns"},
			},
			Std:   DefaultFormat,
			Desc:  "Choose to display uploaded images in one-, two- or three-column layouts.",
			Extra: map[string]string{"class": "image-radio-buttons"},
		},
		{
			ID:   KeyMaxHeight,
			Name: "Maximum Image Height",
			Type: "number",
			Std:  strconv.Itoa(DefaultMaxHeight),
			Desc: "Images will be constrained to the set height.",
			Unit: "px",
		},
		{
			ID:      KeyGroupImages,
			Name:    "Group Images?",
			Type:    "radio",
			Options: yesNoOptions,
			Std:     "No",
			Desc:    "When enabled, any images in your upload fields are all grouped at the end of the PDF. This helps with the overall document readability and format.",
		},
	}
}

// GlobalDefinitions returns the add-on wide options.
func GlobalDefinitions() []Definition {
	return []Definition{
		{
			ID:   KeyConstraintSize,
			Name: "Constrained Image Size",
			Type: "number",
			Std:  strconv.Itoa(DefaultConstraint),
			Desc: "Uploaded images will be resized and have the width and height constrained. Changing the size only effects newly-uploaded images.",
			Unit: "px",
		},
	}
}
