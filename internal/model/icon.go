package model

import (
	"encoding/json"
	"fmt"
)

// IconFormat is the discriminator tag of an Icon value.
type IconFormat string

const (
	IconFormatEmoji IconFormat = "emoji"
	IconFormatFile  IconFormat = "file"
	IconFormatIcon  IconFormat = "icon"
)

// Color is drawn from the closed ten-name palette used by icons and tags.
type Color string

const (
	ColorGrey   Color = "grey"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorPink   Color = "pink"
	ColorPurple Color = "purple"
	ColorBlue   Color = "blue"
	ColorIce    Color = "ice"
	ColorTeal   Color = "teal"
	ColorLime   Color = "lime"
)

var validColors = map[Color]bool{
	ColorGrey: true, ColorYellow: true, ColorOrange: true, ColorRed: true,
	ColorPink: true, ColorPurple: true, ColorBlue: true, ColorIce: true,
	ColorTeal: true, ColorLime: true,
}

// ValidColor reports whether c is a member of the closed color palette.
func ValidColor(c Color) bool { return validColors[c] }

// Icon is the three-variant discriminated union carried by spaces, types,
// and templates, and sent in object create/update requests. The
// discriminator field on the wire is "format".
type Icon struct {
	Format IconFormat
	Emoji  string // set when Format == IconFormatEmoji
	File   string // set when Format == IconFormatFile
	Name   string // set when Format == IconFormatIcon
	Color  Color  // optional, set when Format == IconFormatIcon
}

type iconWire struct {
	Format string `json:"format"`
	Emoji  string `json:"emoji,omitempty"`
	File   string `json:"file,omitempty"`
	Name   string `json:"name,omitempty"`
	Color  string `json:"color,omitempty"`
}

func (i Icon) MarshalJSON() ([]byte, error) {
	w := iconWire{Format: string(i.Format)}
	switch i.Format {
	case IconFormatEmoji:
		w.Emoji = i.Emoji
	case IconFormatFile:
		w.File = i.File
	case IconFormatIcon:
		w.Name = i.Name
		w.Color = string(i.Color)
	default:
		return nil, unknownVariant("icon.format", fmt.Sprintf("unknown icon format %q", i.Format))
	}
	return json.Marshal(w)
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	var w iconWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch IconFormat(w.Format) {
	case IconFormatEmoji:
		*i = Icon{Format: IconFormatEmoji, Emoji: w.Emoji}
	case IconFormatFile:
		*i = Icon{Format: IconFormatFile, File: w.File}
	case IconFormatIcon:
		*i = Icon{Format: IconFormatIcon, Name: w.Name, Color: Color(w.Color)}
	default:
		return unknownVariant("icon.format", fmt.Sprintf("unknown icon format %q", w.Format))
	}
	return nil
}
