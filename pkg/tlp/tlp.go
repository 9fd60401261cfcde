// Package tlp defines Traffic Light Protocol classification levels and
// their external representations: the token persisted in document
// metadata, the banner text written into the document, and the banner color.
package tlp

import (
	"fmt"
	"strings"
)

// PropertyName is the document metadata key holding the classification token.
const PropertyName = "Classification"

// BannerFontSize is the font size of the first-row classification banner.
const BannerFontSize = 16

// Classification is a TLP sensitivity level.
// The zero value None means the document is unclassified.
type Classification int

const (
	None Classification = iota
	White
	Green
	Amber
	Red
)

// Record holds the external representations of a classification level.
type Record struct {
	Token  string `json:"token"`
	Header string `json:"header"`
	Color  Color  `json:"color"`
}

var records = [...]Record{
	White: {Token: "TLP:WHITE", Header: "Classified: TLP White", Color: ColorDarkGray},
	Green: {Token: "TLP:GREEN", Header: "Classified: TLP Green", Color: ColorGreen},
	Amber: {Token: "TLP:AMBER", Header: "Classified: TLP Amber", Color: ColorOrange},
	Red:   {Token: "TLP:RED", Header: "Classified: TLP Red", Color: ColorRed},
}

var names = [...]string{
	None:  "none",
	White: "white",
	Green: "green",
	Amber: "amber",
	Red:   "red",
}

// Levels returns every classification except None, lowest sensitivity first.
func Levels() []Classification {
	return []Classification{White, Green, Amber, Red}
}

// Valid reports whether c is a level that can be applied to a document.
func (c Classification) Valid() bool {
	return c > None && int(c) < len(records)
}

func (c Classification) String() string {
	if c < None || int(c) >= len(names) {
		return fmt.Sprintf("Classification(%d)", int(c))
	}
	return names[c]
}

// MarshalText encodes c as its token. None encodes as an empty string.
func (c Classification) MarshalText() ([]byte, error) {
	if c == None {
		return []byte{}, nil
	}
	token, err := TokenFor(c)
	if err != nil {
		return nil, err
	}
	return []byte(token), nil
}

// UnmarshalText accepts a token or a level name. Empty input decodes as None.
func (c *Classification) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = None
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RecordFor returns the external representations of c.
func RecordFor(c Classification) (Record, error) {
	if !c.Valid() {
		return Record{}, fmt.Errorf("%w: no record for classification %s", ErrInvalidArgument, c)
	}
	return records[c], nil
}

// TokenFor returns the metadata token persisted for c.
func TokenFor(c Classification) (string, error) {
	r, err := RecordFor(c)
	if err != nil {
		return "", err
	}
	return r.Token, nil
}

// HeaderFor returns the banner text displayed for c.
func HeaderFor(c Classification) (string, error) {
	r, err := RecordFor(c)
	if err != nil {
		return "", err
	}
	return r.Header, nil
}

// ColorFor returns the banner font color for c.
func ColorFor(c Classification) (Color, error) {
	r, err := RecordFor(c)
	if err != nil {
		return Color{}, err
	}
	return r.Color, nil
}

// ClassificationForToken maps a stored metadata value back to its level.
// Matching is exact and case-sensitive. Empty or unrecognized tokens
// return None so corrupted metadata still trips the save guard.
func ClassificationForToken(token string) Classification {
	if token == "" {
		return None
	}
	for _, c := range Levels() {
		if records[c].Token == token {
			return c
		}
	}
	return None
}

// Parse reads user input as either a token ("TLP:RED") or a level name
// ("red", case-insensitive). It never returns None without an error.
func Parse(s string) (Classification, error) {
	s = strings.TrimSpace(s)
	if c := ClassificationForToken(s); c != None {
		return c, nil
	}
	name := strings.ToLower(strings.TrimPrefix(strings.ToUpper(s), "TLP:"))
	for _, c := range Levels() {
		if names[c] == name {
			return c, nil
		}
	}
	return None, fmt.Errorf("%w: unknown classification %q", ErrInvalidArgument, s)
}
