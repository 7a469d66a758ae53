package core

// Attribute is a text attribute request. The *Off variants turn a single
// attribute off; Reset turns all of them off.
type Attribute uint8

const (
	AttrReset Attribute = iota
	AttrBold
	AttrBoldOff
	AttrItalic
	AttrItalicOff
	AttrUnderlined
	AttrUnderlinedOff
	AttrSlowBlink
	AttrRapidBlink
	AttrBlinkOff
	AttrCrossed
	AttrCrossedOff
	AttrReversed
	AttrReversedOff
	AttrConceal
	AttrConcealOff
	AttrFraktur
	AttrNormalIntensity
	AttrBoldItalicOff
	AttrFramed
)

var attributeNames = [...]string{
	AttrReset:           "Reset",
	AttrBold:            "Bold",
	AttrBoldOff:         "BoldOff",
	AttrItalic:          "Italic",
	AttrItalicOff:       "ItalicOff",
	AttrUnderlined:      "Underlined",
	AttrUnderlinedOff:   "UnderlinedOff",
	AttrSlowBlink:       "SlowBlink",
	AttrRapidBlink:      "RapidBlink",
	AttrBlinkOff:        "BlinkOff",
	AttrCrossed:         "Crossed",
	AttrCrossedOff:      "CrossedOff",
	AttrReversed:        "Reversed",
	AttrReversedOff:     "ReversedOff",
	AttrConceal:         "Conceal",
	AttrConcealOff:      "ConcealOff",
	AttrFraktur:         "Fraktur",
	AttrNormalIntensity: "NormalIntensity",
	AttrBoldItalicOff:   "BoldItalicOff",
	AttrFramed:          "Framed",
}

// String returns the attribute name used in error messages.
func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return "Unknown"
}
