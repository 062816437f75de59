package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Host: parsing
	SynParseError Code = 2001

	// Host: I/O
	IOLoadFileError Code = 4001

	// Line length rules
	LineTooLong            Code = 9000 // CR9000, threshold from stylecop.json, gated
	LineTooLongDefault     Code = 9001 // CR9001, fixed threshold
	LineTooLongAnonymousOK Code = 9100 // VCR9000, threshold from stylecop.json, ungated
)

var (
	codeID = map[Code]string{
		LineTooLong:            "CR9000",
		LineTooLongDefault:     "CR9001",
		LineTooLongAnonymousOK: "VCR9000",
	}

	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		SynParseError:          "Source could not be parsed completely",
		IOLoadFileError:        "I/O load file error",
		LineTooLong:            "Line length is too long",
		LineTooLongDefault:     "Line length is too long",
		LineTooLongAnonymousOK: "Line length is too long",
	}
)

// ID returns the stable identifier of the code, e.g. "CR9000" or "IO4001".
func (c Code) ID() string {
	if id, ok := codeID[c]; ok {
		return id
	}
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// ParseCode resolves a stable identifier back to its Code.
func ParseCode(id string) (Code, bool) {
	for c, s := range codeID {
		if s == id {
			return c, true
		}
	}
	return UnknownCode, false
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
