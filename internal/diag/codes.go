package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Ремонт текста до разбора (информационные)
	RepInfo            Code = 1000
	RepCommentsRemoved Code = 1001
	RepTrailingCommas  Code = 1002
	RepBareKeysQuoted  Code = 1003
	RepPatternFailed   Code = 1004

	// Синтаксис JSON
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedEnd      Code = 2002
	SynUnterminatedString Code = 2003
	SynBadStringChar      Code = 2004
	SynBadEscape          Code = 2005
	SynBadNumber          Code = 2006
	SynTrailingData       Code = 2007
	SynTooDeep            Code = 2008

	// Ввод-вывод
	IOInfo      Code = 4000
	IOReadFail  Code = 4001
	IOWriteFail Code = 4002

	// Конфигурация проекта
	PrjInfo        Code = 5000
	PrjBadConfig   Code = 5001
	PrjUnknownSort Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	RepInfo:               "Repair information",
	RepCommentsRemoved:    "Comments removed",
	RepTrailingCommas:     "Trailing commas removed",
	RepBareKeysQuoted:     "Bare keys quoted",
	RepPatternFailed:      "Repair pattern failed",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnexpectedEnd:      "Unexpected end of input",
	SynUnterminatedString: "Unterminated string",
	SynBadStringChar:      "Bad character in string literal",
	SynBadEscape:          "Bad escape sequence",
	SynBadNumber:          "Malformed number",
	SynTrailingData:       "Unexpected data after JSON value",
	SynTooDeep:            "Nesting too deep",
	IOInfo:                "I/O information",
	IOReadFail:            "Failed to read input",
	IOWriteFail:           "Failed to write output",
	PrjInfo:               "Project information",
	PrjBadConfig:          "Invalid configuration file",
	PrjUnknownSort:        "Unknown sort order",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("REP%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
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
