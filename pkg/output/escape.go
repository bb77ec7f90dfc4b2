// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package output

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// zeroWidthSpace breaks mass mentions without changing how they read.
const zeroWidthSpace = "\u200b"

// markdownEscaper backslash-escapes every character Discord markdown gives
// meaning to. The backslash itself must come first.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"|", `\|`,
	">", `\>`,
	"<", `\<`,
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"#", `\#`,
	"-", `\-`,
	":", `\:`,
)

var mentionEscaper = strings.NewReplacer(
	"@everyone", "@"+zeroWidthSpace+"everyone",
	"@here", "@"+zeroWidthSpace+"here",
)

// Escape neutralizes an untrusted string for interpolation into Discord
// markdown. The result renders as the literal input text on one line, with
// no formatting, links or mass mentions, even at the start of a line.
func Escape(s string) string {
	return mentionEscaper.Replace(escapeListMarker(markdownEscaper.Replace(Sanitize(s))))
}

// escapeListMarker escapes a leading "+" or "1." that would open a list
// item. The other list markers are escaped everywhere.
func escapeListMarker(s string) string {
	if strings.HasPrefix(s, "+") {
		return `\` + s
	}
	digits := len(s) - len(strings.TrimLeft(s, "0123456789"))
	if digits > 0 && digits < len(s) && s[digits] == '.' {
		return s[:digits] + `\` + s[digits:]
	}
	return s
}

// Sanitize strips terminal escape sequences and control characters and
// folds line breaks into spaces. It is used on its own where Discord
// renders plain text, such as the author name.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// linkTarget makes u safe inside the parentheses of a markdown link.
func linkTarget(u string) string {
	return strings.NewReplacer("(", "%28", ")", "%29", " ", "%20", "<", "%3C", ">", "%3E").Replace(u)
}

// link renders a markdown link whose label is already escaped.
func link(label, target string) string {
	if target == "" {
		return label
	}
	return "[" + label + "](" + linkTarget(target) + ")"
}
