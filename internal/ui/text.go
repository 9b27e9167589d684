package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands and environment variable names.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Highlight formats repositories, secret names and key ids.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Muted formats secondary details such as response bodies.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// SuccessLine returns "✓ msg".
func SuccessLine(msg string) string {
	return Success.Sprint("✓") + " " + msg
}

// ErrorLine returns "✗ msg".
func ErrorLine(msg string) string {
	return Error.Sprint("✗") + " " + msg
}

// WarningLine returns "! msg".
func WarningLine(msg string) string {
	return Warning.Sprint("!") + " " + msg
}

// HintLine returns "→ msg".
func HintLine(msg string) string {
	return Info.Sprint("→") + " " + msg
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}

// Mask hides a credential, keeping at most a four character prefix so the
// operator can tell tokens apart. Values of eight characters or fewer are
// fully hidden.
func Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}
