// Package ui provides semantic text formatting for ghsecret's console output.
//
// Formatters render with color when the terminal supports it. When NO_COLOR
// is set or color is unavailable, Code and Highlight fall back to backticks
// and single quotes; the rest print unchanged.
//
//	ui.Code.Sprint("ghsecret publish")   // Commands
//	ui.Highlight.Sprint("goonidz/purple") // Repositories, secret names
//	ui.Success.Sprint("✓")
//	ui.Error.Sprint("✗")
//	ui.Info.Sprint("→")
//
// Mask must be used whenever a credential is echoed back to the operator.
package ui
