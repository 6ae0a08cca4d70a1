package ui

// ColorReset returns the escape sequence that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the color used for errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the color used for successful outcomes.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the color used for warnings.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the color used for informational values.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the escape sequence for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape sequence for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
