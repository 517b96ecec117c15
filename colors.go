// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ui "github.com/gizak/termui/v3"
)

// ANSI escapes for plain stdout output. Set by InitializeColors.
var (
	Green   = "\033[92m"
	Info    = "\033[96m"
	Warning = "\033[93m"
	Error   = "\033[91m"
	Reset   = "\033[0m"
)

// ColorScheme holds the termui colours used by the structure viewer.
type ColorScheme struct {
	Primary   ui.Color
	OnPrimary ui.Color
	Border    ui.Color
	Focus     ui.Color
	Text      ui.Color
}

// Palette holds the lipgloss colours used by the prompt and demo output.
type Palette struct {
	Accent  lipgloss.Color
	Key     lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Failure lipgloss.Color
	Border  lipgloss.Color
}

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

var (
	currentColorScheme *ColorScheme
	currentPalette     *Palette
	detectedMode       TerminalMode
)

// detectTerminalMode guesses light or dark from COLORFGBG, TERM_THEME and
// THEME, defaulting to dark.
func detectTerminalMode() TerminalMode {
	// COLORFGBG is "foreground;background"
	if colorScheme := os.Getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			switch parts[len(parts)-1] {
			case "0", "8", "16":
				return TerminalModeDark
			case "7", "15", "255":
				return TerminalModeLight
			}
		}
	}

	for _, env := range []string{"TERM_THEME", "THEME"} {
		theme := strings.ToLower(os.Getenv(env))
		if strings.Contains(theme, "dark") {
			return TerminalModeDark
		} else if strings.Contains(theme, "light") {
			return TerminalModeLight
		}
	}

	return TerminalModeDark
}

func createLightColorScheme() (*ColorScheme, *Palette) {
	return &ColorScheme{
			Primary:   ui.Color(4),
			OnPrimary: ui.ColorWhite,
			Border:    ui.Color(8),
			Focus:     ui.Color(4),
			Text:      ui.ColorBlack,
		}, &Palette{
			Accent:  lipgloss.Color("25"),
			Key:     lipgloss.Color("90"),
			Muted:   lipgloss.Color("240"),
			Success: lipgloss.Color("28"),
			Failure: lipgloss.Color("160"),
			Border:  lipgloss.Color("245"),
		}
}

func createDarkColorScheme() (*ColorScheme, *Palette) {
	return &ColorScheme{
			Primary:   ui.Color(6),
			OnPrimary: ui.ColorBlack,
			Border:    ui.Color(240),
			Focus:     ui.Color(14),
			Text:      ui.ColorWhite,
		}, &Palette{
			Accent:  lipgloss.Color("39"),
			Key:     lipgloss.Color("205"),
			Muted:   lipgloss.Color("243"),
			Success: lipgloss.Color("46"),
			Failure: lipgloss.Color("196"),
			Border:  lipgloss.Color("62"),
		}
}

// InitializeColors detects the terminal mode and selects colours to match.
func InitializeColors() {
	detectedMode = detectTerminalMode()

	if detectedMode == TerminalModeLight {
		currentColorScheme, currentPalette = createLightColorScheme()
		Green, Info, Warning, Error = "\033[32m", "\033[34m", "\033[33m", "\033[31m"
	} else {
		currentColorScheme, currentPalette = createDarkColorScheme()
		Green, Info, Warning, Error = "\033[92m", "\033[96m", "\033[93m", "\033[91m"
	}
}

// DisableANSI blanks the escape codes, e.g. when stdout is not a terminal.
func DisableANSI() {
	Green, Info, Warning, Error, Reset = "", "", "", "", ""
}

func GetColorScheme() *ColorScheme {
	if currentColorScheme == nil {
		InitializeColors()
	}
	return currentColorScheme
}

func GetPalette() *Palette {
	if currentPalette == nil {
		InitializeColors()
	}
	return currentPalette
}

func GetTerminalMode() TerminalMode {
	return detectedMode
}

func StyleBorder(focused bool) ui.Style {
	scheme := GetColorScheme()
	if focused {
		return ui.NewStyle(scheme.Focus)
	}
	return ui.NewStyle(scheme.Border)
}
