// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package pretty

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal colour identifiers, matching the teacher's termio package.
const (
	termRed     = uint(1)
	termYellow  = uint(3)
	termMagenta = uint(5)
)

// ansiEscape is a minimal ANSI SGR (foreground colour) escape sequence.
type ansiEscape struct {
	fg uint
}

func fgColour(col uint) ansiEscape {
	return ansiEscape{fg: col + 30}
}

func (e ansiEscape) wrap(s string) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", e.fg, s)
}

// ColourEnabled reports whether coloured output should be emitted: stdout
// must be a terminal, matching the teacher's own CLI layer (the only direct
// importer of golang.org/x/term in the whole teacher repo).
func ColourEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Magenta colours s for a hard constraint, if colour is enabled.
func Magenta(s string, enabled bool) string {
	if !enabled {
		return s
	}

	return fgColour(termMagenta).wrap(s)
}

// Yellow colours s for a path constraint, if colour is enabled.
func Yellow(s string, enabled bool) string {
	if !enabled {
		return s
	}

	return fgColour(termYellow).wrap(s)
}

// Red colours s for a soft constraint which has failed, if colour is
// enabled.
func Red(s string, enabled bool) string {
	if !enabled {
		return s
	}

	return fgColour(termRed).wrap(s)
}
