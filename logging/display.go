package logging

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// displayDiagnostic renders a single diagnostic with its severity banner and
// source coordinates.  The semantic core never reads source files, so the
// position is rendered numerically rather than as a code excerpt.
func displayDiagnostic(d *Diagnostic) {
	fmt.Print("-- ")

	switch d.Severity() {
	case SeverityError:
		ErrorStyleBG.Printf("Error [E%04d]", d.Code)
	case SeverityWarning:
		WarnStyleBG.Printf("Warning [W%04d]", d.Code)
	default:
		InfoStyleBG.Printf("Note [N%04d]", d.Code)
	}

	fmt.Print(" ")

	if d.Position != nil && d.Position != NoPosition {
		InfoColorFG.Print("(" + d.Position.Repr() + ") ")
	}

	fmt.Println(d.Message())
}

const fatalErrorPostlude = `
This is likely a bug in the elaborator; it should never fail this way on user
input.`

// DisplayFatalError reports an internal invariant violation before the
// process terminates
func DisplayFatalError(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(msg)
	InfoColorFG.Println(fatalErrorPostlude)
}
