package cmd

import (
	"fmt"
	"time"

	"github.com/goonidz/ghsecret/internal/ui"
	"github.com/goonidz/ghsecret/internal/utils"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message unless
// verbose or debug output is on, or stdout is not a terminal.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; cleanup adds one
// and prints the message after the spinner line has been cleared.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && utils.IsStdoutTerminal()
	if animate {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// setSpinnerMessage changes the spinner text while it is running.
func setSpinnerMessage(s *spinner.Spinner, message string) {
	s.Lock()
	s.Suffix = " " + message
	s.Unlock()
	Logger.Infof("%s", message)
}
