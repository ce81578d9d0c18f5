package main

import (
	"errors"
	"fmt"

	"bwcalc/internal/imageref"

	"github.com/spf13/cobra"
)

// errBlocked is returned when the image URL fails validation.
var errBlocked = errors.New("image url blocked")

// imageCmd validates an image URL
var imageCmd = &cobra.Command{
	Use:   "image URL",
	Short: "Check whether an image URL would be shown",
	Long: `Prints the caption the image panel would show for URL. Only http and
https URLs with a host and data:image URIs are allowed; anything else prints
the blocked indicator and exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func runImage(cmd *cobra.Command, args []string) error {
	panel := imageref.Resolve(args[0])
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, panel.Label)
	if mt := panel.MediaType(); mt != "" {
		fmt.Fprintf(out, "media type: %s\n", mt)
	}
	if !panel.Allowed {
		return fmt.Errorf("%w: %q", errBlocked, args[0])
	}
	return nil
}
