package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/gallery"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Check that every reference image enrolls cleanly",
	Long: `Enroll the reference images without opening the camera and report, for each
person, whether their encoding matches itself and how close the nearest
other person is. Use it to catch images with no face or several faces, and
people the threshold cannot tell apart.

Examples:
  face-attendance enroll
  face-attendance enroll --faces ./class-photos --threshold 0.5`,
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)
	addGalleryFlags(enrollCmd)
}

func runEnroll(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()
	applyFlags(cmd, cfg)

	refs, err := gallery.ResolveReferences(cfg.Gallery.File, cfg.Gallery.FacesDir)
	if err != nil {
		return err
	}
	opts, err := enrollOptions(cfg)
	if err != nil {
		return err
	}
	opts.Progress = os.Stderr

	encoder, closeEncoder, err := newEncoder(cfg)
	if err != nil {
		return err
	}
	defer closeEncoder()

	g, err := gallery.Enroll(ctx, encoder, refs, opts)
	if err != nil {
		return err
	}

	fmt.Printf("\nGallery: %d faces, %d dimensions, %s distance, threshold %.3f\n\n",
		g.Len(), g.Dim(), g.Metric(), g.Threshold())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSELF\tNEAREST\tDISTANCE\tSTATUS")
	var problems int
	for _, r := range g.SelfCheck() {
		status := "ok"
		switch {
		case !r.SelfMatch:
			status = "does not match itself"
			problems++
		case r.Confusable:
			status = "confusable with " + r.Nearest
			problems++
		}
		nearest, dist := "-", "-"
		if r.Nearest != "" {
			nearest = r.Nearest
			dist = fmt.Sprintf("%.3f", r.NearestDistance)
		}
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%s\t%s\n", r.Name, r.SelfDistance, nearest, dist, status)
	}
	w.Flush()

	if problems > 0 {
		return fmt.Errorf("%d gallery entries need attention", problems)
	}
	return nil
}
