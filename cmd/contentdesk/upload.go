package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgonek/contentdesk/document"
	"github.com/rgonek/contentdesk/editor"
	"github.com/rgonek/contentdesk/upload"
	"github.com/spf13/cobra"
)

const (
	modeSingle  = "single"
	modeGallery = "gallery"
	modeInline  = "inline"
)

type uploadOptions struct {
	mode      string
	maxImages int
	existing  []string
	into      string
	preset    string
	quiet     bool
}

func newUploadCommand(a *app) *cobra.Command {
	opts := &uploadOptions{}

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload images one after another to the media store",
		Long: "Upload sends files sequentially and reports the resulting URLs in submission order.\n" +
			"Modes: single replaces one image, gallery appends up to --max-images, inline inserts\n" +
			"the images into the HTML file given by --into.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", modeGallery, "Mode: single|gallery|inline")
	cmd.Flags().IntVar(&opts.maxImages, "max-images", -1, "Gallery cap (default from config, 0 for none)")
	cmd.Flags().StringArrayVar(&opts.existing, "existing", nil, "URL already in the field or gallery (repeatable)")
	cmd.Flags().StringVar(&opts.into, "into", "", "HTML file that receives inline images")
	cmd.Flags().StringVar(&opts.preset, "preset", presetBalanced, "Converter preset for inline mode")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print progress")
	return cmd
}

func runUpload(cmd *cobra.Command, a *app, opts *uploadOptions, paths []string) error {
	files := make([]upload.File, 0, len(paths))
	for _, path := range paths {
		f, err := upload.OpenFile(path)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	media, err := a.media()
	if err != nil {
		return err
	}

	var observerOpts []upload.Option
	if !opts.quiet {
		observerOpts = append(observerOpts, upload.WithObserver(progressPrinter(cmd.ErrOrStderr())))
	}
	controller := upload.NewController(media, observerOpts...)

	var (
		policy  upload.Policy
		slot    upload.Slot
		field   string
		gallery []string
		inline  *inlineTarget
	)

	switch opts.mode {
	case modeSingle:
		policy = upload.SinglePolicy()
		if len(opts.existing) > 0 {
			field = opts.existing[0]
		}
		slot = upload.FieldSlot(&field)
	case modeGallery:
		maxImages := opts.maxImages
		if maxImages < 0 {
			maxImages = a.cfg.Upload.MaxImages
		}
		policy = upload.GalleryPolicy(maxImages)
		gallery = append(gallery, opts.existing...)
		slot = upload.GallerySlot(&gallery)
	case modeInline:
		if opts.into == "" {
			return errors.New("--into is required in inline mode")
		}
		inline, err = openInlineTarget(a, opts)
		if err != nil {
			return err
		}
		policy = upload.InlinePolicy()
		policy.MaxFiles = 0
		slot = inline.session.ImageSlot()
	default:
		return fmt.Errorf("unknown mode %q (allowed: single, gallery, inline)", opts.mode)
	}
	policy.Accept = a.cfg.Upload.Accept
	policy.Extensions = a.cfg.Upload.Extensions

	report, err := controller.AcceptFiles(cmd.Context(), files, policy, slot)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.mode {
	case modeSingle:
		fmt.Fprintln(out, field)
	case modeGallery:
		for _, url := range gallery {
			fmt.Fprintln(out, url)
		}
	case modeInline:
		for _, url := range report.URLs {
			fmt.Fprintln(out, url)
		}
		if inline.err != nil {
			return inline.err
		}
	}

	return summarize(cmd.ErrOrStderr(), report)
}

// inlineTarget is an HTML file kept in sync with an editor session.
type inlineTarget struct {
	path    string
	session *editor.Session
	err     error
}

// openInlineTarget loads the target HTML; every edit writes it back.
func openInlineTarget(a *app, opts *uploadOptions) (*inlineTarget, error) {
	data, err := os.ReadFile(opts.into)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", opts.into, err)
	}

	parser, renderer, err := newConverters(opts.preset, a.cfg.Editor)
	if err != nil {
		return nil, err
	}

	target := &inlineTarget{path: opts.into}
	target.session = editor.NewSession(parser, renderer, func(html string) {
		if err := os.WriteFile(target.path, []byte(html+"\n"), 0o644); err != nil {
			target.err = fmt.Errorf("failed to write %s: %w", target.path, err)
		}
	})
	target.session.Load(string(data))
	for _, warning := range target.session.Warnings() {
		if warning.Type == document.WarningParseFailed {
			return nil, fmt.Errorf("refusing to edit %s, it could not be loaded: %s", target.path, warning.Message)
		}
		a.log.Warn().Str("file", target.path).Str("warning_type", string(warning.Type)).Msg(warning.Message)
	}
	return target, nil
}

func progressPrinter(w io.Writer) upload.Observer {
	return func(task upload.Task) {
		switch task.Status {
		case upload.StatusUploading:
			fmt.Fprintf(w, "uploading %s\n", task.File.Name)
		case upload.StatusSucceeded:
			fmt.Fprintf(w, "done      %s -> %s\n", task.File.Name, task.URL)
		case upload.StatusFailed:
			fmt.Fprintf(w, "failed    %s: %s\n", task.File.Name, task.Message)
		}
	}
}

// summarize prints rejections and returns an error when anything failed.
func summarize(w io.Writer, report upload.Report) error {
	for _, rejection := range report.Rejections {
		fmt.Fprintf(w, "rejected  %s\n", rejection)
	}
	if report.CapacityExceeded() {
		fmt.Fprintln(w, "image limit reached, some files were not uploaded")
	}
	if report.FailedCount() > 0 {
		return fmt.Errorf("%d of %d uploads failed", report.FailedCount(), len(report.Tasks))
	}
	return nil
}
