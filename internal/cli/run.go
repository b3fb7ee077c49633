package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/recap-flow/internal/processor"
)

type runFlags struct {
	rag        bool
	diarize    bool
	extended   bool
	transcript bool
	toFile     bool
	docx       bool
}

func (f *runFlags) register(cmd *cobra.Command, withDiarize bool) {
	fl := cmd.Flags()
	fl.BoolVar(&f.rag, "rag", false, "structured meeting summary through retrieval over the transcript")
	fl.BoolVarP(&f.extended, "extended", "e", false, "add topic category, keywords and a transcript extract")
	fl.BoolVarP(&f.transcript, "transcript", "t", false, "print the transcript only, no summary")
	fl.BoolVarP(&f.toFile, "file", "f", false, "write the result under the results directory")
	fl.BoolVar(&f.docx, "docx", false, "also write a .docx copy of every written result")
	if withDiarize {
		fl.BoolVar(&f.diarize, "diarize", false, "label speakers through the diarization service")
	}
}

func (a *app) request(input string, kind processor.Kind, f runFlags) processor.Request {
	return processor.Request{
		Input:          input,
		Kind:           kind,
		Language:       a.cfg.Output.Language,
		Model:          a.flags.model,
		RAG:            f.rag,
		Diarize:        f.diarize,
		Extended:       f.extended,
		TranscriptOnly: f.transcript,
		ToFile:         f.toFile,
		Docx:           f.docx,
	}
}

func newYouTubeCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "youtube <url>",
		Short: "Summarize the captions of a YouTube video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOnce(cmd, a.request(args[0], processor.KindYouTube, f))
		},
	}
	f.register(cmd, false)
	return cmd
}

func newFileCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Transcribe a local video or audio file, or summarize a .txt transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := processor.KindFromPath(args[0])
			if !ok {
				return fmt.Errorf("unsupported file type: %s", args[0])
			}
			return a.runOnce(cmd, a.request(args[0], kind, f))
		},
	}
	f.register(cmd, true)
	return cmd
}

func (a *app) runOnce(cmd *cobra.Command, req processor.Request) error {
	proc, err := a.newProcessor(newBarReporter(a.stderr))
	if err != nil {
		return err
	}
	out, err := proc.Process(cmd.Context(), req)
	if err != nil {
		return err
	}
	printOutput(cmd.OutOrStdout(), out)
	return nil
}

func printOutput(w io.Writer, out processor.Output) {
	fmt.Fprintln(w, out.Markdown)
	for _, path := range out.Files {
		fmt.Fprintf(w, "Saved: %s\n", path)
	}
}
