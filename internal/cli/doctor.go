package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var errPrerequisites = errors.New("some prerequisites are missing")

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools, models and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.doctor(cmd.OutOrStdout())
		},
	}
}

func (a *app) doctor(w io.Writer) error {
	cfg := a.cfg
	ok := true
	check := func(name string, passed, required bool, detail string) {
		mark := "✓"
		if !passed {
			mark = "✗"
			if required {
				ok = false
			} else {
				mark = "-"
			}
		}
		fmt.Fprintf(w, "%s %-22s %s\n", mark, name, detail)
	}

	check("ffmpeg", a.exec.Available("ffmpeg"), true, "needed for local media")

	if cfg.Transcription.Backend == "whisper" {
		check("whisper binary", a.exec.Available(cfg.Whisper.BinaryPath), true, cfg.Whisper.BinaryPath)
		_, err := os.Stat(cfg.Whisper.ModelPath)
		check("whisper model", err == nil, true, cfg.Whisper.ModelPath)
	}

	switch cfg.LLM.Provider {
	case "gemini":
		check("Gemini API keys", len(cfg.LLM.GeminiKeys) > 0, true, "GEMINI_API_KEYS or llm.gemini_keys")
	default:
		check("OpenAI API key", cfg.LLM.APIKey != "", true, "OPENAI_API_KEY or llm.api_key")
	}

	check("diarization service", cfg.Diarization.URL != "", false, "diarization.url, needed for --diarize")
	check("results directory", true, true, cfg.Paths.Results)

	if !ok {
		return errPrerequisites
	}
	fmt.Fprintln(w, "\nAll prerequisites met.")
	return nil
}
