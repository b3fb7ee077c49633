package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/report"
	"github.com/nguyentantai21042004/recap-flow/internal/speaker"
)

// source is the transcript of one input before summarization.
type source struct {
	kind       Kind
	title      string
	stem       string
	language   string
	transcript string
	// saved is set when the transcript was written to the results dir.
	saved string
}

// Process fetches or transcribes the input, then summarizes it.
func (p *implProcessor) Process(ctx context.Context, req Request) (Output, error) {
	startTime := time.Now()
	if req.Language == "" {
		req.Language = p.cfg.Output.Language
	}
	req.Docx = req.Docx || p.cfg.Output.Docx

	p.logger.Info(ctx, "Processing %s input: %s", req.Kind, req.Input)

	src, err := p.load(ctx, req)
	if err != nil {
		return Output{}, err
	}

	out := Output{
		Title:      src.title,
		Language:   src.language,
		Transcript: src.transcript,
		Sentiment:  string(p.deps.Sentiment.Analyze(src.transcript)),
	}
	if src.saved != "" {
		out.Files = append(out.Files, src.saved)
	}
	p.logger.Info(ctx, "Sentiment: %s", out.Sentiment)

	switch {
	case req.TranscriptOnly:
		err = p.transcriptOnly(ctx, req, src, &out)
	case req.RAG:
		err = p.summarizeRAG(ctx, req, src, &out)
	default:
		err = p.summarizeSimple(ctx, req, src, &out)
	}
	if err != nil {
		return out, err
	}

	p.logger.Info(ctx, "Done %s in %s", req.Input, time.Since(startTime).Round(time.Millisecond))
	return out, nil
}

// load returns the transcript of the input. Local media transcripts are
// saved as {stem}.txt before anything else happens.
func (p *implProcessor) load(ctx context.Context, req Request) (source, error) {
	switch req.Kind {
	case KindYouTube:
		caption, err := p.deps.Captions.Fetch(ctx, req.Input)
		if err != nil {
			return source{}, err
		}
		return source{
			kind:       KindYouTube,
			title:      caption.Title,
			stem:       fileStem(caption.Title),
			language:   req.Language,
			transcript: caption.Text,
		}, nil

	case KindText:
		data, err := os.ReadFile(req.Input)
		if err != nil {
			return source{}, fmt.Errorf("read transcript: %w", err)
		}
		stem := stemOf(req.Input)
		return source{kind: KindText, title: stem, stem: stem, language: req.Language, transcript: string(data)}, nil

	case KindMedia:
		res, err := p.transcribeMedia(ctx, req.Input, req.Diarize)
		if err != nil {
			return source{}, fmt.Errorf("transcribe: %w", err)
		}
		stem := stemOf(req.Input)
		src := source{
			kind:       KindMedia,
			title:      stem,
			stem:       stem,
			language:   summaryLanguage(req.Language, res.Language),
			transcript: res.Text,
		}
		saved, err := p.writeResult(ctx, stem+".txt", res.Text)
		if err != nil {
			return source{}, err
		}
		src.saved = saved
		return src, nil

	default:
		return source{}, fmt.Errorf("unsupported input kind %d", req.Kind)
	}
}

func (p *implProcessor) transcriptOnly(ctx context.Context, req Request, src source, out *Output) error {
	out.Markdown = fmt.Sprintf("%s\n\nSentiment: %s\n", src.transcript, out.Sentiment)

	path := src.saved
	if path == "" && req.ToFile {
		var err error
		if path, err = p.writeResult(ctx, src.stem+".txt", src.transcript); err != nil {
			return err
		}
		out.Files = append(out.Files, path)
	}

	if req.Docx && path != "" {
		docx, err := p.writeDocx(ctx, src.title, path, src.transcript, true)
		if err != nil {
			return err
		}
		out.Files = append(out.Files, docx)
	}
	return nil
}

// summarizeRAG indexes the speaker-attributed transcript and formats the
// structured meeting summary. The result is always written to disk.
func (p *implProcessor) summarizeRAG(ctx context.Context, req Request, src source, out *Output) error {
	utterances := speakerUtterances(src)
	if names := speaker.NameMap(utterances); len(names) > 0 {
		p.logger.Info(ctx, "Resolved speakers: %v", names)
	}
	utterances = speaker.ResolveNames(utterances)

	model := req.Model
	if model == "" {
		model = p.cfg.RAG.Model
	}

	p.logger.Info(ctx, "Generating summary via RAG with %s...", model)
	raw, err := p.deps.Orchestrator.Generate(ctx, utterances, src.language, model)
	if err != nil {
		p.logger.Error(ctx, "Error generating summary: %v", err)
		return err
	}

	out.Markdown = report.FormatSummary(raw, src.stem, src.language)
	path, err := p.writeResult(ctx, report.SummaryFileName(src.stem, src.language), out.Markdown)
	if err != nil {
		return err
	}
	out.Files = append(out.Files, path)

	if req.Docx {
		docx, err := p.writeDocx(ctx, src.title, path, out.Markdown, false)
		if err != nil {
			return err
		}
		out.Files = append(out.Files, docx)
	}
	return nil
}

// summarizeSimple asks the model for a free-form summary of the whole
// transcript. The file, when requested, is named after the title.
func (p *implProcessor) summarizeSimple(ctx context.Context, req Request, src source, out *Output) error {
	summary, err := p.deps.Summarizer.Summarize(ctx, src.transcript, src.language)
	if err != nil {
		return err
	}

	if req.Extended {
		out.Markdown = report.FormatExtended(report.Extended{
			Title:      src.title,
			Source:     req.Input,
			Summary:    summary,
			Sentiment:  out.Sentiment,
			Category:   p.degraded(ctx, "category", p.deps.Summarizer.Categorize, src),
			Keywords:   p.degraded(ctx, "keywords", p.deps.Summarizer.Keywords, src),
			Transcript: src.transcript,
		}, src.language)
	} else {
		out.Markdown = report.FormatSimple(src.title, req.Input, summary, out.Sentiment, src.language)
	}

	if !req.ToFile {
		return nil
	}
	path, err := p.writeResult(ctx, src.stem+".md", out.Markdown)
	if err != nil {
		return err
	}
	out.Files = append(out.Files, path)

	if req.Docx {
		docx, err := p.writeDocx(ctx, src.title, path, out.Markdown, false)
		if err != nil {
			return err
		}
		out.Files = append(out.Files, docx)
	}
	return nil
}

// degraded runs an optional field lookup; a failure becomes the field text.
func (p *implProcessor) degraded(ctx context.Context, field string, fn func(context.Context, string, string) (string, error), src source) string {
	v, err := fn(ctx, src.transcript, src.language)
	if err != nil {
		p.logger.Warn(ctx, "No %s for %s: %v", field, src.title, err)
		return err.Error()
	}
	return strings.TrimSpace(v)
}

// speakerUtterances reads "speaker: text" lines from transcripts and
// diarized media. Captions are prose, where a colon inside a wrapped line
// does not name a speaker, so they always take the plain path; so does a
// transcript without any speaker line.
func speakerUtterances(src source) []speaker.Utterance {
	if src.kind != KindYouTube {
		if utterances := speaker.Parse(src.transcript); len(utterances) > 0 {
			return utterances
		}
	}
	return plainUtterances(src.transcript)
}

// plainUtterances attributes caption text without speaker labels to a
// single anonymous speaker, one utterance per line.
func plainUtterances(text string) []speaker.Utterance {
	var out []speaker.Utterance
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, speaker.Utterance{Speaker: "Transcript", Text: line})
		}
	}
	return out
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
