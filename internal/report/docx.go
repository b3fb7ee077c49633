package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont  = "Calibri"
	docxSize  = 11
	docxColor = "000000"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[-*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+.+$`)
)

// WriteDocx renders a markdown summary to a docx file at path.
func WriteDocx(title, markdown, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, headingSize(1))

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == "---":
			continue
		case reHeading.MatchString(line):
			m := reHeading.FindStringSubmatch(line)
			addRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
		case reBullet.MatchString(line):
			m := reBullet.FindStringSubmatch(line)
			addInline(doc.AddParagraph(""), "• "+m[1])
		case reNumbered.MatchString(line):
			addInline(doc.AddParagraph(""), line)
		default:
			addInline(doc.AddParagraph(""), line)
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteTranscriptDocx renders a transcript to a docx file at path, one
// paragraph per line. Speaker prefixes of "speaker: text" lines are bold.
func WriteTranscriptDocx(title, transcript, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, true, headingSize(1))
	doc.AddParagraph("")

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p := doc.AddParagraph("")
		if who, text, ok := strings.Cut(line, ": "); ok {
			addRun(p, who+": ", true, docxSize)
			addRun(p, text, false, docxSize)
			continue
		}
		addRun(p, line, false, docxSize)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	default:
		return docxSize
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripInline(text)).Font(docxFont).Size(size).Color(docxColor)
	if bold {
		run.Bold(true)
	}
}

// addInline writes text to p, turning **bold** spans into bold runs.
func addInline(p *docx.Paragraph, text string) {
	plain := reBold.Split(text, -1)
	bold := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range plain {
		if part != "" {
			addRun(p, part, false, docxSize)
		}
		if i < len(bold) {
			addRun(p, bold[i][1], true, docxSize)
		}
	}
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
