package render

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/yungbote/quizreel-backend/internal/content"
	"github.com/yungbote/quizreel-backend/internal/platform/logger"
)

const (
	cardW = 1080
	cardH = 1920

	slideW = 1080
	slideH = 1350

	margin = 80.0
)

var (
	bgDark      = color.NRGBA{R: 9, G: 12, B: 24, A: 255}
	bgEditor    = color.NRGBA{R: 24, G: 26, B: 38, A: 255}
	bgTerminal  = color.NRGBA{R: 6, G: 8, B: 12, A: 255}
	fgPrimary   = color.NRGBA{R: 236, G: 239, B: 244, A: 255}
	fgSecondary = color.NRGBA{R: 160, G: 170, B: 190, A: 255}
	fgAccent    = color.NRGBA{R: 96, G: 200, B: 255, A: 255}
	fgCorrect   = color.NRGBA{R: 120, G: 220, B: 140, A: 255}
)

// Service renders accepted content items into card images. It never sees
// rejected content.
type Service interface {
	RenderItem(ctx context.Context, item content.Item, profile Profile, outDir string) ([]string, error)
	RenderCarousel(ctx context.Context, item content.Item, profile Profile, outDir string) ([]string, error)
	RenderCTA(ctx context.Context, outDir string) (string, error)
}

type service struct {
	log *logger.Logger

	// Parsed fonts are immutable and safe to share; faces carry a mutable
	// glyph cache, so concurrent renders build their own from these.
	textFont *truetype.Font
	codeFont *truetype.Font

	titleFace font.Face
	bodyFace  font.Face
	smallFace font.Face
	codeFace  font.Face
}

func New(log *logger.Logger) (Service, error) {
	serviceLog := log.With("service", "CardRenderer")

	fontPath := strings.TrimSpace(os.Getenv("CARD_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("Env var CARD_FONT is empty")
	}
	codeFontPath := strings.TrimSpace(os.Getenv("CARD_CODE_FONT"))
	if codeFontPath == "" {
		codeFontPath = fontPath
	}
	serviceLog.Info("Loading card fonts", "font", fontPath, "code_font", codeFontPath)

	textFont, err := parseFont(fontPath)
	if err != nil {
		return nil, fmt.Errorf("could not load card font: %w", err)
	}
	codeFont := textFont
	if codeFontPath != fontPath {
		codeFont, err = parseFont(codeFontPath)
		if err != nil {
			return nil, fmt.Errorf("could not load code font: %w", err)
		}
	}

	return &service{
		log:       serviceLog,
		textFont:  textFont,
		codeFont:  codeFont,
		titleFace: newFace(textFont, 72),
		bodyFace:  newFace(textFont, 46),
		smallFace: newFace(textFont, 36),
		codeFace:  newFace(codeFont, 40),
	}, nil
}

// RenderItem produces the reel card set for one item: question card, answer
// card, and explanation card (card-type content collapses to a single card).
func (s *service) RenderItem(ctx context.Context, item content.Item, profile Profile, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir outDir: %w", err)
	}

	if profile.Name == "card" {
		path := filepath.Join(outDir, fmt.Sprintf("%s_card.png", item.ID))
		if err := s.drawWisdomCard(item, path); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	paths := make([]string, 0, 3)
	steps := []struct {
		suffix string
		draw   func(content.Item, Profile, string) error
	}{
		{"question", s.drawQuestionCard},
		{"answer", func(it content.Item, p Profile, path string) error { return s.drawAnswerCard(it, path) }},
		{"explanation", func(it content.Item, p Profile, path string) error { return s.drawExplanationCard(it, path) }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(outDir, fmt.Sprintf("%s_%s.png", item.ID, step.suffix))
		if err := step.draw(item, profile, path); err != nil {
			return nil, fmt.Errorf("render %s card: %w", step.suffix, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *service) drawQuestionCard(item content.Item, profile Profile, path string) error {
	dc := gg.NewContext(cardW, cardH)
	dc.SetColor(bgDark)
	dc.Clear()

	y := margin + 40

	dc.SetFontFace(s.titleFace)
	dc.SetColor(fgAccent)
	y = drawWrapped(dc, item.Title, margin, y, cardW-2*margin, 1.3)
	y += 40

	body := item.Scenario
	if item.Puzzle != "" {
		body = item.Puzzle
		if item.VisualElements != "" {
			body += "\n" + item.VisualElements
		}
	}
	if body != "" {
		dc.SetFontFace(s.bodyFace)
		dc.SetColor(fgPrimary)
		y = drawWrapped(dc, body, margin, y, cardW-2*margin, 1.4)
		y += 40
	}

	if profile.HasCode && item.Code != "" {
		y = s.drawCodeBlock(dc, item.Code, profile.CodeStyle, y)
		y += 40
	}

	dc.SetFontFace(s.bodyFace)
	dc.SetColor(fgPrimary)
	y = drawWrapped(dc, item.Question, margin, y, cardW-2*margin, 1.4)
	y += 50

	if profile.HasOptions {
		dc.SetFontFace(s.bodyFace)
		letters := []string{"A", "B", "C", "D"}
		for i, opt := range item.Options {
			if i >= len(letters) {
				break
			}
			dc.SetColor(fgAccent)
			dc.DrawString(letters[i]+".", margin, y)
			dc.SetColor(fgPrimary)
			y = drawWrapped(dc, opt, margin+70, y, cardW-2*margin-70, 1.3)
			y += 24
		}
	}

	return dc.SavePNG(path)
}

func (s *service) drawAnswerCard(item content.Item, path string) error {
	dc := gg.NewContext(cardW, cardH)
	dc.SetColor(bgDark)
	dc.Clear()

	dc.SetFontFace(s.titleFace)
	dc.SetColor(fgSecondary)
	dc.DrawStringAnchored("Answer", cardW/2, cardH*0.35, 0.5, 0.5)

	answer := item.Correct
	if idx := optionIndex(item.Correct); idx >= 0 && idx < len(item.Options) {
		answer = fmt.Sprintf("%s. %s", item.Correct, item.Options[idx])
	}

	dc.SetFontFace(s.titleFace)
	dc.SetColor(fgCorrect)
	drawWrappedAnchored(dc, answer, cardW/2, cardH*0.48, cardW-2*margin, 1.3)

	return dc.SavePNG(path)
}

func (s *service) drawExplanationCard(item content.Item, path string) error {
	dc := gg.NewContext(cardW, cardH)
	dc.SetColor(bgDark)
	dc.Clear()

	y := cardH * 0.25

	dc.SetFontFace(s.titleFace)
	dc.SetColor(fgAccent)
	dc.DrawString("Why?", margin, y)
	y += 90

	dc.SetFontFace(s.bodyFace)
	dc.SetColor(fgPrimary)
	y = drawWrapped(dc, item.Explanation, margin, y, cardW-2*margin, 1.5)

	if item.FunFact != "" {
		y += 80
		dc.SetFontFace(s.smallFace)
		dc.SetColor(fgSecondary)
		drawWrapped(dc, "Fun fact: "+item.FunFact, margin, y, cardW-2*margin, 1.4)
	}

	return dc.SavePNG(path)
}

func (s *service) drawWisdomCard(item content.Item, path string) error {
	dc := gg.NewContext(cardW, cardH)
	dc.SetColor(bgDark)
	dc.Clear()

	y := margin + 60

	dc.SetFontFace(s.smallFace)
	dc.SetColor(fgSecondary)
	dc.DrawString(strings.ToUpper(strings.ReplaceAll(item.Category, "_", " ")), margin, y)
	y += 70

	dc.SetFontFace(s.titleFace)
	dc.SetColor(fgAccent)
	y = drawWrapped(dc, item.Question, margin, y, cardW-2*margin, 1.3)
	y += 60

	dc.SetFontFace(s.bodyFace)
	dc.SetColor(fgPrimary)
	y = drawWrapped(dc, item.Explanation, margin, y, cardW-2*margin, 1.5)
	y += 50

	if item.Example != "" {
		dc.SetFontFace(s.smallFace)
		dc.SetColor(fgSecondary)
		y = drawWrapped(dc, item.Example, margin, y, cardW-2*margin, 1.4)
		y += 50
	}

	if item.Action != "" {
		dc.SetFontFace(s.bodyFace)
		dc.SetColor(fgCorrect)
		y = drawWrapped(dc, item.Action, margin, y, cardW-2*margin, 1.4)
	}

	if item.Source != "" {
		dc.SetFontFace(s.smallFace)
		dc.SetColor(fgSecondary)
		dc.DrawString(item.Source, margin, cardH-margin)
	}

	return dc.SavePNG(path)
}

// RenderCTA draws the closing card stitched at the end of every reel.
func (s *service) RenderCTA(ctx context.Context, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir outDir: %w", err)
	}
	path := filepath.Join(outDir, "cta.png")

	dc := gg.NewContext(cardW, cardH)
	dc.SetColor(bgDark)
	dc.Clear()

	dc.SetFontFace(s.titleFace)
	dc.SetColor(fgPrimary)
	dc.DrawStringAnchored("Got it right?", cardW/2, cardH*0.40, 0.5, 0.5)

	dc.SetFontFace(s.bodyFace)
	dc.SetColor(fgSecondary)
	dc.DrawStringAnchored("Answer in the comments", cardW/2, cardH*0.48, 0.5, 0.5)

	dc.SetFontFace(s.bodyFace)
	dc.SetColor(fgAccent)
	dc.DrawStringAnchored("Follow for a new quiz every day", cardW/2, cardH*0.56, 0.5, 0.5)

	if err := dc.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *service) drawCodeBlock(dc *gg.Context, code, style string, y float64) float64 {
	lines := strings.Split(code, "\n")
	lineH := 54.0
	padding := 36.0
	blockH := float64(len(lines))*lineH + 2*padding

	var bg color.NRGBA
	switch style {
	case "terminal":
		bg = bgTerminal
	default:
		bg = bgEditor
	}
	dc.SetColor(bg)
	dc.DrawRoundedRectangle(margin, y, cardW-2*margin, blockH, 18)
	dc.Fill()

	// Editor chrome dots.
	if style == "editor" {
		for i, c := range []color.NRGBA{
			{R: 255, G: 95, B: 86, A: 255},
			{R: 255, G: 189, B: 46, A: 255},
			{R: 39, G: 201, B: 63, A: 255},
		} {
			dc.SetColor(c)
			dc.DrawCircle(margin+30+float64(i)*36, y+26, 9)
			dc.Fill()
		}
	}

	dc.SetFontFace(s.codeFace)
	dc.SetColor(fgPrimary)
	ty := y + padding + 30
	if style == "editor" {
		ty += 20
	}
	for _, line := range lines {
		prefix := ""
		if style == "terminal" {
			prefix = "$ "
		}
		dc.DrawString(prefix+line, margin+padding, ty)
		ty += lineH
	}

	return y + blockH
}

// drawWrapped draws word-wrapped text at (x, y) and returns the y below it.
func drawWrapped(dc *gg.Context, text string, x, y, width, lineSpacing float64) float64 {
	lines := dc.WordWrap(text, width)
	_, lh := dc.MeasureString("Mg")
	for _, line := range lines {
		dc.DrawString(line, x, y)
		y += lh * lineSpacing
	}
	return y
}

func drawWrappedAnchored(dc *gg.Context, text string, cx, y, width, lineSpacing float64) {
	lines := dc.WordWrap(text, width)
	_, lh := dc.MeasureString("Mg")
	for _, line := range lines {
		dc.DrawStringAnchored(line, cx, y, 0.5, 0.5)
		y += lh * lineSpacing
	}
}

func optionIndex(letter string) int {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "D":
		return 3
	default:
		return -1
	}
}

func parseFont(fontPath string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return parsedFont, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
