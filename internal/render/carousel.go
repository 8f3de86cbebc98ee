package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/quizreel-backend/internal/content"
)

// RenderCarousel produces the carousel for one item: hook, question,
// options (multiple-choice profiles only), answer, explanation, CTA. Slides
// render concurrently but the returned paths are always in slide order.
func (s *service) RenderCarousel(ctx context.Context, item content.Item, profile Profile, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir outDir: %w", err)
	}

	type slideSpec struct {
		name string
		draw func(dc *gg.Context)
	}
	slides := []slideSpec{
		{"hook", func(dc *gg.Context) { s.drawHookSlide(dc, item) }},
		{"question", func(dc *gg.Context) { s.drawQuestionSlide(dc, item, profile) }},
	}
	if profile.HasOptions {
		slides = append(slides,
			slideSpec{"options", func(dc *gg.Context) { s.drawOptionsSlide(dc, item) }},
		)
	}
	slides = append(slides,
		slideSpec{"answer", func(dc *gg.Context) { s.drawAnswerSlide(dc, item) }},
		slideSpec{"explanation", func(dc *gg.Context) { s.drawExplanationSlide(dc, item) }},
		slideSpec{"cta", func(dc *gg.Context) { s.drawCTASlide(dc) }},
	)

	paths := make([]string, len(slides))
	g, gctx := errgroup.WithContext(ctx)
	for i, slide := range slides {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(outDir, fmt.Sprintf("%s_slide%d_%s.png", item.ID, i+1, slide.name))
			dc := gg.NewContext(slideW, slideH)
			dc.SetColor(bgDark)
			dc.Clear()
			slide.draw(dc)
			if err := dc.SavePNG(path); err != nil {
				return fmt.Errorf("render slide %s: %w", slide.name, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Slide draw funcs build their own faces: truetype faces are not safe for
// concurrent use.
func (s *service) drawHookSlide(dc *gg.Context, item content.Item) {
	dc.SetFontFace(newFace(s.textFont, 30))
	dc.SetColor(fgSecondary)
	dc.DrawString(strings.ToUpper(item.Subject), margin, margin+20)

	dc.SetFontFace(newFace(s.textFont, 80))
	dc.SetColor(fgAccent)
	drawWrappedAnchored(dc, item.Title, slideW/2, slideH*0.45, slideW-2*margin, 1.3)

	dc.SetFontFace(newFace(s.textFont, 40))
	dc.SetColor(fgSecondary)
	dc.DrawStringAnchored("Swipe to play", slideW/2, slideH*0.85, 0.5, 0.5)
}

func (s *service) drawQuestionSlide(dc *gg.Context, item content.Item, profile Profile) {
	y := margin + 40

	body := item.Scenario
	if item.Puzzle != "" {
		body = item.Puzzle
		if item.VisualElements != "" {
			body += "\n" + item.VisualElements
		}
	}
	if body != "" {
		dc.SetFontFace(newFace(s.textFont, 44))
		dc.SetColor(fgPrimary)
		y = drawWrapped(dc, body, margin, y, slideW-2*margin, 1.4)
		y += 40
	}

	if profile.HasCode && item.Code != "" {
		dc.SetFontFace(newFace(s.codeFont, 38))
		dc.SetColor(fgPrimary)
		for _, line := range strings.Split(item.Code, "\n") {
			dc.DrawString(line, margin, y)
			y += 50
		}
		y += 40
	}

	dc.SetFontFace(newFace(s.textFont, 48))
	dc.SetColor(fgAccent)
	drawWrapped(dc, item.Question, margin, y, slideW-2*margin, 1.4)
}

func (s *service) drawOptionsSlide(dc *gg.Context, item content.Item) {
	dc.SetFontFace(newFace(s.textFont, 40))
	dc.SetColor(fgSecondary)
	dc.DrawString("Your options", margin, margin+20)

	y := slideH * 0.25
	dc.SetFontFace(newFace(s.textFont, 48))
	letters := []string{"A", "B", "C", "D"}
	for i, opt := range item.Options {
		if i >= len(letters) {
			break
		}
		dc.SetColor(fgAccent)
		dc.DrawString(letters[i]+".", margin, y)
		dc.SetColor(fgPrimary)
		y = drawWrapped(dc, opt, margin+80, y, slideW-2*margin-80, 1.3)
		y += 50
	}
}

func (s *service) drawAnswerSlide(dc *gg.Context, item content.Item) {
	dc.SetFontFace(newFace(s.textFont, 44))
	dc.SetColor(fgSecondary)
	dc.DrawStringAnchored("Answer", slideW/2, slideH*0.35, 0.5, 0.5)

	answer := item.Correct
	if idx := optionIndex(item.Correct); idx >= 0 && idx < len(item.Options) {
		answer = fmt.Sprintf("%s. %s", item.Correct, item.Options[idx])
	}
	if answer == "" {
		answer = item.Action
	}

	dc.SetFontFace(newFace(s.textFont, 64))
	dc.SetColor(fgCorrect)
	drawWrappedAnchored(dc, answer, slideW/2, slideH*0.48, slideW-2*margin, 1.3)
}

func (s *service) drawExplanationSlide(dc *gg.Context, item content.Item) {
	y := margin + 60

	dc.SetFontFace(newFace(s.textFont, 56))
	dc.SetColor(fgAccent)
	dc.DrawString("Why?", margin, y)
	y += 80

	dc.SetFontFace(newFace(s.textFont, 44))
	dc.SetColor(fgPrimary)
	y = drawWrapped(dc, item.Explanation, margin, y, slideW-2*margin, 1.5)

	if item.FunFact != "" {
		y += 60
		dc.SetFontFace(newFace(s.textFont, 36))
		dc.SetColor(fgSecondary)
		drawWrapped(dc, "Fun fact: "+item.FunFact, margin, y, slideW-2*margin, 1.4)
	}
}

func (s *service) drawCTASlide(dc *gg.Context) {
	dc.SetFontFace(newFace(s.textFont, 56))
	dc.SetColor(fgPrimary)
	dc.DrawStringAnchored("Got it right?", slideW/2, slideH*0.40, 0.5, 0.5)

	dc.SetFontFace(newFace(s.textFont, 44))
	dc.SetColor(fgAccent)
	dc.DrawStringAnchored("Follow for a new quiz every day", slideW/2, slideH*0.52, 0.5, 0.5)
}
