package main

import (
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zucenko/trails/config"
)

const (
	bannerFontSize = 32
	bannerPadding  = 16
	fadeSeconds    = .4
)

type Action struct {
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
}

// Banner is the end of round message, centered and fading in.
type Banner struct {
	Tweens map[*gween.Tween]Action

	face          font.Face
	panel         *Panel
	width, height int
	dt            float32
	text          string
	alpha         float64
}

func NewBanner(cfg *config.Config) (*Banner, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	panel, err := NewPanel()
	if err != nil {
		return nil, err
	}
	const dpi = 72
	return &Banner{
		Tweens: make(map[*gween.Tween]Action),
		face: truetype.NewFace(tt, &truetype.Options{
			Size:    bannerFontSize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		}),
		panel:  panel,
		width:  cfg.Width,
		height: cfg.Height,
		dt:     1 / float32(cfg.FPS),
	}, nil
}

func (b *Banner) Reset() {
	b.text = ""
	b.alpha = 0
	b.Tweens = make(map[*gween.Tween]Action)
}

func (b *Banner) Update() {
	for t, a := range b.Tweens {
		curr, finished := t.Update(b.dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			delete(b.Tweens, t)
		}
	}
}

func (b *Banner) show(s string) {
	b.text = s
	b.alpha = 0
	action := Action{onChange: func(v float32) { b.alpha = float64(v) }}
	action.addOnFinish(func() { log.Debugf("banner %q shown", s) })
	b.Tweens[gween.New(0, 1, fadeSeconds, ease.OutQuad)] = action
}

func (b *Banner) Draw(screen *ebiten.Image, s string) {
	if s != b.text {
		b.show(s)
	}
	w := font.MeasureString(b.face, s).Ceil()
	m := b.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	x := (b.width - w) / 2
	baseline := (b.height + ascent - descent) / 2

	b.panel.alpha = b.alpha
	b.panel.SetPosition(x-bannerPadding, baseline-ascent-bannerPadding)
	b.panel.SetSize(w+2*bannerPadding, ascent+descent+2*bannerPadding)
	b.panel.Draw(screen)

	text.Draw(screen, s, b.face, x, baseline, color.NRGBA{0, 0, 0, uint8(b.alpha * 0xff)})
}
