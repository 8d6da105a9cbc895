package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

const (
	panelBorder = 4
	panelSource = 3 * panelBorder
)

// Panel is a nine-slice box: corners keep their size, edges and center stretch.
type Panel struct {
	image               *ebiten.Image
	alpha               float64
	positions           [4]int
	x, y, width, height int
}

func NewPanel() (*Panel, error) {
	img, err := ebiten.NewImageFromImage(panelImage(), ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Panel{
		image:     img,
		alpha:     1,
		positions: [4]int{0, panelBorder, panelSource - panelBorder, panelSource},
	}, nil
}

// panelImage is a white square with rounded corners and a grey rim.
func panelImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, panelSource, panelSource))
	rim := color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	last := panelSource - 1
	for y := 0; y < panelSource; y++ {
		for x := 0; x < panelSource; x++ {
			dx, dy := min(x, last-x), min(y, last-y)
			switch {
			case dx+dy < 2:
				// cut corner
			case dx == 0 || dy == 0:
				img.Set(x, y, rim)
			default:
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (n *Panel) SetPosition(x, y int) {
	n.x = x
	n.y = y
}

func (n *Panel) SetSize(width, height int) {
	n.width = width
	n.height = height
}

// edges returns the target coordinates of the slice boundaries on one axis.
func (n *Panel) edges(start, length int) [4]float64 {
	corner := float64(n.positions[1] - n.positions[0])
	return [4]float64{
		float64(start),
		float64(start) + corner,
		float64(start+length) - corner,
		float64(start + length),
	}
}

func (n *Panel) Draw(screen *ebiten.Image) {
	xs := n.edges(n.x, n.width)
	ys := n.edges(n.y, n.height)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sx0, sx1 := n.positions[col], n.positions[col+1]
			sy0, sy1 := n.positions[row], n.positions[row+1]
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale((xs[col+1]-xs[col])/float64(sx1-sx0), (ys[row+1]-ys[row])/float64(sy1-sy0))
			op.GeoM.Translate(xs[col], ys[row])
			op.ColorM.Scale(1, 1, 1, n.alpha)
			screen.DrawImage(n.image.SubImage(image.Rect(sx0, sy0, sx1, sy1)).(*ebiten.Image), op)
		}
	}
}
