// Package renderer is the host-side implementation of the document renderer
// collaborator: it draws a PNG certificate card and returns its path.
package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
)

const (
	certWidth  = 1200
	certHeight = 850
)

type PNG struct {
	Dir      string // output directory, created on first render
	FontPath string // TTF font used for all text
}

func NewPNG(dir, fontPath string) *PNG {
	return &PNG{Dir: dir, FontPath: fontPath}
}

func (r *PNG) Render(userID uint, courseName string, score float64, issuedAt time.Time) (string, error) {
	dc := gg.NewContext(certWidth, certHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB255(36, 41, 46)
	dc.SetLineWidth(6)
	dc.DrawRectangle(40, 40, certWidth-80, certHeight-80)
	dc.Stroke()

	if err := dc.LoadFontFace(r.FontPath, 52); err != nil {
		return "", fmt.Errorf("load font %s: %w", r.FontPath, err)
	}
	dc.DrawStringAnchored("Certificate of Completion", certWidth/2, 230, 0.5, 0.5)

	if err := dc.LoadFontFace(r.FontPath, 40); err != nil {
		return "", fmt.Errorf("load font %s: %w", r.FontPath, err)
	}
	dc.DrawStringAnchored(courseName, certWidth/2, 380, 0.5, 0.5)

	if err := dc.LoadFontFace(r.FontPath, 26); err != nil {
		return "", fmt.Errorf("load font %s: %w", r.FontPath, err)
	}
	dc.DrawStringAnchored(fmt.Sprintf("Awarded to worker #%d with a score of %.2f%%", userID, score),
		certWidth/2, 500, 0.5, 0.5)
	dc.DrawStringAnchored(issuedAt.Format("January 2, 2006"), certWidth/2, 620, 0.5, 0.5)

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.Dir, fmt.Sprintf("certificate_%d_%d.png", userID, issuedAt.UnixNano()))
	if err := dc.SavePNG(path); err != nil {
		return "", err
	}
	return path, nil
}
