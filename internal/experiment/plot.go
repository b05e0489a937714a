package experiment

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sort"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Chart layout constants.
const (
	chartWidth   = 640
	chartHeight  = 400
	chartMarginL = 60
	chartMarginR = 20
	chartMarginT = 40
	chartMarginB = 60
	barGap       = 8
)

var (
	chartBG        = color.RGBA{255, 255, 255, 255}
	chartAxis      = color.RGBA{60, 60, 60, 255}
	chartText      = color.RGBA{30, 30, 30, 255}
	colorBacktrack = color.RGBA{66, 133, 244, 255}
	colorBnB       = color.RGBA{219, 68, 55, 255}
)

// barGroup is one labeled pair of bars: backtracking first, branch-and-bound
// second.
type barGroup struct {
	label  string
	values [2]float64
}

// RenderChart draws a grouped bar chart of mean expansions per color count
// for both engines over the solvable category.
func RenderChart(r *Report) *image.RGBA {
	means := r.meanExpanded()
	counts := make([]int, 0, len(means))
	for c := range means {
		counts = append(counts, c)
	}
	sort.Ints(counts)

	groups := make([]barGroup, 0, len(counts))
	for _, colors := range counts {
		groups = append(groups, barGroup{
			label: fmt.Sprintf("%d colors", colors),
			values: [2]float64{
				means[colors][EngineBacktracking],
				means[colors][EngineBranchAndBound],
			},
		})
	}
	return renderGroupedBars("mean expanded states per solve", groups)
}

// RenderCategoryChart draws mean solve time in milliseconds per case
// category for both engines.
func RenderCategoryChart(r *Report) *image.RGBA {
	byCat := r.byCategory()

	var groups []barGroup
	for _, category := range []string{CategorySolvable, CategoryInsoluble, CategoryDeep} {
		byAlg := byCat[category]
		if byAlg == nil {
			continue
		}
		var vals [2]float64
		if agg := byAlg[EngineBacktracking]; agg != nil {
			vals[0] = float64(agg.meanElapsed()) / float64(time.Millisecond)
		}
		if agg := byAlg[EngineBranchAndBound]; agg != nil {
			vals[1] = float64(agg.meanElapsed()) / float64(time.Millisecond)
		}
		groups = append(groups, barGroup{label: category, values: vals})
	}
	return renderGroupedBars("mean solve time (ms) per category", groups)
}

func renderGroupedBars(title string, groups []barGroup) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(chartBG), image.Point{}, draw.Src)

	maxVal := 1.0
	for _, g := range groups {
		for _, v := range g.values {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	plotW := chartWidth - chartMarginL - chartMarginR
	plotH := chartHeight - chartMarginT - chartMarginB
	baseY := chartHeight - chartMarginB

	// Axes.
	hline(img, chartMarginL, chartWidth-chartMarginR, baseY, chartAxis)
	vline(img, chartMarginL, chartMarginT, baseY, chartAxis)

	drawLabel(img, chartMarginL, chartMarginT-12, title)

	if len(groups) > 0 {
		groupW := plotW / len(groups)
		barW := (groupW - 3*barGap) / 2
		barColors := [2]color.RGBA{colorBacktrack, colorBnB}
		for gi, g := range groups {
			groupX := chartMarginL + gi*groupW
			for bi, val := range g.values {
				h := int(val / maxVal * float64(plotH))
				if val > 0 && h < 1 {
					h = 1
				}
				x0 := groupX + barGap + bi*(barW+barGap)
				fillRect(img, x0, baseY-h, x0+barW, baseY, barColors[bi])
				drawLabel(img, x0, baseY-h-6, fmt.Sprintf("%.0f", val))
			}
			drawLabel(img, groupX+groupW/2-24, baseY+18, g.label)
		}
	}

	// Legend.
	legendY := chartHeight - 24
	fillRect(img, chartMarginL, legendY-8, chartMarginL+12, legendY+4, colorBacktrack)
	drawLabel(img, chartMarginL+18, legendY, "backtracking")
	fillRect(img, chartMarginL+140, legendY-8, chartMarginL+152, legendY+4, colorBnB)
	drawLabel(img, chartMarginL+158, legendY, "branch and bound")

	return img
}

// WriteChartPNG renders the per-color chart and encodes it as PNG.
func WriteChartPNG(w io.Writer, r *Report) error {
	return png.Encode(w, RenderChart(r))
}

// SaveChartPNG writes the per-color chart to a file.
func SaveChartPNG(path string, r *Report) error {
	return savePNG(path, func(w io.Writer) error { return WriteChartPNG(w, r) })
}

// WriteCategoryChartPNG renders the per-category chart and encodes it as PNG.
func WriteCategoryChartPNG(w io.Writer, r *Report) error {
	return png.Encode(w, RenderCategoryChart(r))
}

// SaveCategoryChartPNG writes the per-category chart to a file.
func SaveCategoryChartPNG(path string, r *Report) error {
	return savePNG(path, func(w io.Writer) error { return WriteCategoryChartPNG(w, r) })
}

func savePNG(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	fillRect(img, x0, y, x1, y+1, c)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	fillRect(img, x, y0, x+1, y1, c)
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(chartText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
