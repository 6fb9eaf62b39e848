package featuremap

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/go-faster/errors"
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Figure defaults, in inches and dots per inch.
const (
	DefaultWidth = 20.0
	DefaultDPI   = 100.0
)

const (
	titleSize   = 14.0 // points
	labelSize   = 10.0
	tickSize    = 9.0
	tickTarget  = 10
	jpegQuality = 95
)

var (
	leaderColor = drawing.Color{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	svgEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;")
)

// ChartDrawer draws plots with go-chart's raster and vector renderers.
type ChartDrawer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// NewChartDrawer loads the embedded Go fonts.
func NewChartDrawer() (*ChartDrawer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse regular font")
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse bold font")
	}
	return &ChartDrawer{regular: regular, bold: bold}, nil
}

func (d *ChartDrawer) font(bold bool) *truetype.Font {
	if bold {
		return d.bold
	}
	return d.regular
}

// metrics are the fixed paddings of the figure, in pixels at a given DPI.
type metrics struct {
	margin, featH, levelGap, labelGap, leader int
	tickLen, tickGap, minWidth, labelPad     int
	stroke                                   float64
}

func newMetrics(dpi float64) metrics {
	s := dpi / DefaultDPI
	px := func(v float64) int {
		if p := int(math.Round(v * s)); p > 0 {
			return p
		}
		return 1
	}
	return metrics{
		margin:   px(12),
		featH:    px(20),
		levelGap: px(6),
		labelGap: px(4),
		leader:   px(14),
		tickLen:  px(5),
		tickGap:  px(3),
		minWidth: px(3),
		labelPad: px(4),
		stroke:   math.Max(s, 0.5),
	}
}

// Draw lays out p and encodes it. The canvas height follows the layout, so the
// figure is cropped to its content.
func (d *ChartDrawer) Draw(w io.Writer, format Format, p Plot) error {
	if err := p.Record.Validate(); err != nil {
		return err
	}
	var newRenderer func(int, int) (chart.Renderer, error)
	switch format {
	case FormatPNG, FormatJPEG:
		newRenderer = chart.PNG
	case FormatSVG:
		newRenderer = chart.SVG
	default:
		return errors.Errorf("unsupported format %v", format)
	}
	text := func(s string) string { return s }
	if format == FormatSVG {
		text = svgEscaper.Replace
	}

	width, dpi := p.Width, p.DPI
	if width <= 0 {
		width = DefaultWidth
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	m := newMetrics(dpi)
	canvasW := int(math.Round(width * dpi))
	g := Geometry{Left: m.margin, Right: canvasW - m.margin, MinWidth: m.minWidth, LabelPad: m.labelPad}
	if g.Right <= g.Left {
		return errors.Errorf("figure width %.2f in at %.0f dpi leaves no room to draw", width, dpi)
	}

	meas, err := newRenderer(canvasW, 1)
	if err != nil {
		return errors.Wrap(err, "create measuring renderer")
	}
	meas.SetDPI(dpi)
	measurer := func(size float64) Measurer {
		return func(s string, bold bool) (int, int) {
			meas.SetFont(d.font(bold))
			meas.SetFontSize(size)
			b := meas.MeasureText(s)
			return b.Width(), b.Height()
		}
	}

	lay := ComputeLayout(p.Record, g, measurer(labelSize))
	_, titleH := measurer(titleSize)(p.Title, true)
	_, tickH := measurer(tickSize)("0123456789", false)

	// Vertical frame, top to bottom: title, label rows, leaders, feature rows, ruler.
	titleBase := m.margin + titleH
	labelRow := lay.LabelHeight + m.labelGap
	labelBottom := titleBase + 2*m.labelGap + lay.LabelLevels*labelRow
	featTop := labelBottom
	if lay.LabelLevels > 0 {
		featTop += m.leader
	}
	rowPitch := m.featH + m.levelGap
	levels := lay.FeatureLevels
	if levels < 1 {
		levels = 1
	}
	lineY := featTop + (levels-1)*rowPitch + m.featH/2
	rulerY := lineY + m.featH/2 + m.levelGap
	canvasH := rulerY + m.tickLen + m.tickGap + tickH + m.margin

	r, err := newRenderer(canvasW, canvasH)
	if err != nil {
		return errors.Wrap(err, "create renderer")
	}
	r.SetDPI(dpi)

	fillRect(r, 0, 0, canvasW, canvasH, drawing.ColorWhite)

	r.ResetStyle()
	r.SetFont(d.bold)
	r.SetFontSize(titleSize)
	r.SetFontColor(drawing.ColorBlack)
	r.Text(text(p.Title), g.Left, titleBase)

	strokeLine(r, g.Left, lineY, g.Right, lineY, drawing.ColorBlack, m.stroke)

	for _, it := range lay.Items {
		cy := lineY - it.Level*rowPitch
		top, bottom := cy-m.featH/2, cy+m.featH/2
		fill, _ := parseColor(it.Feature.Color, drawing.ColorWhite)
		box, _ := parseColor(it.Feature.BoxColor, drawing.ColorBlack)
		drawFeature(r, it.X0, it.X1, top, bottom, it.Feature.Strand, fill, box, m.stroke)

		switch {
		case it.LabelInline:
			r.ResetStyle()
			r.SetFont(d.font(it.Feature.Bold))
			r.SetFontSize(labelSize)
			r.SetFontColor(drawing.ColorBlack)
			r.Text(text(it.Feature.Label), it.Center()-it.LabelW/2, cy+it.LabelH/3)
		case it.LabelLevel >= 0:
			rowBottom := labelBottom - it.LabelLevel*labelRow
			lx := (it.LabelX0 + it.LabelX1) / 2
			strokeLine(r, it.Center(), top, lx, rowBottom, leaderColor, m.stroke)
			r.ResetStyle()
			r.SetFont(d.font(it.Feature.Bold))
			r.SetFontSize(labelSize)
			r.SetFontColor(drawing.ColorBlack)
			r.Text(text(it.Feature.Label), it.LabelX0, rowBottom-m.labelGap/2)
		}
	}

	strokeLine(r, g.Left, rulerY, g.Right, rulerY, drawing.ColorBlack, m.stroke)
	extent := p.Record.Extent()
	scale := float64(g.Right-g.Left) / float64(extent)
	for _, tk := range Ticks(extent, p.Record.Indexing, tickTarget) {
		x := g.Left + int(math.Round(tk.Coord*scale))
		strokeLine(r, x, rulerY, x, rulerY+m.tickLen, drawing.ColorBlack, m.stroke)
		r.ResetStyle()
		r.SetFont(d.regular)
		r.SetFontSize(tickSize)
		r.SetFontColor(drawing.ColorBlack)
		tw := r.MeasureText(tk.Label).Width()
		r.Text(tk.Label, x-tw/2, rulerY+m.tickLen+m.tickGap+tickH)
	}

	if format != FormatJPEG {
		return r.Save(w)
	}
	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return errors.Wrap(err, "decode raster")
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color) {
	r.ResetStyle()
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color, width float64) {
	r.ResetStyle()
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// drawFeature draws a bar with an arrow head on its 3' side; bars too short
// for a head are plain boxes.
func drawFeature(r chart.Renderer, x0, x1, top, bottom, strand int, fill, box drawing.Color, width float64) {
	mid := (top + bottom) / 2
	head := (bottom - top) / 2
	if x1-x0 <= 2*head {
		strand = StrandNone
	}

	r.ResetStyle()
	r.SetFillColor(fill)
	r.SetStrokeColor(box)
	r.SetStrokeWidth(width)
	switch strand {
	case StrandForward:
		r.MoveTo(x0, top)
		r.LineTo(x1-head, top)
		r.LineTo(x1, mid)
		r.LineTo(x1-head, bottom)
		r.LineTo(x0, bottom)
	case StrandReverse:
		r.MoveTo(x0, mid)
		r.LineTo(x0+head, top)
		r.LineTo(x1, top)
		r.LineTo(x1, bottom)
		r.LineTo(x0+head, bottom)
	default:
		r.MoveTo(x0, top)
		r.LineTo(x1, top)
		r.LineTo(x1, bottom)
		r.LineTo(x0, bottom)
	}
	r.Close()
	r.FillStroke()
}
