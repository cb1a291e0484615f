// Package ela implements error level analysis: comparing an image against
// freshly re-compressed copies of itself to surface localized edits.
//
// Genuine single-generation scans compress uniformly; a region that was
// pasted in or re-saved at a different quality leaves a stronger residual
// when the whole image is re-encoded. The analyzer reports residual
// statistics per quality level and leaves thresholding to the scoring
// policy.
package ela

import (
	"bytes"
	"image"
	"image/jpeg"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Stats summarizes the normalized residual signal at one quality level.
type Stats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Max  float64 `json:"max"`
}

// Config holds configuration for error level analysis.
type Config struct {
	// Qualities are the JPEG quality levels to probe
	// (default: 70, 80, 90, 95).
	Qualities []int

	// Scale is the brightness factor applied after normalizing the
	// residual by its maximum; with the default of 10 the reported
	// values lie in [0, Scale] (default: 10).
	Scale float64

	// MaxDimension caps the analyzed image size; larger pages are
	// downscaled first to bound the cost of four re-encodes
	// (default: 3000).
	MaxDimension int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Qualities:    []int{70, 80, 90, 95},
		Scale:        10,
		MaxDimension: 3000,
	}
}

// Analyzer measures compression residuals across quality levels.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze re-encodes img at each configured quality and returns residual
// statistics keyed by quality level. Quality levels whose re-encode is
// byte-identical (zero residual) are omitted. Any encode or decode failure
// degrades to an empty result set so the rest of the pipeline can proceed
// without this signal.
func (a *Analyzer) Analyze(img image.Image) map[int]Stats {
	results := make(map[int]Stats)
	if img == nil {
		return results
	}

	src := a.clampSize(img)
	original := toRGBA(src)

	for _, quality := range a.config.Qualities {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, original, &jpeg.Options{Quality: quality}); err != nil {
			return map[int]Stats{}
		}
		compressed, err := jpeg.Decode(&buf)
		if err != nil {
			return map[int]Stats{}
		}

		if stats, ok := a.residual(original, toRGBA(compressed)); ok {
			results[quality] = stats
		}
	}

	return results
}

// residual computes the normalized per-channel absolute difference between
// the original and its re-encoded copy.
func (a *Analyzer) residual(original, compressed *image.RGBA) (Stats, bool) {
	bounds := original.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return Stats{}, false
	}

	diffs := make([]float64, 0, width*height*3)
	maxDiff := 0.0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			po := original.PixOffset(x, y)
			pc := compressed.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				d := math.Abs(float64(original.Pix[po+c]) - float64(compressed.Pix[pc+c]))
				diffs = append(diffs, d)
				if d > maxDiff {
					maxDiff = d
				}
			}
		}
	}

	if maxDiff == 0 {
		return Stats{}, false
	}

	factor := a.config.Scale / maxDiff
	sum := 0.0
	for i, d := range diffs {
		v := d * factor
		diffs[i] = v
		sum += v
	}
	mean := sum / float64(len(diffs))

	varSum := 0.0
	for _, v := range diffs {
		dv := v - mean
		varSum += dv * dv
	}

	return Stats{
		Mean: mean,
		Std:  math.Sqrt(varSum / float64(len(diffs))),
		Max:  maxDiff * factor,
	}, true
}

// clampSize downscales the image when either dimension exceeds the cap.
func (a *Analyzer) clampSize(img image.Image) image.Image {
	if a.config.MaxDimension <= 0 {
		return img
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= a.config.MaxDimension && h <= a.config.MaxDimension {
		return img
	}

	scale := float64(a.config.MaxDimension) / float64(w)
	if h > w {
		scale = float64(a.config.MaxDimension) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	xdraw.Draw(rgba, bounds, img, bounds.Min, xdraw.Src)
	return rgba
}
