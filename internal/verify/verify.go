// Package verify sweeps the RGB cube and checks the conversion properties:
// round trips, HSLToRGB/HSLToRGB2 equivalence, the achromatic invariant and
// the range invariant.
package verify

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/jsvensson/rgbconv"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("rgbconv.verify")

// Property names a checked invariant.
type Property string

const (
	RoundTripHSL  Property = "roundtrip-hsl"  // RGB -> HSL -> RGB
	RoundTripHSL2 Property = "roundtrip-hsl2" // RGB -> HSL -> RGB via HSLToRGB2
	RoundTripHSV  Property = "roundtrip-hsv"  // RGB -> HSV -> RGB
	Equivalence   Property = "equivalence"    // HSLToRGB vs HSLToRGB2
	Achromatic    Property = "achromatic"     // grey input has zero hue and saturation
	Range         Property = "range"          // HSL/HSV components in [0, 1]
)

// Properties lists every property in report order.
var Properties = []Property{RoundTripHSL, RoundTripHSL2, RoundTripHSV, Equivalence, Achromatic, Range}

// Tolerance is the largest per-channel deviation the round trip and
// equivalence properties accept.
const Tolerance = 1

// Options controls a sweep.
type Options struct {
	Step    int // stride through each channel; 0 means 1
	Workers int // 0 means GOMAXPROCS
}

// Result summarises one property.
type Result struct {
	Property     Property
	Checked      int
	Failures     int
	MaxDeviation int // channel deviation; only meaningful for RGB properties
}

// Failure describes one failing sample.
type Failure struct {
	Property Property
	Input    rgbconv.RGB
	Detail   string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: rgb(%d, %d, %d): %s", f.Property, f.Input.R, f.Input.G, f.Input.B, f.Detail)
}

// Report is the outcome of a sweep.
type Report struct {
	Samples int
	Results []Result // in Properties order
	First   *Failure // lowest failing input, nil when OK
}

// OK reports whether every property held.
func (r Report) OK() bool {
	for _, res := range r.Results {
		if res.Failures > 0 {
			return false
		}
	}
	return true
}

// Result returns the summary for p.
func (r Report) Result(p Property) (Result, bool) {
	for _, res := range r.Results {
		if res.Property == p {
			return res, true
		}
	}
	return Result{}, false
}

// Run checks every property over the RGB cube. Work is split by red channel
// value across workers. It returns ctx.Err() if the context is cancelled
// before the sweep completes.
func Run(ctx context.Context, opts Options) (Report, error) {
	step := opts.Step
	if step <= 0 {
		step = 1
	}
	if step > 255 {
		return Report{}, fmt.Errorf("step %d out of range [1, 255]", step)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	values := channelValues(step)
	log.Infof("sweeping %d samples (step %d, %d workers)", len(values)*len(values)*len(values), step, workers)

	var (
		mu     sync.Mutex
		shards = make([]*shard, 0, len(values))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, r := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s := sweepRed(uint8(r), values)
			mu.Lock()
			shards = append(shards, s)
			mu.Unlock()
			log.Debugf("red %d: %d samples", r, s.samples)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return merge(shards), nil
}

// channelValues returns 0, step, 2*step, ... and always includes 255.
func channelValues(step int) []int {
	var vals []int
	for v := 0; v < 255; v += step {
		vals = append(vals, v)
	}
	return append(vals, 255)
}

type shard struct {
	samples int
	results map[Property]*Result
	first   *Failure
}

func newShard() *shard {
	s := &shard{results: make(map[Property]*Result, len(Properties))}
	for _, p := range Properties {
		s.results[p] = &Result{Property: p}
	}
	return s
}

func (s *shard) check(p Property, in rgbconv.RGB, dev int, ok bool, detail func() string) {
	res := s.results[p]
	res.Checked++
	if dev > res.MaxDeviation {
		res.MaxDeviation = dev
	}
	if ok {
		return
	}
	res.Failures++
	if s.first == nil || less(in, s.first.Input) {
		s.first = &Failure{Property: p, Input: in, Detail: detail()}
	}
}

func (s *shard) roundTrip(p Property, in, out rgbconv.RGB) {
	dev := deviation(in, out)
	s.check(p, in, dev, dev <= Tolerance, func() string {
		return fmt.Sprintf("got rgb(%d, %d, %d)", out.R, out.G, out.B)
	})
}

func sweepRed(r uint8, values []int) *shard {
	s := newShard()
	for _, gv := range values {
		for _, bv := range values {
			in := rgbconv.RGB{R: r, G: uint8(gv), B: uint8(bv)}
			s.samples++

			hsl := rgbconv.RGBToHSL(in.R, in.G, in.B)
			hsv := rgbconv.RGBToHSV(in.R, in.G, in.B)
			viaHSL := rgbconv.HSLToRGB(hsl.H, hsl.S, hsl.L)
			viaHSL2 := rgbconv.HSLToRGB2(hsl.H, hsl.S, hsl.L)

			s.roundTrip(RoundTripHSL, in, viaHSL)
			s.roundTrip(RoundTripHSL2, in, viaHSL2)
			s.roundTrip(RoundTripHSV, in, rgbconv.HSVToRGB(hsv.H, hsv.S, hsv.V))

			dev := deviation(viaHSL, viaHSL2)
			s.check(Equivalence, in, dev, dev <= Tolerance, func() string {
				return fmt.Sprintf("HSLToRGB %v, HSLToRGB2 %v", viaHSL, viaHSL2)
			})

			if in.R == in.G && in.G == in.B {
				ok := hsl.H == 0 && hsl.S == 0 && hsv.H == 0 && hsv.S == 0
				s.check(Achromatic, in, 0, ok, func() string {
					return fmt.Sprintf("hsl %v, hsv %v", hsl, hsv)
				})
			}

			ok := hsl.Validate() == nil && hsv.Validate() == nil
			s.check(Range, in, 0, ok, func() string {
				return fmt.Sprintf("hsl %v, hsv %v", hsl, hsv)
			})
		}
	}
	return s
}

func merge(shards []*shard) Report {
	rep := Report{Results: make([]Result, len(Properties))}
	for i, p := range Properties {
		rep.Results[i].Property = p
	}
	for _, s := range shards {
		rep.Samples += s.samples
		for i, p := range Properties {
			res := s.results[p]
			rep.Results[i].Checked += res.Checked
			rep.Results[i].Failures += res.Failures
			rep.Results[i].MaxDeviation = max(rep.Results[i].MaxDeviation, res.MaxDeviation)
		}
		if s.first != nil && (rep.First == nil || less(s.first.Input, rep.First.Input)) {
			rep.First = s.first
		}
	}
	return rep
}

func deviation(a, b rgbconv.RGB) int {
	return max(absDiff(a.R, b.R), absDiff(a.G, b.G), absDiff(a.B, b.B))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func less(a, b rgbconv.RGB) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}
