package radial_test

import (
	"bytes"
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/drysim/internal/radial"
)

type stepRecorder struct {
	steps    int
	elapsed  []float64
	check    func(f radial.Field)
	integral []float64
	grid     radial.Grid
	hours    []int
}

func (r *stepRecorder) OnStep(step int, elapsed float64, f radial.Field) {
	r.steps = step
	r.elapsed = append(r.elapsed, elapsed)
	if r.check != nil {
		r.check(f)
	}
	if r.grid != nil {
		r.integral = append(r.integral, radial.Integral(r.grid, f))
	}
}

func (r *stepRecorder) OnCheckpoint(hour int, _ radial.Field) {
	r.hours = append(r.hours, hour)
}

func hours(h float64) float64 { return h * radial.SecondsPerHour }

var _ = Describe("Solver", func() {
	var p radial.Params

	BeforeEach(func() {
		p = radial.DefaultParams()
	})

	Describe("construction", func() {
		It("starts from a uniform field on an evenly spaced grid", func() {
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Grid()).To(HaveLen(p.Nodes + 1))
			Expect(s.Field()).To(HaveEach(p.Initial))
			Expect(s.TotalSteps()).To(Equal(11520))
			Expect(s.Completed()).To(BeZero())
			Expect(s.Done()).To(BeFalse())
		})

		It("captures hour 0 from the initial field", func() {
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Snapshots()).To(HaveKey(0))
			Expect(s.Snapshots()[0]).To(HaveEach(p.Initial))
		})

		It("rejects too few nodes", func() {
			p.Nodes = 1
			_, err := radial.New(p)
			Expect(err).To(MatchError(radial.ErrInvalidParams))

			var pe *radial.ParamError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Field).To(Equal("nodes"))
		})

		It("reports every violated invariant", func() {
			p.Nodes = 0
			p.Dt = 0
			p.Radius = -1
			err := p.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("nodes"))
			Expect(err.Error()).To(ContainSubstring("dt"))
			Expect(err.Error()).To(ContainSubstring("radius"))
		})

		DescribeTable("rejects non-finite and oversized runs",
			func(mutate func(p *radial.Params), field string) {
				mutate(&p)
				err := p.Validate()
				Expect(err).To(MatchError(radial.ErrInvalidParams))
				Expect(err.Error()).To(ContainSubstring(field))

				_, err = radial.Simulate(context.Background(), p)
				Expect(err).To(MatchError(radial.ErrInvalidParams))
			},
			Entry("infinite duration", func(p *radial.Params) { p.Duration = math.Inf(1) }, "duration"),
			Entry("infinite dt", func(p *radial.Params) { p.Dt = math.Inf(1) }, "dt"),
			Entry("NaN dt", func(p *radial.Params) { p.Dt = math.NaN() }, "dt"),
			Entry("infinite diffusivity", func(p *radial.Params) { p.Diffusivity = math.Inf(1) }, "diffusivity"),
			Entry("too many steps", func(p *radial.Params) { p.Dt = 1e-6; p.Duration = 1e6 }, "duration"),
		)

		It("does not alias the caller's checkpoint slice", func() {
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())
			p.Checkpoints[1] = 99
			Expect(s.Params().Checkpoints).To(Equal([]int{0, 1, 3, 6, 9, 12}))
		})
	})

	Describe("stepping", func() {
		It("pins the surface to zero from the first step", func() {
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Step()).To(BeTrue())
			f := s.Field()
			Expect(f[p.Nodes]).To(Equal(0.0))
			Expect(f[:p.Nodes]).To(HaveEach(p.Initial))
		})

		It("keeps both boundary conditions after every step", func() {
			p.Duration = hours(1)
			rec := &stepRecorder{check: func(f radial.Field) {
				Expect(f[len(f)-1]).To(Equal(0.0))
				Expect(f[0]).To(Equal(f[1]))
			}}
			_, err := radial.Simulate(context.Background(), p, rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.steps).To(Equal(720))
		})

		It("never gains moisture", func() {
			p.Duration = hours(3)
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())
			rec := &stepRecorder{grid: s.Grid()}
			s.AddObserver(rec)

			_, err = s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			prev := radial.Integral(s.Grid(), radial.NewField(p.Nodes, p.Initial))
			for i, v := range rec.integral {
				Expect(v).To(BeNumerically("<=", prev*(1+1e-12)), "step %d", i+1)
				prev = v
			}
			Expect(rec.integral[len(rec.integral)-1]).To(BeNumerically("<", rec.integral[0]))
		})

		It("reports elapsed time as completed steps times dt", func() {
			p.Duration = 50
			rec := &stepRecorder{}
			_, err := radial.Simulate(context.Background(), p, rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.elapsed).To(Equal([]float64{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}))
		})

		It("stops stepping once done", func() {
			p.Duration = 10
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Step()).To(BeTrue())
			Expect(s.Step()).To(BeTrue())
			Expect(s.Done()).To(BeTrue())
			Expect(s.Step()).To(BeFalse())
			Expect(s.Completed()).To(Equal(2))
		})

		It("returns the context error when canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(s.Completed()).To(BeZero())
		})
	})

	Describe("the strawberry scenario at one hour", func() {
		var res *radial.Result

		BeforeEach(func() {
			p.Duration = hours(1)
			var err error
			res, err = radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
		})

		It("runs exactly 720 steps", func() {
			Expect(res.Steps).To(Equal(720))
			Expect(res.Elapsed()).To(Equal(3600.0))
		})

		It("holds the boundary values", func() {
			Expect(res.Final[100]).To(Equal(0.0))
			Expect(res.Final[0]).To(Equal(res.Final[1]))
		})

		It("decreases monotonically from center to surface", func() {
			for i := 0; i < p.Nodes; i++ {
				Expect(res.Final[i]).To(BeNumerically(">=", res.Final[i+1]-1e-12), "node %d", i)
			}
		})

		It("matches the reference profile", func() {
			want := []float64{99.99, 99.84, 96.33, 68.21, 0}
			for j, i := range radial.SampleNodes(p.Nodes) {
				Expect(res.Final[i]*100).To(BeNumerically("~", want[j], 0.006), "node %d", i)
			}
		})
	})

	Describe("checkpoints", func() {
		It("captures every requested hour within the duration once", func() {
			rec := &stepRecorder{}
			res, err := radial.Simulate(context.Background(), p, rec)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Snapshots.Hours()).To(Equal([]int{0, 1, 3, 6, 9, 12}))
			Expect(rec.hours).To(Equal([]int{1, 3, 6, 9, 12}))
		})

		It("stores independent copies", func() {
			p.Duration = hours(3)
			res, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())

			seen := map[*float64]int{&res.Final[0]: -1}
			for _, h := range res.Snapshots.Hours() {
				ptr := &res.Snapshots[h][0]
				prev, dup := seen[ptr]
				Expect(dup).To(BeFalse(), "hour %d shares a buffer with %d", h, prev)
				seen[ptr] = h
			}

			before := res.Snapshots[3].Clone()
			res.Final[50] = 42
			Expect(res.Snapshots[3]).To(Equal(before))
			Expect(res.Snapshots[1][50]).To(BeNumerically(">", res.Snapshots[3][50]))
		})

		It("leaves out hours beyond the duration", func() {
			p.Duration = hours(2)
			p.Checkpoints = []int{0, 1, 3}
			res, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Snapshots.Hours()).To(Equal([]int{0, 1}))
			Expect(radial.MissedCheckpoints(p)).To(Equal([]int{3}))
		})

		It("skips hours no step lands on exactly", func() {
			p.Dt = 7
			p.Duration = hours(8)
			p.Checkpoints = []int{1, 7}
			res, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Snapshots.Hours()).To(Equal([]int{7}))
			Expect(radial.MissedCheckpoints(p)).To(Equal([]int{1}))
		})

		It("prints the diagnostic readout at the first hour", func() {
			p.Duration = hours(3)
			s, err := radial.New(p)
			Expect(err).NotTo(HaveOccurred())
			var buf bytes.Buffer
			s.AddObserver(radial.NewReadout(&buf, s.Grid(), 1))

			_, err = s.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(Equal(
				"Concentration values at 3600s:\n" +
					"Node 0 (r = 0.0 mm): 99.99%\n" +
					"Node 1 (r = 5.0 mm): 99.84%\n" +
					"Node 2 (r = 10.0 mm): 96.33%\n" +
					"Node 3 (r = 15.0 mm): 68.21%\n" +
					"Node 4 (r = 20.0 mm): 0.00%\n"))
		})
	})

	Describe("determinism", func() {
		It("reproduces identical fields across runs", func() {
			p.Duration = hours(1)
			a, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			b, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Final).To(Equal(b.Final))
			Expect(a.Snapshots).To(Equal(b.Snapshots))
		})

		It("gives the same field with a parallel sweep", func() {
			p.Nodes = 400
			p.Dt = 0.25
			p.Duration = 600
			seq, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())

			p.Workers = 4
			par, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(par.Final).To(Equal(seq.Final))
		})
	})

	Describe("stability", func() {
		It("accepts the default parameters", func() {
			Expect(radial.StabilityNumber(p)).To(BeNumerically("~", 0.3125, 1e-12))
			Expect(radial.CheckStability(p)).To(Succeed())
			Expect(radial.MaxStableDt(p)).To(BeNumerically("~", 8, 1e-9))
		})

		It("flags a time step past the explicit limit", func() {
			p.Dt = 20
			err := radial.CheckStability(p)
			Expect(err).To(MatchError(radial.ErrUnstable))
		})

		// Expected failure mode: the solver does not guard against this.
		It("oscillates and diverges past the explicit limit", func() {
			p.Dt = 20
			p.Duration = 300 * p.Dt
			res, err := radial.Simulate(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())

			outOfRange := 0
			for _, v := range res.Final {
				if math.IsNaN(v) || v < 0 || v > p.Initial {
					outOfRange++
				}
			}
			Expect(outOfRange).To(BeNumerically(">", 0))
			Expect(res.Final[0]).To(Equal(res.Final[1]))
			Expect(res.Final[p.Nodes]).To(Equal(0.0))
		})
	})
})
