package radial_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/drysim/internal/radial"
)

var _ = Describe("Grid", func() {
	It("spans center to surface in strictly increasing steps", func() {
		g := radial.NewGrid(0.02, 100)
		Expect(g).To(HaveLen(101))
		Expect(g[0]).To(Equal(0.0))
		Expect(g[100]).To(Equal(0.02))
		for i := 1; i < len(g); i++ {
			Expect(g[i]).To(BeNumerically(">", g[i-1]))
			Expect(g[i] - g[i-1]).To(BeNumerically("~", 0.0002, 1e-15))
		}
	})

	It("samples five evenly spaced nodes", func() {
		Expect(radial.SampleNodes(100)).To(Equal([]int{0, 25, 50, 75, 100}))
		Expect(radial.SampleNodes(8)).To(Equal([]int{0, 2, 4, 6, 8}))
	})

	It("integrates a uniform field to the sphere's r² moment", func() {
		g := radial.NewGrid(0.02, 100)
		got := radial.Integral(g, radial.NewField(100, 1))
		want := math.Pow(0.02, 3) / 3
		Expect(got).To(BeNumerically("~", want, want*1e-3))
	})
})

var _ = Describe("Profile", func() {
	var prof *radial.Profile

	BeforeEach(func() {
		var err error
		prof, err = radial.NewProfile(radial.Grid{0, 1, 2}, radial.Field{1, 0.5, 0})
		Expect(err).NotTo(HaveOccurred())
	})

	It("interpolates linearly between nodes", func() {
		Expect(prof.At(0.5)).To(BeNumerically("~", 0.75, 1e-12))
		Expect(prof.At(1.5)).To(BeNumerically("~", 0.25, 1e-12))
		Expect(prof.At(1)).To(Equal(0.5))
	})

	It("clamps outside the grid", func() {
		Expect(prof.At(-1)).To(Equal(1.0))
		Expect(prof.At(5)).To(Equal(0.0))
	})
})

var _ = Describe("Disk", func() {
	var disk *radial.Disk

	BeforeEach(func() {
		g := radial.NewGrid(0.02, 4)
		f := radial.Field{0.9, 0.9, 0.6, 0.3, 0}
		var err error
		disk, err = radial.NewDisk(g, f, 9)
		Expect(err).NotTo(HaveOccurred())
	})

	It("covers [-R, R] on both axes", func() {
		Expect(disk.Coords).To(HaveLen(9))
		Expect(disk.Coords[0]).To(Equal(-0.02))
		Expect(disk.Coords[8]).To(Equal(0.02))
		Expect(disk.Values).To(HaveLen(9))
		for _, row := range disk.Values {
			Expect(row).To(HaveLen(9))
		}
	})

	It("marks points outside the sphere as missing", func() {
		Expect(math.IsNaN(disk.Values[0][0])).To(BeTrue())
		Expect(math.IsNaN(disk.Values[8][8])).To(BeTrue())
		Expect(math.IsNaN(disk.Values[4][8])).To(BeFalse())
	})

	It("reads the center value from the profile", func() {
		Expect(disk.Center).To(Equal(0.9))
		Expect(disk.Values[4][4]).To(Equal(0.9))
		Expect(disk.Values[4][8]).To(Equal(0.0))
		Expect(disk.Values[4][6]).To(BeNumerically("~", 0.6, 1e-12))
	})
})
