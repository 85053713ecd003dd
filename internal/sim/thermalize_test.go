package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/liquid/internal/dynamo"
	"github.com/san-kum/liquid/internal/physics"
)

func smokeRun(seed int64) ([]dynamo.Record, *Thermalizer) {
	s, err := physics.NewSystem(2, 0.35)
	Expect(err).NotTo(HaveOccurred())
	p, err := physics.NewPseudoHardSphere(physics.DefaultExponent, physics.DefaultTemperature)
	Expect(err).NotTo(HaveOccurred())

	cfg := DefaultConfig()
	cfg.StepsPerParticle = 1
	cfg.TargetRatio = 0.3

	th, err := NewThermalizer(s, physics.NewEvaluator(p), NewRNG(seed), cfg)
	Expect(err).NotTo(HaveOccurred())

	var records []dynamo.Record
	th.AddObserver(dynamo.ObserverFunc(func(r dynamo.Record) {
		records = append(records, r)
	}))
	th.Run()
	return records, th
}

var _ = Describe("Thermalizer", func() {
	It("executes exactly the precomputed number of cycles", func() {
		records, th := smokeRun(42)

		Expect(th.Cycles()).To(Equal(26))
		Expect(records).To(HaveLen(26))
		rc := th.Context()
		Expect(rc.Attempted).To(Equal(26))
		Expect(rc.Accepted).To(BeNumerically("<=", rc.Attempted))
		Expect(th.Done()).To(BeTrue())
	})

	It("reproduces the record sequence for a fixed seed", func() {
		first, _ := smokeRun(1234)
		second, _ := smokeRun(1234)
		Expect(second).To(Equal(first))
	})

	It("diverges for different seeds", func() {
		first, _ := smokeRun(1)
		second, _ := smokeRun(2)
		Expect(second).NotTo(Equal(first))
	})

	It("scales drmax by exactly 0.95 or 1.05 per step", func() {
		records, _ := smokeRun(99)
		prev := DefaultMaxDisplacement
		for _, r := range records {
			Expect(r.MaxDisplacement).To(BeNumerically(">", 0))
			Expect(r.MaxDisplacement).To(Or(Equal(prev*0.95), Equal(prev*1.05)))
			prev = r.MaxDisplacement
		}
	})

	It("reports the cumulative ratio and step index", func() {
		records, th := smokeRun(5)
		for i, r := range records {
			Expect(r.Step).To(Equal(i + 1))
			Expect(r.Ratio).To(BeNumerically(">=", 0))
			Expect(r.Ratio).To(BeNumerically("<=", 1))
		}
		last := records[len(records)-1]
		Expect(last.Ratio).To(Equal(th.Context().Ratio()))
		Expect(last.Energy).To(Equal(th.Context().Energy))
	})

	It("keeps the running energy consistent with a full evaluation", func() {
		_, th := smokeRun(77)
		p, _ := physics.NewPseudoHardSphere(physics.DefaultExponent, physics.DefaultTemperature)
		full := physics.NewEvaluator(p).SystemEnergy(th.System())
		Expect(th.Context().Energy).To(BeNumerically("~", full, 1e-6*math.Max(1, math.Abs(full))))
	})

	It("stops stepping once done", func() {
		_, th := smokeRun(3)
		_, ok := th.Step()
		Expect(ok).To(BeFalse())
		Expect(th.Context().Attempted).To(Equal(th.Cycles()))
	})

	DescribeTable("rejects invalid configuration",
		func(mutate func(*Config)) {
			s, _ := physics.NewSystem(2, 0.35)
			p, _ := physics.NewPseudoHardSphere(physics.DefaultExponent, physics.DefaultTemperature)
			cfg := DefaultConfig()
			mutate(&cfg)
			_, err := NewThermalizer(s, physics.NewEvaluator(p), NewRNG(1), cfg)
			Expect(err).To(HaveOccurred())
		},
		Entry("zero steps", func(c *Config) { c.StepsPerParticle = 0 }),
		Entry("zero target", func(c *Config) { c.TargetRatio = 0 }),
		Entry("unit target", func(c *Config) { c.TargetRatio = 1 }),
		Entry("zero displacement", func(c *Config) { c.InitialDisplacement = 0 }),
		Entry("unknown rewrap", func(c *Config) { c.Rewrap = "sometimes" }),
	)
})
