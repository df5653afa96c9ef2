package pipelining

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumisim/macswitch/sim"
)

type pipelineTestItem struct {
	id string
}

func (i *pipelineTestItem) TaskID() string {
	return i.id
}

var _ = Describe("Pipeline", func() {
	var (
		buf      sim.Buffer
		pipeline Pipeline
	)

	BeforeEach(func() {
		buf = sim.NewBuffer("PostPipelineBuf", 2)
		pipeline = MakeBuilder().
			WithPipelineWidth(1).
			WithNumStage(3).
			WithCyclePerStage(1).
			WithPostPipelineBuffer(buf).
			Build("Pipeline")
	})

	It("should deliver an item after one cycle per stage", func() {
		item := &pipelineTestItem{id: "item"}
		pipeline.Accept(item)

		Expect(pipeline.Tick()).To(BeTrue())
		Expect(pipeline.Tick()).To(BeTrue())
		Expect(buf.Size()).To(Equal(0))

		Expect(pipeline.Tick()).To(BeTrue())
		Expect(buf.Pop()).To(BeIdenticalTo(item))

		Expect(pipeline.Tick()).To(BeFalse())
	})

	It("should spend multiple cycles per stage", func() {
		buf := sim.NewBuffer("PostPipelineBuf", 1)
		pipeline := MakeBuilder().
			WithNumStage(2).
			WithCyclePerStage(2).
			WithPostPipelineBuffer(buf).
			Build("SlowPipeline")

		item := &pipelineTestItem{id: "item"}
		pipeline.Accept(item)

		for i := 0; i < 3; i++ {
			Expect(pipeline.Tick()).To(BeTrue())
			Expect(buf.Size()).To(Equal(0))
		}

		Expect(pipeline.Tick()).To(BeTrue())
		Expect(buf.Pop()).To(BeIdenticalTo(item))
	})

	It("should stall when the post-pipeline buffer is full", func() {
		buf.Push(&pipelineTestItem{id: "blocker"})
		buf.Push(&pipelineTestItem{id: "blocker2"})

		item := &pipelineTestItem{id: "item"}
		pipeline.Accept(item)

		Expect(pipeline.Tick()).To(BeTrue())
		Expect(pipeline.Tick()).To(BeTrue())
		Expect(pipeline.Tick()).To(BeFalse())

		buf.Pop()
		Expect(pipeline.Tick()).To(BeTrue())
		Expect(buf.Size()).To(Equal(2))
	})

	It("should accept one item per lane in the first stage", func() {
		wide := MakeBuilder().
			WithPipelineWidth(2).
			WithNumStage(2).
			WithPostPipelineBuffer(buf).
			Build("WidePipeline")

		wide.Accept(&pipelineTestItem{id: "a"})
		Expect(wide.CanAccept()).To(BeTrue())

		wide.Accept(&pipelineTestItem{id: "b"})
		Expect(wide.CanAccept()).To(BeFalse())
		Expect(func() {
			wide.Accept(&pipelineTestItem{id: "c"})
		}).To(Panic())

		Expect(wide.Tick()).To(BeTrue())
		Expect(wide.CanAccept()).To(BeTrue())
	})

	It("should discard in-flight items on clear", func() {
		pipeline.Accept(&pipelineTestItem{id: "item"})
		pipeline.Tick()

		pipeline.Clear()

		Expect(pipeline.Tick()).To(BeFalse())
		Expect(buf.Size()).To(Equal(0))
	})
})
