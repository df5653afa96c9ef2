package table

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumisim/macswitch/switching"
)

var (
	addrA = switching.MACAddr(0x0200_0000_00AA)
	addrB = switching.MACAddr(0x0200_0000_00BB)
	addrC = switching.MACAddr(0x0200_0000_00CC)
	addrD = switching.MACAddr(0x0200_0000_00DD)
	addrE = switching.MACAddr(0x0200_0000_00EE)
)

type storeCase struct {
	name string
	make func(noEvict bool) Store
}

func agingStores() []storeCase {
	return []storeCase{
		{"binary", func(noEvict bool) Store {
			return NewBinaryStore(4, noEvict)
		}},
		{"brute", func(noEvict bool) Store {
			return NewBruteStore(4, noEvict)
		}},
		{"hashed", func(noEvict bool) Store {
			return NewHashedStore(4, noEvict)
		}},
		{"parallel", func(noEvict bool) Store {
			return NewParallelStore(4, 2, noEvict)
		}},
		{"simple", func(noEvict bool) Store {
			return NewSimpleStore(4, noEvict)
		}},
	}
}

var _ = ginkgo.Describe("Store contract", func() {
	for _, c := range agingStores() {
		ginkgo.Describe(c.name, func() {
			var s Store

			ginkgo.BeforeEach(func() {
				s = c.make(false)
			})

			ginkgo.It("should miss on an empty table", func() {
				_, ok := s.Lookup(addrA, 1)

				Expect(ok).To(BeFalse())
				Expect(s.Len()).To(Equal(0))
			})

			ginkgo.It("should find a learned address", func() {
				result := s.Learn(addrA, 2, 1)

				Expect(result.Outcome).To(Equal(LearnNew))
				Expect(result.Evicted).To(BeFalse())

				port, ok := s.Lookup(addrA, 2)
				Expect(ok).To(BeTrue())
				Expect(port).To(Equal(2))
				Expect(s.Len()).To(Equal(1))
			})

			ginkgo.It("should refresh on the same port", func() {
				s.Learn(addrA, 2, 1)

				result := s.Learn(addrA, 2, 5)

				Expect(result.Outcome).To(Equal(LearnRefresh))
				Expect(s.Len()).To(Equal(1))
			})

			ginkgo.It("should follow a station to a new port", func() {
				s.Learn(addrA, 2, 1)

				result := s.Learn(addrA, 5, 2)

				Expect(result.Outcome).To(Equal(LearnMove))

				port, ok := s.Lookup(addrA, 3)
				Expect(ok).To(BeTrue())
				Expect(port).To(Equal(5))
				Expect(s.Len()).To(Equal(1))
			})

			ginkgo.It("should evict to make room when full", func() {
				s.Learn(addrA, 0, 1)
				s.Learn(addrB, 1, 2)
				s.Learn(addrC, 2, 3)
				s.Learn(addrD, 3, 4)

				result := s.Learn(addrE, 4, 5)

				Expect(result.Outcome).To(Equal(LearnNew))
				Expect(result.Evicted).To(BeTrue())
				Expect(s.Len()).To(Equal(4))

				_, ok := s.Lookup(addrE, 6)
				Expect(ok).To(BeTrue())
			})

			ginkgo.It("should spare recently read entries from eviction", func() {
				s.Learn(addrA, 0, 1)
				s.Learn(addrB, 1, 2)
				s.Learn(addrC, 2, 3)
				s.Learn(addrD, 3, 4)
				s.Lookup(addrA, 5)
				s.Lookup(addrA, 6)

				s.Learn(addrE, 4, 7)

				_, okA := s.Lookup(addrA, 8)
				_, okB := s.Lookup(addrB, 9)
				Expect(okA).To(BeTrue())
				Expect(okB).To(BeFalse())
			})

			ginkgo.It("should remove aged entries on scrub", func() {
				s.Learn(addrA, 0, 1)
				s.Learn(addrB, 1, 150)

				report := s.Scrub(100)

				Expect(report.Removed).To(Equal(1))
				Expect(report.TableErr).To(BeFalse())
				Expect(s.Len()).To(Equal(1))

				_, okA := s.Lookup(addrA, 200)
				_, okB := s.Lookup(addrB, 200)
				Expect(okA).To(BeFalse())
				Expect(okB).To(BeTrue())
			})

			ginkgo.It("should reuse slots freed by a scrub", func() {
				s.Learn(addrA, 0, 1)
				s.Learn(addrB, 1, 2)
				s.Scrub(10)
				Expect(s.Len()).To(Equal(0))

				s.Learn(addrC, 2, 11)
				s.Learn(addrD, 3, 12)

				Expect(s.Len()).To(Equal(2))
			})

			ginkgo.It("should remove an address on request", func() {
				s.Learn(addrA, 0, 1)

				Expect(s.Remove(addrA)).To(BeTrue())
				Expect(s.Remove(addrA)).To(BeFalse())

				_, ok := s.Lookup(addrA, 2)
				Expect(ok).To(BeFalse())
			})

			ginkgo.It("should forget everything on clear", func() {
				s.Learn(addrA, 0, 1)
				s.Learn(addrB, 1, 2)

				s.Clear()

				Expect(s.Len()).To(Equal(0))
				Expect(s.Entries()).To(BeEmpty())

				_, ok := s.Lookup(addrA, 3)
				Expect(ok).To(BeFalse())
			})

			ginkgo.It("should list valid entries in slot order", func() {
				s.Learn(addrB, 1, 1)
				s.Learn(addrA, 0, 2)

				entries := s.Entries()

				Expect(entries).To(HaveLen(2))
				Expect(entries[0].Addr).To(Equal(addrB))
				Expect(entries[1].Addr).To(Equal(addrA))
			})

			ginkgo.It("should age entries", func() {
				Expect(s.SupportsScrub()).To(BeTrue())
			})

			ginkgo.Context("with replacement disabled", func() {
				ginkgo.BeforeEach(func() {
					s = c.make(true)
				})

				ginkgo.It("should drop instead of evicting when full", func() {
					s.Learn(addrA, 0, 1)
					s.Learn(addrB, 1, 2)
					s.Learn(addrC, 2, 3)
					s.Learn(addrD, 3, 4)

					result := s.Learn(addrE, 4, 5)

					Expect(result.Outcome).To(Equal(LearnDropped))
					Expect(result.Full).To(BeTrue())
					Expect(s.Len()).To(Equal(4))

					_, ok := s.Lookup(addrE, 6)
					Expect(ok).To(BeFalse())

					_, ok = s.Lookup(addrA, 7)
					Expect(ok).To(BeTrue())
				})

				ginkgo.It("should accept again after a removal", func() {
					s.Learn(addrA, 0, 1)
					s.Learn(addrB, 1, 2)
					s.Learn(addrC, 2, 3)
					s.Learn(addrD, 3, 4)
					s.Remove(addrB)

					result := s.Learn(addrE, 4, 5)

					Expect(result.Outcome).To(Equal(LearnNew))
					Expect(result.Full).To(BeFalse())
				})
			})
		})
	}
})

var _ = ginkgo.Describe("Duplicate repair", func() {
	ginkgo.It("should keep the lower slot and flag the table", func() {
		s := NewBruteStore(4, false)
		s.Learn(addrA, 1, 10)

		s.slots[2] = Entry{Addr: addrA, Port: 3, Valid: true, LastSeen: 10}
		s.occupied++

		report := s.Scrub(0)

		Expect(report.TableErr).To(BeTrue())
		Expect(report.Removed).To(Equal(0))
		Expect(s.Len()).To(Equal(1))

		port, ok := s.Lookup(addrA, 11)
		Expect(ok).To(BeTrue())
		Expect(port).To(Equal(1))
	})
})

var _ = ginkgo.Describe("Search latency", func() {
	ginkgo.It("should scale with the organization of each strategy", func() {
		Expect(NewBinaryStore(4, false).SearchLatency()).To(Equal(3))
		Expect(NewBinaryStore(5, false).SearchLatency()).To(Equal(4))
		Expect(NewBruteStore(64, false).SearchLatency()).To(Equal(2))
		Expect(NewHashedStore(64, false).SearchLatency()).To(Equal(3))
		Expect(NewParallelStore(8, 2, false).SearchLatency()).To(Equal(5))
		Expect(NewParallelStore(7, 2, false).SearchLatency()).To(Equal(5))
		Expect(NewSimpleStore(16, false).SearchLatency()).To(Equal(16))
		Expect(NewStreamStore(8).SearchLatency()).To(Equal(1))
	})
})
