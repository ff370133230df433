package clock_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/clocktree/bitfield"
	"github.com/sarchlab/clocktree/clock"
)

var _ = Describe("Registry", func() {
	ref := clock.Descriptor{
		ID: 0, Name: "ref", Kind: clock.KindReference,
		Rate: 25_000_000, SelValue: clock.NoSelValue,
	}

	It("should look descriptors up by id", func() {
		r := clock.NewRegistry(4, []clock.Descriptor{ref})

		d, err := r.Lookup(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(d.Name).To(Equal("ref"))
	})

	It("should report missing descriptors as not found", func() {
		r := clock.NewRegistry(4, []clock.Descriptor{ref})

		_, err := r.Lookup(3)
		Expect(err).To(MatchError(clock.ErrNotFound))
	})

	It("should keep table order and counts", func() {
		pass := clock.Descriptor{
			ID: 2, Name: "pass", Kind: clock.KindPassthrough,
			Parent: 0, SelValue: clock.NoSelValue, Flags: clock.FixedSource,
		}
		r := clock.NewRegistry(4, []clock.Descriptor{pass, ref})

		Expect(r.Count()).To(Equal(uint32(4)))
		Expect(r.Len()).To(Equal(2))

		all := r.All()
		Expect(all[0].Name).To(Equal("pass"))
		Expect(all[1].Name).To(Equal("ref"))
	})

	It("should panic on a duplicate id", func() {
		Expect(func() {
			clock.NewRegistry(4, []clock.Descriptor{ref, ref})
		}).To(Panic())
	})

	It("should panic on an id outside the namespace", func() {
		bad := ref
		bad.ID = 9

		Expect(func() {
			clock.NewRegistry(4, []clock.Descriptor{bad})
		}).To(Panic())
	})

	It("should panic when both divider encodings are set", func() {
		bad := clock.Descriptor{
			ID: 1, Name: "d", Kind: clock.KindDivider,
			Parent: 0, DivReg: 0x08, DivField: bitfield.New(3, 0),
			SelValue: clock.NoSelValue,
			Flags:    clock.FixedSource | clock.DivAdd1 | clock.DivPow2,
		}

		Expect(func() {
			clock.NewRegistry(4, []clock.Descriptor{bad})
		}).To(Panic())
	})

	It("should panic on a divider with no encoding flag", func() {
		bad := clock.Descriptor{
			ID: 1, Name: "d", Kind: clock.KindDivider,
			Parent: 0, DivReg: 0x08, DivField: bitfield.New(3, 0),
			SelValue: clock.NoSelValue,
			Flags:    clock.FixedSource,
		}

		Expect(func() {
			clock.NewRegistry(4, []clock.Descriptor{bad})
		}).To(Panic())
	})

	It("should panic when neither a fixed source nor a selector is given", func() {
		bad := clock.Descriptor{
			ID: 1, Name: "d", Kind: clock.KindDivider,
			DivReg: 0x08, DivField: bitfield.New(3, 0),
			SelValue: clock.NoSelValue,
			Flags:    clock.DivAdd1,
		}

		Expect(func() {
			clock.NewRegistry(4, []clock.Descriptor{bad})
		}).To(Panic())
	})

	It("should panic on a nameless descriptor", func() {
		bad := ref
		bad.Name = ""

		Expect(func() {
			clock.NewRegistry(4, []clock.Descriptor{bad})
		}).To(Panic())
	})
})
