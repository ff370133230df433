package regio

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/clocktree/bitfield"
)

type failingAccessor struct {
	err error
}

func (f failingAccessor) Read32(offset uint32) (uint32, error) {
	return 0, f.err
}

func (f failingAccessor) Write32(offset, value uint32) error {
	return f.err
}

type recordingHook struct {
	ctxs []HookCtx
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

var _ = Describe("Space", func() {
	var (
		store *MemStore
		space *Space
	)

	BeforeEach(func() {
		store = NewMemStore()
		space = NewSpace(store)
	})

	It("should read and write whole registers", func() {
		Expect(space.Write32(0x08, 0x12345678)).To(Succeed())

		val, err := space.Read32(0x08)
		Expect(err).ToNot(HaveOccurred())
		Expect(val).To(Equal(uint32(0x12345678)))
	})

	It("should read zero from untouched registers", func() {
		val, err := space.Read32(0x54)
		Expect(err).ToNot(HaveOccurred())
		Expect(val).To(Equal(uint32(0)))
	})

	It("should extract a field on read", func() {
		Expect(space.Write32(0x0C, 0x00600201)).To(Succeed())

		val, err := space.ReadField(0x0C, bitfield.New(27, 16))
		Expect(err).ToNot(HaveOccurred())
		Expect(val).To(Equal(uint32(0x60)))
	})

	It("should modify only the bits under the field", func() {
		Expect(space.Write32(0x04, 0xFFFFFFFF)).To(Succeed())

		Expect(space.Modify(0x04, bitfield.New(9, 8), 0)).To(Succeed())

		val, _ := space.Read32(0x04)
		Expect(val).To(Equal(uint32(0xFFFFFCFF)))
	})

	It("should wrap accessor failures with the offending access", func() {
		boom := errors.New("bus fault")
		space = NewSpace(failingAccessor{err: boom})

		_, err := space.Read32(0x2C)

		var accErr *AccessError
		Expect(errors.As(err, &accErr)).To(BeTrue())
		Expect(accErr.Op).To(Equal("read"))
		Expect(accErr.Offset).To(Equal(uint32(0x2C)))
		Expect(errors.Is(err, boom)).To(BeTrue())
	})

	It("should invoke hooks on every access", func() {
		hook := &recordingHook{}
		space.AcceptHook(hook)

		Expect(space.Write32(0x08, 7)).To(Succeed())
		_, err := space.Read32(0x08)
		Expect(err).ToNot(HaveOccurred())

		Expect(hook.ctxs).To(HaveLen(2))
		Expect(hook.ctxs[0].Pos).To(Equal(HookPosWrite))
		Expect(hook.ctxs[1].Pos).To(Equal(HookPosRead))
		Expect(hook.ctxs[1].Value).To(Equal(uint32(7)))
	})

	It("should fire one read and one write hook per modify", func() {
		hook := &recordingHook{}
		space.AcceptHook(hook)

		Expect(space.Modify(0x58, bitfield.New(15, 11), 9)).To(Succeed())

		Expect(hook.ctxs).To(HaveLen(2))
		Expect(hook.ctxs[0].Pos).To(Equal(HookPosRead))
		Expect(hook.ctxs[1].Pos).To(Equal(HookPosWrite))
		Expect(hook.ctxs[1].Value).To(Equal(uint32(9<<11)))
	})
})

var _ = Describe("Snapshot", func() {
	It("should load offsets and values", func() {
		text := "# clk regs\n04 00000155\n0c 00600201\n\n"

		store, err := LoadSnapshot(strings.NewReader(text))
		Expect(err).ToNot(HaveOccurred())

		val, _ := store.Read32(0x04)
		Expect(val).To(Equal(uint32(0x155)))
		val, _ = store.Read32(0x0C)
		Expect(val).To(Equal(uint32(0x00600201)))
	})

	It("should reject malformed lines", func() {
		_, err := LoadSnapshot(strings.NewReader("04 notahexvalue"))
		Expect(err).To(HaveOccurred())
	})

	It("should round-trip through save and load", func() {
		store := NewMemStore()
		Expect(store.Write32(0x58, 0xDEAD)).To(Succeed())
		Expect(store.Write32(0x04, 0x2)).To(Succeed())

		var sb strings.Builder
		Expect(SaveSnapshot(&sb, store)).To(Succeed())

		loaded, err := LoadSnapshot(strings.NewReader(sb.String()))
		Expect(err).ToNot(HaveOccurred())
		val, _ := loaded.Read32(0x58)
		Expect(val).To(Equal(uint32(0xDEAD)))
	})
})
