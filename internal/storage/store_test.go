package storage_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circuitlab/internal/storage"
)

var _ = Describe("File", func() {
	var (
		dir string
		st  *storage.File
	)

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "data")
		st = storage.New(dir)
	})

	It("reports a missing key as absent, not as an error", func() {
		v, ok, err := st.Get("componentes")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
		Expect(v).To(BeEmpty())
	})

	It("creates the data directory on first write", func() {
		Expect(st.Set("componentes", "[]")).To(Succeed())
		Expect(filepath.Join(dir, "componentes.json")).To(BeARegularFile())
	})

	It("overwrites values in place", func() {
		Expect(st.Set("componentes", `[{"tipo":"resistor"}]`)).To(Succeed())
		Expect(st.Set("componentes", "[]")).To(Succeed())

		v, ok, err := st.Get("componentes")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("[]"))
	})

	It("leaves no temp files behind", func() {
		Expect(st.Set("componentes", "[]")).To(Succeed())
		Expect(st.Set("fechaGuardado", "2024-01-01T00:00:00.000Z")).To(Succeed())

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
	})

	It("lists keys in order", func() {
		Expect(st.Set("fechaGuardado", "x")).To(Succeed())
		Expect(st.Set("componentes", "[]")).To(Succeed())

		keys, err := st.Keys()
		Expect(err).NotTo(HaveOccurred())
		Expect(keys).To(Equal([]string{"componentes", "fechaGuardado"}))
	})

	It("lists no keys before the directory exists", func() {
		keys, err := st.Keys()
		Expect(err).NotTo(HaveOccurred())
		Expect(keys).To(BeEmpty())
	})

	It("deletes keys and tolerates deleting twice", func() {
		Expect(st.Set("componentes", "[]")).To(Succeed())
		Expect(st.Delete("componentes")).To(Succeed())
		Expect(st.Delete("componentes")).To(Succeed())

		_, ok, err := st.Get("componentes")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	DescribeTable("rejects keys that are not plain file names",
		func(key string) {
			Expect(st.Set(key, "v")).To(MatchError(storage.ErrInvalidKey))
			_, _, err := st.Get(key)
			Expect(err).To(MatchError(storage.ErrInvalidKey))
		},
		Entry("empty", ""),
		Entry("parent traversal", "../escape"),
		Entry("separator", "a/b"),
	)
})

var _ = Describe("Memory", func() {
	It("round-trips values", func() {
		m := storage.NewMemory()
		Expect(m.Set("componentes", "[]")).To(Succeed())

		v, ok, err := m.Get("componentes")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("[]"))

		Expect(m.Delete("componentes")).To(Succeed())
		keys, _ := m.Keys()
		Expect(keys).To(BeEmpty())
	})
})
