package scanning

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("normalizeMIMEType", func() {
	DescribeTable("normalizing",
		func(input, expected string) {
			Expect(normalizeMIMEType(input)).To(Equal(expected))
		},
		Entry("upper case", "Application/PDF", "application/pdf"),
		Entry("with parameters", "image/jpeg; charset=binary", "image/jpeg"),
		Entry("empty", "  ", "application/octet-stream"),
	)
})

var _ = Describe("toPNG", func() {
	var (
		data        []byte
		contentType string
		result      []byte
		err         error
	)

	JustBeforeEach(func() {
		result, err = toPNG(data, contentType)
	})

	When("the input is already PNG", func() {
		BeforeEach(func() {
			data = []byte("png bytes")
			contentType = "image/png"
		})

		It("returns it unchanged", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(data))
		})
	})

	When("the input is a JPEG", func() {
		BeforeEach(func() {
			img := image.NewRGBA(image.Rect(0, 0, 4, 4))
			img.Set(1, 1, color.RGBA{R: 255, A: 255})
			var buf bytes.Buffer
			Expect(jpeg.Encode(&buf, img, nil)).To(Succeed())
			data = buf.Bytes()
			contentType = "image/jpeg"
		})

		It("re-encodes it as PNG", func() {
			Expect(err).NotTo(HaveOccurred())
			_, decodeErr := png.Decode(bytes.NewReader(result))
			Expect(decodeErr).NotTo(HaveOccurred())
		})
	})

	When("the input is not an image", func() {
		BeforeEach(func() {
			data = []byte("not an image")
			contentType = "image/jpeg"
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("decoding image"))
		})
	})
})

var _ = Describe("isHEIC", func() {
	It("detects the ftyp brand", func() {
		data := append([]byte{0, 0, 0, 24}, []byte("ftypheic0000")...)
		Expect(isHEIC(data, "application/octet-stream")).To(BeTrue())
	})

	It("detects the MIME type", func() {
		Expect(isHEIC(nil, "image/heif")).To(BeTrue())
	})

	It("rejects other data", func() {
		Expect(isHEIC([]byte("short"), "image/jpeg")).To(BeFalse())
	})
})
