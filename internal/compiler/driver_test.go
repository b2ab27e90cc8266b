package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arnavsurve/gluegen/internal/compiler/diag"
	"github.com/arnavsurve/gluegen/internal/compiler/diag/diagmock"
)

var _ = Describe("Driver", func() {
	var (
		ctx          context.Context
		mockCtrl     *gomock.Controller
		mockReporter *diagmock.MockReporter
		dir          string
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockCtrl = gomock.NewController(GinkgoT())
		mockReporter = diagmock.NewMockReporter(mockCtrl)
		mockReporter.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
		dir = GinkgoT().TempDir()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should match the golden output", func() {
		want, err := os.ReadFile(filepath.Join("testdata", "good", "basic.cpp"))
		Expect(err).NotTo(HaveOccurred())
		out := filepath.Join(dir, "glueVars.cpp")

		res, err := GenerateFiles(ctx, filepath.Join("testdata", "good", "basic.h"), out, Options{}, mockReporter)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Malformed).To(BeZero())
		got, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(got)).To(Equal(string(want)))
	})

	It("should produce identical output for identical input", func() {
		input := "__LOCATED_VAR(BOOL,__IX0_0,I,X,1,0,0)\n__LOCATED_VAR(INT,__QW5,Q,W,1,5)\n"
		var a, b bytes.Buffer

		_, err := Generate(ctx, strings.NewReader(input), &a, Options{}, mockReporter)
		Expect(err).NotTo(HaveOccurred())
		_, err = Generate(ctx, strings.NewReader(input), &b, Options{}, mockReporter)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Bytes()).To(Equal(b.Bytes()))
	})

	It("should emit the group scenario without classical bit assignments", func() {
		input := "TYPE(BOOL,__IX0_0,...)\nTYPE(BOOL,__IX0_1,...)\n"
		var out bytes.Buffer

		res, err := Generate(ctx, strings.NewReader(input), &out, Options{}, mockReporter)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Module.Groups).To(HaveLen(1))
		Expect(out.String()).To(ContainSubstring(
			"GlueBoolGroup ___IG0 { .index=0, .values={ __IX0_0, __IX0_1, nullptr, nullptr, nullptr, nullptr, nullptr, nullptr, } };"))
		Expect(out.String()).To(ContainSubstring("OPLCGLUE_GLUE_SIZE(1);"))
		Expect(out.String()).NotTo(ContainSubstring("bool_input[0]["))
	})

	It("should emit the single word scenario", func() {
		var out bytes.Buffer

		_, err := Generate(ctx, strings.NewReader("TYPE(INT,__QW5,...)\n"), &out, Options{}, mockReporter)

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("\tint_output[5] = __QW5;\n"))
		Expect(out.String()).To(ContainSubstring("{ IECLDT_OUT, IECLST_WORD, 5, 0, IECVT_INT,  __QW5 },"))
	})

	It("should skip malformed lines outside strict mode", func() {
		mockReporter.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)
		out := filepath.Join(dir, "glueVars.cpp")

		res, err := GenerateFiles(ctx, filepath.Join("testdata", "bad", "malformed.h"), out, Options{}, mockReporter)

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Malformed).To(Equal(1))
		Expect(res.Module.Variables).To(HaveLen(2))
		Expect(out).To(BeAnExistingFile())
	})

	It("should reject malformed lines in strict mode without writing", func() {
		mockReporter.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)
		out := filepath.Join(dir, "glueVars.cpp")

		_, err := GenerateFiles(ctx, filepath.Join("testdata", "bad", "malformed.h"), out, Options{Strict: true}, mockReporter)

		Expect(errors.Is(err, ErrStrict)).To(BeTrue())
		Expect(ExitCode(err)).To(Equal(ExitStrict))
		content, readErr := os.ReadFile(out)
		Expect(readErr).NotTo(HaveOccurred())
		Expect(content).To(BeEmpty())
	})

	It("should not create the output when the input is missing", func() {
		out := filepath.Join(dir, "glueVars.cpp")

		_, err := GenerateFiles(ctx, filepath.Join(dir, "missing.h"), out, Options{}, diag.Discard())

		var openErr *OpenError
		Expect(errors.As(err, &openErr)).To(BeTrue())
		Expect(openErr.Side).To(Equal(SideInput))
		Expect(ExitCode(err)).To(Equal(ExitInputOpen))
		Expect(out).NotTo(BeAnExistingFile())
	})

	It("should fail with the output status when the output cannot be created", func() {
		out := filepath.Join(dir, "no", "such", "dir", "glueVars.cpp")

		_, err := GenerateFiles(ctx, filepath.Join("testdata", "good", "basic.h"), out, Options{}, diag.Discard())

		Expect(ExitCode(err)).To(Equal(ExitOutputOpen))
		Expect(err.Error()).To(HavePrefix("Error opening glue variables file at "))
	})

	It("should stop before emitting when the context is done", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		var out bytes.Buffer

		_, err := Generate(cancelled, strings.NewReader("TYPE(INT,__QW5,...)\n"), &out, Options{}, mockReporter)

		Expect(err).To(MatchError(context.Canceled))
		Expect(out.Len()).To(BeZero())
		Expect(ExitCode(err)).To(Equal(ExitOtherFailure))
	})

	It("should list the unified table for inspection", func() {
		entries, m, err := Inspect(ctx, filepath.Join("testdata", "good", "basic.h"), mockReporter)

		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(6))
		Expect(entries[0].Name).To(Equal("__IG0"))
		Expect(entries[4].Major).To(Equal(uint16(1025)))
		Expect(m.Groups).To(HaveLen(2))
	})
})
