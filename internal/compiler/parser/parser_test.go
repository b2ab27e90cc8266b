package parser

import (
	"crypto/md5"
	"errors"
	"io"
	"strings"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arnavsurve/gluegen/internal/compiler/ast"
	"github.com/arnavsurve/gluegen/internal/compiler/diag/diagmock"
	"github.com/arnavsurve/gluegen/internal/compiler/lexer"
)

var _ = Describe("Parser", func() {
	var (
		mockCtrl     *gomock.Controller
		mockReporter *diagmock.MockReporter
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockReporter = diagmock.NewMockReporter(mockCtrl)
		mockReporter.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should read declarations in order", func() {
		input := "__LOCATED_VAR(BOOL,__IX0_0,I,X,1,0,0)\n" +
			"__LOCATED_VAR(INT,__QW5,Q,W,1,5)\n"
		p := NewParser(strings.NewReader(input), mockReporter)

		decl, err := p.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(*decl).To(Equal(ast.Declaration{
			Line: 1, Raw: "__LOCATED_VAR(BOOL,__IX0_0,I,X,1,0,0)", Type: "BOOL", Name: "__IX0_0",
		}))

		decl, err = p.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(decl.Line).To(Equal(2))
		Expect(decl.Name).To(Equal("__QW5"))

		_, err = p.Next()
		Expect(err).To(MatchError(io.EOF))
	})

	It("should read a last line without a newline", func() {
		p := NewParser(strings.NewReader("X(INT,__IW3,)"), mockReporter)

		decl, err := p.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(decl.Name).To(Equal("__IW3"))

		_, err = p.Next()
		Expect(err).To(MatchError(io.EOF))
	})

	It("should skip a malformed line and keep reading", func() {
		input := "garbage without delimiters\n" +
			"X(INT,__QW5,)\n"
		p := NewParser(strings.NewReader(input), mockReporter)

		_, err := p.Next()
		var malformed *MalformedDeclarationError
		Expect(errors.As(err, &malformed)).To(BeTrue())
		Expect(malformed.Line).To(Equal(1))
		Expect(malformed.Raw).To(Equal("garbage without delimiters"))
		Expect(errors.Is(err, lexer.ErrMalformed)).To(BeTrue())

		decl, err := p.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(decl.Name).To(Equal("__QW5"))
		Expect(decl.Line).To(Equal(2))
	})

	It("should record malformed lines while parsing variables", func() {
		input := "X(INT,__QW5,)\n" +
			"\n" +
			"X(BOOL\n" +
			"X(INT,__Q,)\n" +
			"X(INT,__QW99999,)\n" +
			"X(BYTE,__IB1,)\n"
		mockReporter.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(3)

		p := NewParser(strings.NewReader(input), mockReporter)
		vars, err := p.ParseVariables()

		Expect(err).NotTo(HaveOccurred())
		Expect(vars).To(Equal([]ast.Variable{
			{Name: "__QW5", Type: "INT", Major: 5},
			{Name: "__IB1", Type: "BYTE", Major: 1},
		}))
		Expect(p.Errors()).To(HaveLen(3))
		Expect(p.Malformed()[0].Line).To(Equal(3))
		Expect(p.Malformed()[1].Line).To(Equal(4))
		Expect(p.Malformed()[2].Line).To(Equal(5))
		Expect(p.Lines()).To(Equal(6))
	})

	It("should warn about value types without a tag", func() {
		mockReporter.EXPECT().Warnf(gomock.Any(), gomock.Any()).Times(1)

		p := NewParser(strings.NewReader("X(TIME,__MD1,)\n"), mockReporter)
		vars, err := p.ParseVariables()

		Expect(err).NotTo(HaveOccurred())
		Expect(vars).To(HaveLen(1))
		Expect(p.Warnings()).To(ConsistOf(ContainSubstring("TIME")))
	})

	It("should hash every raw line in order", func() {
		lines := []string{"X(INT,__QW5,)", "not a declaration", "", "X(BOOL,__IX0_1,)\r"}
		mockReporter.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)

		p := NewParser(strings.NewReader(strings.Join(lines, "\n")+"\n"), mockReporter)
		_, err := p.ParseModule()
		Expect(err).NotTo(HaveOccurred())

		want := md5.Sum([]byte(strings.Join(lines, "")))
		Expect(p.Digest()).To(Equal(want))
	})

	It("should change the checksum when two lines swap", func() {
		a := "X(INT,__QW5,)\nX(INT,__QW6,)\n"
		b := "X(INT,__QW6,)\nX(INT,__QW5,)\n"

		pa := NewParser(strings.NewReader(a), mockReporter)
		ma, err := pa.ParseModule()
		Expect(err).NotTo(HaveOccurred())

		pb := NewParser(strings.NewReader(b), mockReporter)
		mb, err := pb.ParseModule()
		Expect(err).NotTo(HaveOccurred())

		Expect(ma.Digest).NotTo(Equal(mb.Digest))
	})

	It("should build a merged module", func() {
		input := "TYPE(BOOL,__IX0_0,...)\n" +
			"TYPE(BOOL,__IX0_1,...)\n" +
			"TYPE(INT,__QW5,...)\n"
		p := NewParser(strings.NewReader(input), mockReporter)

		m, err := p.ParseModule()

		Expect(err).NotTo(HaveOccurred())
		Expect(m.Lines).To(Equal(3))
		Expect(m.Variables).To(Equal([]ast.Variable{
			{Name: "__IG0", Type: "BOOL", Major: 0, Minor: 0},
			{Name: "__QW5", Type: "INT", Major: 5},
		}))
		Expect(m.Groups).To(HaveLen(1))
		Expect(m.Groups[0].Slots).To(Equal([ast.GroupSize]string{"__IX0_0", "__IX0_1", "", "", "", "", "", ""}))
	})
})
