// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lassandro/gomips/pkg/assembler"
)

var _ = Describe("AssembleConcurrent", func() {
	var (
		mockCtrl *gomock.Controller
		sink     *MockSink
		emitted  []assembler.LineResult
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sink = NewMockSink(mockCtrl)
		emitted = nil
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	record := func(times int) {
		sink.EXPECT().
			Emit(gomock.Any()).
			DoAndReturn(func(result assembler.LineResult) error {
				emitted = append(emitted, result)
				return nil
			}).
			Times(times)
	}

	run := func(input string, opts assembler.Options) error {
		return assembler.AssembleConcurrent(
			context.Background(), strings.NewReader(input), opts, sink,
		)
	}

	It("should emit every line in source order", func() {
		var source strings.Builder

		for i := 0; i < 200; i++ {
			fmt.Fprintf(&source, "addi $t0, $t1, %d\n", i)
		}

		record(200)

		Expect(run(source.String(), assembler.Options{Jobs: 8})).To(Succeed())
		Expect(emitted).To(HaveLen(200))

		for i, result := range emitted {
			Expect(result.Line).To(Equal(i + 1))
			Expect(result.Err).NotTo(HaveOccurred())
			Expect(result.Result.Word & 0xFFFF).To(Equal(uint32(i)))
		}
	})

	It("should keep assembling after a malformed line", func() {
		input := "add $t0, $t1, $t2\n" +
			"add $t0, $t1, 999999999999\n" +
			"sub $v0, $a0, $a1\n"

		record(3)

		Expect(run(input, assembler.Options{Jobs: 3})).To(Succeed())
		Expect(emitted).To(HaveLen(3))

		Expect(emitted[0].Line).To(Equal(1))
		Expect(emitted[0].Err).NotTo(HaveOccurred())
		Expect(emitted[0].Result.Bytes).To(Equal(
			[4]string{"00100000", "01000000", "00101010", "00000001"},
		))

		Expect(emitted[1].Line).To(Equal(2))
		Expect(emitted[1].Err).To(
			BeAssignableToTypeOf(&assembler.UnexpectedTokenError{}),
		)

		want, err := assembler.AssembleLine("sub $v0, $a0, $a1", 3)
		Expect(err).NotTo(HaveOccurred())

		Expect(emitted[2].Line).To(Equal(3))
		Expect(emitted[2].Err).NotTo(HaveOccurred())
		Expect(emitted[2].Result).To(Equal(want))
	})

	It("should agree with sequential assembly", func() {
		input := "# header\n" +
			"\n" +
			"lw $t0, 4($sp)   # load\n" +
			"sll $t0, $t1, 32\n" +
			"j 67108863\n" +
			"bogus\n" +
			"\tbreak\n"

		results, errs := assembler.Assemble(
			strings.NewReader(input), assembler.Options{},
		)
		Expect(errs).To(HaveLen(2))

		record(len(results))

		Expect(run(input, assembler.Options{Jobs: 4})).To(Succeed())
		Expect(emitted).To(Equal(results))
	})

	It("should stop after the first failure when failing fast", func() {
		input := "add $t0, $t1, $t2\n" +
			"add $t0\n" +
			"add $t0, $t1, $t2\n" +
			"add $t0, $t1, $t2\n"

		record(2)

		Expect(run(input, assembler.Options{Jobs: 4, FailFast: true})).To(Succeed())
		Expect(emitted[1].Err).To(
			BeAssignableToTypeOf(&assembler.TooFewArgumentsError{}),
		)
	})

	It("should return sink errors", func() {
		errSink := errors.New("sink closed")

		sink.EXPECT().Emit(gomock.Any()).Return(errSink).Times(1)

		err := run("break\nrte\n", assembler.Options{Jobs: 2})
		Expect(err).To(MatchError(errSink))
	})

	It("should stop on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sink.EXPECT().Emit(gomock.Any()).Times(0)

		err := assembler.AssembleConcurrent(
			ctx, strings.NewReader("break\nrte\n"), assembler.Options{}, sink,
		)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("should emit nothing for blank input", func() {
		sink.EXPECT().Emit(gomock.Any()).Times(0)

		Expect(run("\n# nothing\n   \n", assembler.Options{Jobs: 2})).To(Succeed())
	})
})
