//go:build !teststub

// Package nist provides the default estimator suite, backed by the NIST
// SP 800-90B Entropy Assessment C++ reference implementation through a thin
// C shim.  Build with the "teststub" tag to substitute deterministic stubs
// and drop the C++ toolchain requirement; see stub.go.
//
// The reference sources are expected as a git submodule under pkg/nist/cpp
// with the static libraries built into pkg/nist/lib.
package nist

/*
#cgo CXXFLAGS: -std=c++11 -fopenmp -I${SRCDIR}/cpp -I${SRCDIR}/shim
#cgo LDFLAGS: -L${SRCDIR}/lib -lentropy90b -lbz2 -ldivsufsort -ldivsufsort64 -lmpfr -lgmp -lgomp -lstdc++ -lm -lcrypto
#include "shim/shim.h"
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/BTBurke/entropic"
)

// failure and allocFailure are the shim's sentinels for a C++ exception and
// for std::bad_alloc, distinct from the -1.0 "not applicable" convention of
// the estimators themselves.
const (
	failure      = -2.0
	allocFailure = -3.0
)

// call invokes one shim estimator entry point.  A C++ exception surfaces as
// a panic carrying the original diagnostic, which the aggregator recovers
// and tags as an internal error.  Allocation failures panic with
// entropic.AllocationFailure so they surface as ErrAllocation instead.
func call(f func(data *C.uint8_t, n C.size_t, alph C.size_t, label *C.char, verbose C.int, errbuf *C.char) C.double,
	symbols []uint8, alphSize int, ch entropic.Channel, verbose int) float64 {

	if len(symbols) == 0 {
		return -1.0
	}
	label := C.CString(string(ch))
	defer C.free(unsafe.Pointer(label))

	var errbuf [256]C.char
	ret := float64(f(
		(*C.uint8_t)(unsafe.Pointer(&symbols[0])),
		C.size_t(len(symbols)),
		C.size_t(alphSize),
		label,
		C.int(verbose),
		&errbuf[0],
	))
	if ret <= allocFailure {
		panic(entropic.AllocationFailure{Msg: fmt.Sprintf("nist estimator: %s", C.GoString(&errbuf[0]))})
	}
	if ret <= failure {
		panic(fmt.Sprintf("nist estimator: %s", C.GoString(&errbuf[0])))
	}
	return ret
}

func estimator(f func(*C.uint8_t, C.size_t, C.size_t, *C.char, C.int, *C.char) C.double) entropic.EstimatorFunc {
	return func(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) float64 {
		return call(f, symbols, alphSize, ch, verbose)
	}
}

func tupleLRS(symbols []uint8, alphSize int, ch entropic.Channel, verbose int) (float64, float64) {
	if len(symbols) == 0 {
		return -1.0, -1.0
	}
	label := C.CString(string(ch))
	defer C.free(unsafe.Pointer(label))

	var tTuple, lrs C.double
	var errbuf [256]C.char
	ret := C.ea_sa_algs(
		(*C.uint8_t)(unsafe.Pointer(&symbols[0])),
		C.size_t(len(symbols)),
		C.size_t(alphSize),
		&tTuple, &lrs,
		label, C.int(verbose), &errbuf[0],
	)
	if ret == -2 {
		panic(entropic.AllocationFailure{Msg: fmt.Sprintf("nist estimator: %s", C.GoString(&errbuf[0]))})
	}
	if ret != 0 {
		panic(fmt.Sprintf("nist estimator: %s", C.GoString(&errbuf[0])))
	}
	return float64(tTuple), float64(lrs)
}

func confirm(f func(*C.uint8_t, C.size_t, C.size_t, C.int, *C.char) C.int) entropic.ConfirmFunc {
	return func(symbols []uint8, alphSize int, verbose int) bool {
		if len(symbols) == 0 {
			return false
		}
		var errbuf [256]C.char
		ret := f(
			(*C.uint8_t)(unsafe.Pointer(&symbols[0])),
			C.size_t(len(symbols)),
			C.size_t(alphSize),
			C.int(verbose),
			&errbuf[0],
		)
		if ret == -2 {
			panic(entropic.AllocationFailure{Msg: fmt.Sprintf("nist test: %s", C.GoString(&errbuf[0]))})
		}
		if ret < 0 {
			panic(fmt.Sprintf("nist test: %s", C.GoString(&errbuf[0])))
		}
		return ret == 1
	}
}

// Suite returns the estimator suite backed by the NIST reference library.
func Suite() *entropic.Suite {
	return &entropic.Suite{
		MostCommon:  estimator(wrapMostCommon),
		Collision:   estimator(wrapCollision),
		Markov:      estimator(wrapMarkov),
		Compression: estimator(wrapCompression),
		TupleLRS:    tupleLRS,
		MultiMCW:    estimator(wrapMultiMCW),
		Lag:         estimator(wrapLag),
		MultiMMC:    estimator(wrapMultiMMC),
		LZ78Y:       estimator(wrapLZ78Y),
		ChiSquare:   confirm(wrapChiSquare),
		LRSLength:   confirm(wrapLRSLength),
		Permutation: confirm(wrapPermutation),
	}
}

func wrapMostCommon(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_most_common(d, n, a, l, v, e)
}
func wrapCollision(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_collision(d, n, l, v, e)
}
func wrapMarkov(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_markov(d, n, l, v, e)
}
func wrapCompression(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_compression(d, n, l, v, e)
}
func wrapMultiMCW(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_multi_mcw(d, n, a, l, v, e)
}
func wrapLag(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_lag(d, n, a, l, v, e)
}
func wrapMultiMMC(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_multi_mmc(d, n, a, l, v, e)
}
func wrapLZ78Y(d *C.uint8_t, n C.size_t, a C.size_t, l *C.char, v C.int, e *C.char) C.double {
	return C.ea_lz78y(d, n, a, l, v, e)
}
func wrapChiSquare(d *C.uint8_t, n C.size_t, a C.size_t, v C.int, e *C.char) C.int {
	return C.ea_chi_square(d, n, a, v, e)
}
func wrapLRSLength(d *C.uint8_t, n C.size_t, a C.size_t, v C.int, e *C.char) C.int {
	return C.ea_lrs_pass(d, n, a, v, e)
}
func wrapPermutation(d *C.uint8_t, n C.size_t, a C.size_t, v C.int, e *C.char) C.int {
	return C.ea_permutation(d, n, a, v, e)
}
