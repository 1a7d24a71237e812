package catalog

import (
	"path/filepath"

	"github.com/ethereum-optimism/infra/op-bench/types"
)

// DefaultSuiteName names the subject in the banner and build messages
const DefaultSuiteName = "bfsree"

// Default returns the built-in BFBench catalog rooted at benchDir
func Default(benchDir string) *Catalog {
	in := func(name string) string { return filepath.Join(benchDir, name) }

	return &Catalog{
		Name:     DefaultSuiteName,
		BenchDir: benchDir,
		Cases: []types.BenchmarkCase{
			{
				Name:        "Mandelbrot",
				ProgramPath: in("mandelbrot.b"),
				Expectation: types.ExpectedFileRef(in("mandelbrot.out")),
			},
			{
				Name:        "Factoring",
				ProgramPath: in("factor.b"),
				Stdin:       []byte("123456789123456789\n"),
				Expectation: types.InlineExpectedText("123456789123456789: 3 3 7 11 13 19 3607 3803 52579\n"),
			},
			{
				Name:        "Long Run",
				ProgramPath: in("long.b"),
				Expectation: types.ExpectedFileRef(in("long.out")),
			},
			{
				Name:        "Golden Ratio",
				ProgramPath: in("golden.b"),
				Expectation: types.InlineExpectedText("1.618033988749894848204586834365638117\n"),
			},
			{
				Name:        "Hanoi",
				ProgramPath: in("hanoi.b"),
				Expectation: types.ExpectedFileRef(in("hanoi.out")),
			},
			{
				Name:        "99 Bottles of Beer",
				ProgramPath: in("beer.b"),
				Expectation: types.ExpectedFileRef(in("beer.out")),
			},
			{
				Name:        "Simple Benchmark",
				ProgramPath: in("bench.b"),
				Expectation: types.InlineExpectedText("OK\n"),
			},
		},
	}
}
