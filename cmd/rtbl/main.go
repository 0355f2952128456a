// main.go -- rtbl command line entry point
//
// Grounded on example/main.go's pflag-based flag set, die/warn helpers and
// ExitOnError flag set.
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	flag "github.com/opencoff/pflag"

	"github.com/jpap/rainbow"
)

type options struct {
	generate   bool
	tablePath  string
	passwords  string
	text       bool
	threads    int
	vertical   uint64
	horizontal uint32
	length     uint32
	hash       string
	dumpMeta   bool
}

func main() {
	var o options

	usage := fmt.Sprintf(`%s - build and query a rainbow table

Usage: %s [options]

Options:
`, os.Args[0], os.Args[0])

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&o.generate, "generate", "g", false, "Build mode (default: crack mode)")
	fs.StringVarP(&o.tablePath, "table", "t", "table.txt", "Table file path")
	fs.StringVarP(&o.passwords, "passwords", "p", "", "Seed list, one password per line")
	fs.BoolVar(&o.text, "text", false, "Write text format (default: binary)")
	fs.IntVar(&o.threads, "threads", runtime.NumCPU(), "Worker thread count")
	fs.Uint64Var(&o.vertical, "vertical", 0, "Target row count N")
	fs.Uint32Var(&o.horizontal, "horizontal", 0, "Chain length C")
	fs.Uint32Var(&o.length, "length", 0, "Password length L")
	fs.StringVar(&o.hash, "hash", "SHA256", "Digest: SHA1, SHA256 or BLAKE512")
	fs.BoolVar(&o.dumpMeta, "dump-meta", false, "Print table parameters and exit (no crack loop)")
	fs.Usage = func() {
		fmt.Print(usage)
		fs.PrintDefaults()
		os.Exit(0)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		die(1, "%s", err)
	}

	h := rainbow.ParseHashType(o.hash)
	if !h.Valid() {
		die(2, "unknown hash type %q", o.hash)
	}

	if o.generate {
		runGenerate(o, h)
		return
	}
	runCrack(o, h)
}

func runGenerate(o options, h rainbow.HashType) {
	params := rainbow.Params{Hash: h, N: o.vertical, C: o.horizontal, L: o.length}
	t, err := rainbow.NewTable(params)
	if err != nil {
		die(1, "%s", err)
	}

	if o.passwords != "" {
		f, err := os.Open(o.passwords)
		if err != nil {
			die(1, "%s", err)
		}
		n, err := t.LoadSeeds(f)
		f.Close()
		if err != nil {
			die(1, "%s", err)
		}
		warn("loaded %d seeds from %s", n, o.passwords)
	}

	start := time.Now()
	err = rainbow.Build(t, rainbow.BuildOptions{
		Threads: o.threads,
		Progress: func(p rainbow.Progress) {
			warn("%d/%d rows (%s elapsed, %s remaining)",
				p.RowsDone, p.RowsTotal, p.Elapsed.Truncate(time.Second), p.ETA.Truncate(time.Second))
		},
		Warn: warn,
	})
	if err != nil {
		die(1, "%s", err)
	}
	warn("built %d rows in %s", t.Len(), time.Since(start).Truncate(time.Millisecond))

	out, err := os.Create(o.tablePath)
	if err != nil {
		die(1, "%s", err)
	}
	defer out.Close()

	if o.text {
		err = rainbow.SaveText(t, out)
	} else {
		err = rainbow.SaveBinary(t, out)
	}
	if err != nil {
		die(1, "%s", err)
	}
}

func runCrack(o options, h rainbow.HashType) {
	t, err := loadTable(o.tablePath)
	if err != nil {
		die(1, "%s", err)
	}
	defer t.Close()

	if o.dumpMeta {
		t.Describe(os.Stdout)
		return
	}

	cache, err := rainbow.NewResultCache(256)
	if err != nil {
		die(1, "%s", err)
	}

	interactive(t, rainbow.FindOptions{Threads: o.threads}, cache)
}

func loadTable(path string) (*rainbow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var magic [4]byte
	if _, err := f.Read(magic[:]); err != nil {
		return nil, err
	}
	f.Seek(0, 0)

	if string(magic[:]) == "RTXT" {
		return rainbow.LoadText(f)
	}
	return rainbow.LoadBinaryMmap(path)
}

func die(code int, f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(code)
}

func warn(f string, v ...interface{}) {
	z := fmt.Sprintf("%s: %s", os.Args[0], f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); n == 0 || s[n-1] != '\n' {
		s += "\n"
	}
	os.Stderr.WriteString(s)
}
