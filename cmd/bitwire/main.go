// Command bitwire evaluates a wire program.
//
// Usage:
//
//	bitwire [flags] program.txt
//
// By default it prints the signal on wire a, then resets all wires, forces
// wire b to that signal and prints the new signal on wire a.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/db47h/bitwire"
	"github.com/pkg/errors"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bitwire: ")

	var (
		target   string
		override string
		trace    bool
		dump     bool
		workers  int
	)
	flag.StringVar(&target, "wire", "a", "wire to resolve")
	flag.StringVar(&override, "override", "b", "wire forced to the first result before resolving again; empty to disable")
	flag.BoolVar(&trace, "trace", false, "log every gate evaluation")
	flag.BoolVar(&dump, "dump", false, "print the signal of every wire")
	flag.IntVar(&workers, "workers", 0, "number of goroutines used by -dump (0 means GOMAXPROCS)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] program.txt|-\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	var opts []bitwire.EvalOption
	if trace {
		opts = append(opts, bitwire.WithLogf(log.Printf))
	}

	r, err := load(flag.Arg(0))
	if err != nil {
		log.Fatalf("%+v", err)
	}

	if dump {
		if err := dumpAll(os.Stdout, r, workers, opts); err != nil {
			log.Fatalf("%+v", err)
		}
		return
	}

	if override == "" {
		s, err := bitwire.NewEvaluator(r, opts...).Resolve(target)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		fmt.Printf("%s: %d\n", target, s)
		return
	}

	first, second, err := bitwire.Solve(r, target, override, opts...)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	fmt.Printf("%s: %d\n", target, first)
	fmt.Printf("%s: %d (%s = %d)\n", target, second, override, first)
}

func load(name string) (*bitwire.Registry, error) {
	if name == "-" {
		return bitwire.Parse(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	r, err := bitwire.Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return r, nil
}

func dumpAll(w io.Writer, r *bitwire.Registry, workers int, opts []bitwire.EvalOption) error {
	names := r.Wires()
	sigs, err := bitwire.NewSyncEvaluator(r, opts...).ResolveAll(context.Background(), workers, names...)
	if err != nil {
		return err
	}
	for _, n := range names {
		if _, err := fmt.Fprintf(w, "%s: %d\n", n, sigs[n]); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
