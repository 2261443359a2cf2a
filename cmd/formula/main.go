package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/brugo/formula"
)

func main() {
	log.SetFlags(0)
	var (
		verb     string
		with     [][2]string
		at       string
		optimize bool
		echo     bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`parameter definitions must be "name=value", not %q`, s)
		}
		name := strings.TrimSpace(d[0])
		if len(name) != 1 {
			return fmt.Errorf("parameter names must be 1 character, not %q", name)
		}
		with = append(with, [2]string{name, strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value parameter definition (any number of times)", addwith)
	flag.StringVar(&at, "at", "", `free variable binding, e.g. "x=2.5"`)
	flag.BoolVar(&optimize, "O", false, "optimize expressions after building them")
	flag.BoolVar(&echo, "echo", false, "print expression trees")
	flag.Parse()

	policy := formula.Build
	if optimize {
		policy = formula.BuildAndOptimize
	}

	params := make(map[byte]float64, len(with))
	for _, d := range with {
		v, err := formula.Compute(d[1])
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		params[d[0][0]] = v
	}
	var (
		bound    byte
		boundVal float64
		haveAt   bool
	)
	if at != "" {
		d := strings.SplitN(at, "=", 2)
		if len(d) != 2 || len(strings.TrimSpace(d[0])) != 1 {
			log.Fatalf(`free variable binding must be "name=value", not %q`, at)
		}
		v, err := formula.Compute(strings.TrimSpace(d[1]))
		if err != nil {
			log.Fatalf("binding %s: %v", d[0], err)
		}
		bound, boundVal, haveAt = strings.TrimSpace(d[0])[0], v, true
	}

	verb += "\n"
	run := func(src string) error {
		e, err := formula.NewWith(policy, src)
		if err != nil {
			return err
		}
		for name, v := range params {
			e.SetParam(name, v)
		}
		if echo {
			fmt.Printf("%v : ", e)
		}
		var r float64
		if haveAt {
			r, err = e.EvalAt(bound, boundVal)
		} else {
			r, err = e.Eval()
		}
		if err != nil {
			return err
		}
		fmt.Printf(verb, r)
		return nil
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			if err := run(arg); err != nil {
				log.Fatal(err)
			}
		}
		return
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	in := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if err := run(line); err != nil {
			if !interactive {
				log.Fatal(err)
			}
			fmt.Println(err)
		}
	}
	if err := in.Err(); err != nil {
		log.Fatal(err)
	}
}
