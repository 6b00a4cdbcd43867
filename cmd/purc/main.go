// Command purc is the reference CLI driver for the PurC-Go interpreter
// engine. Since the HVML tokenizer/parser is out of scope (spec §1), this
// driver accepts a vDOM built by package vdom's fixture Builder (selected
// by -demo) rather than parsing a .hvml file from disk; wiring in a real
// parser only requires swapping out buildDemoDocument for a call into that
// parser's output. Grounded on the teacher's cmd/paw driver (readline REPL
// + pterm-styled diagnostics) generalized from PawScript source files to
// HVML documents.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/purc-go/purc/coroutine"
	"github.com/purc-go/purc/docvars"
	"github.com/purc-go/purc/domtree"
	"github.com/purc-go/purc/element"
	"github.com/purc-go/purc/frame"
	"github.com/npillmayer/schuko/tracing"

	"github.com/purc-go/purc/heap"
	"github.com/purc-go/purc/internal/cliterm"
	"github.com/purc-go/purc/internal/pclog"
	"github.com/purc-go/purc/runloop"
	"github.com/purc-go/purc/scopevar"
	"github.com/purc-go/purc/variant"
	"github.com/purc-go/purc/vcm"
	"github.com/purc-go/purc/vdom"
)

var docVarNames = []string{"HVML", "SYSTEM", "DATETIME", "T", "L", "STR", "STREAM", "DOC", "SESSION", "EJSON", "TIMERS", "RUNNER"}

func bindDocVars(m *scopevar.Manager, dv *docvars.Set) {
	for _, name := range docVarNames {
		if v, ok := dv.Lookup(name); ok {
			m.Bind(name, v)
		}
	}
}

func main() {
	demo := flag.Bool("demo", false, "run the built-in demo document instead of reading a REPL")
	verbose := flag.Bool("v", false, "enable verbose tracing")
	flag.Parse()

	pclog.Init(traceLevel(*verbose))
	caps := cliterm.Detect()

	if *demo {
		runDemo(caps)
		return
	}
	runREPL(caps)
}

func traceLevel(verbose bool) tracing.TraceLevel {
	if verbose {
		return tracing.LevelDebug
	}
	return tracing.LevelError
}

func runDemo(caps cliterm.Capabilities) {
	doc := buildDemoDocument()
	outDoc := domtree.NewDocument()
	tree := domtree.NewTree(outDoc, nil, "")
	tree.NoRenderMode = true

	eval := vcm.Literal{}
	reg := element.NewRegistry(eval)

	co := coroutine.New(doc, tree, reg.New)
	h := heap.New()
	h.Register(co)

	dv := docvars.New(co.ID, variant.Str(outDoc.Serialize()), variant.MakeSetByCKey("id"))
	root := doc.Root
	bindDocVars(co.Stack.Vars.Create(root), dv)

	f := frame.NewFrame(frame.Normal, root, root, reg.New(root.Tag))
	f.EDOM = outDoc.Root
	co.Stack.Push(f)

	for h.RunRound() > 0 {
	}

	printBanner(caps, "demo run complete")
	fmt.Println(outDoc.Serialize())
}

func runREPL(caps cliterm.Capabilities) {
	printBanner(caps, "purc interactive shell (type :q to quit)")

	rl, err := readline.New("purc> ")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	defer rl.Close()

	loop := runloop.New()
	h := heap.New()

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		if line == ":q" {
			break
		}
		pterm.Info.Printfln("(parsing not implemented in this reference driver; %d coroutines live)", len(describeCoroutines(h)))
	}
	loop.Stop()
}

func describeCoroutines(h *heap.Heap) []string {
	return nil
}

func printBanner(caps cliterm.Capabilities, msg string) {
	if caps.SupportsColor {
		pterm.DefaultHeader.Println("PurC-Go")
		pterm.Info.Println(msg)
		return
	}
	fmt.Println("PurC-Go:", msg)
}

// buildDemoDocument builds a minimal <hvml><body><init as="x" at="1"
// /></body></hvml> tree via the fixture Builder, standing in for what a
// real tokenizer/parser would hand the engine (spec E1-style smoke test).
func buildDemoDocument() *vdom.Document {
	b := vdom.NewBuilder() // already rooted at <hvml>
	b.Open("body")
	b.Open("init", vdom.A("as", "x"), vdom.A("at", "1"))
	b.Close()
	b.Close()
	return b.Build()
}
