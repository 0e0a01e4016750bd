// Command caret-repl is an interactive demo shell for the caret navigation
// engine. It builds a small document tree and lets you walk a caret through
// it, convert offsets, and inspect weights.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/softglow/caret"
)

var (
	flagLanguage  string
	flagVerbosity int
	flagGraphemes bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "caret-repl",
		Short: "Interactive caret navigation demo",
		RunE:  run,
	}
	cmd.Flags().StringVar(&flagLanguage, "language", "en", "message language (BCP 47 tag)")
	cmd.Flags().IntVarP(&flagVerbosity, "verbose", "v", 0, "log verbosity")
	cmd.Flags().BoolVar(&flagGraphemes, "graphemes", false, "restrict caret rests to grapheme boundaries")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// REPL holds the state of the interactive session.
type REPL struct {
	engine *caret.Engine
	anchor caret.Anchor
	reader *bufio.Reader
}

func run(cmd *cobra.Command, args []string) error {
	commonlog.Configure(flagVerbosity, nil)

	root := demoDocument()
	options := caret.Options{
		Root:         root,
		CacheWeights: true,
		Language:     flagLanguage,
	}
	if flagGraphemes {
		options.Segment = caret.GraphemeSegments
	}

	engine, err := caret.New(options)
	if err != nil {
		return err
	}

	first, err := engine.FirstAnchor()
	if err != nil {
		return err
	}

	repl := &REPL{
		engine: engine,
		anchor: first,
		reader: bufio.NewReader(os.Stdin),
	}

	fmt.Println("caret REPL - caret navigation demo")
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	fmt.Println()
	repl.printCaret()

	for {
		fmt.Print("caret> ")
		input, err := repl.reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !repl.handleCommand(input) {
			return nil
		}
	}
}

// demoDocument builds the document the session starts with.
func demoDocument() *caret.Node {
	root := caret.NewContainer("doc")
	for _, content := range []string{"hello", "world"} {
		p := caret.NewContainer("p")
		_ = p.AppendChild(caret.NewText(content))
		_ = root.AppendChild(p)
	}
	_ = root.AppendChild(caret.NewVoidContainer("br"))
	empty := caret.NewContainer("b")
	_ = root.AppendChild(empty)
	return root
}

func (r *REPL) handleCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		fmt.Println("Goodbye!")
		return false

	case "tree":
		fmt.Println(caret.ToXML(r.engine.Root()))

	case "caret":
		r.printCaret()

	case "left", "right":
		dir := caret.DirRight
		if cmd == "left" {
			dir = caret.DirLeft
		}
		result := r.engine.HorizontalNeighbor(r.anchor, caret.Step{Direction: dir})
		if result.Err != nil {
			fmt.Printf("error: %v\n", result.Err)
			break
		}
		r.anchor = *result.Next
		if result.NodeChanged {
			fmt.Println("(crossed into another node)")
		}
		r.printCaret()

	case "first", "last":
		var a caret.Anchor
		var err error
		if cmd == "first" {
			a, err = r.engine.FirstAnchor()
		} else {
			a, err = r.engine.LastAnchor()
		}
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		r.anchor = a
		r.printCaret()

	case "goto":
		if len(args) != 1 {
			fmt.Println("usage: goto <offset>")
			break
		}
		offset, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("usage: goto <offset>")
			break
		}
		a, err := r.engine.AnchorByOffset(offset)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		r.anchor = a
		r.printCaret()

	case "offset":
		offset, err := r.engine.OffsetByAnchor(r.anchor)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		fmt.Printf("offset: %d\n", offset)

	case "weight":
		fmt.Printf("total weight: %d\n", r.engine.TotalWeight())

	default:
		fmt.Printf("unknown command: %s (try 'help')\n", cmd)
	}
	return true
}

func (r *REPL) printCaret() {
	node := r.anchor.Node
	switch node.Kind() {
	case caret.KindText:
		fmt.Printf("caret: text %q offset %d\n", node.Text(), r.anchor.Offset)
	default:
		fmt.Printf("caret: <%s> gap %d\n", node.Name(), r.anchor.Offset)
	}
}

func (r *REPL) printHelp() {
	fmt.Println(`Commands:
  tree          print the document
  caret         print the caret position
  left, right   move the caret one step
  first, last   jump to a document edge
  goto <n>      jump to a linear offset
  offset        print the caret's linear offset
  weight        print the document's total weight
  quit          exit`)
}
