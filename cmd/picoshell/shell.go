package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/picoshell-dev/picoshell/alloc"
	"github.com/picoshell-dev/picoshell/console"
	"github.com/picoshell-dev/picoshell/errors"
	"github.com/picoshell-dev/picoshell/object"
	"github.com/picoshell-dev/picoshell/vm"
	"github.com/rs/zerolog"
)

// Shell holds a runtime and a set of named value slots. Each variable is a
// ValueSlot in the runtime's sense: a reference to a string handle. An
// invocation copies the variable's reference into frame slot 0, so the
// variable itself survives operators that overwrite the slot with a result.
type Shell struct {
	rt    *vm.Runtime
	alloc alloc.Allocator
	pool  *alloc.Pool // nil when unbounded
	vars  map[string]*object.String
	log   zerolog.Logger
	out   io.Writer
}

func NewShell(a alloc.Allocator, pool *alloc.Pool, diag console.Console, log zerolog.Logger, out io.Writer) *Shell {
	sh := &Shell{
		alloc: a,
		pool:  pool,
		vars:  map[string]*object.String{},
		log:   log,
		out:   out,
	}
	sh.rt = vm.New(
		vm.WithAllocator(a),
		vm.WithConsole(diag),
		vm.WithReleaser(sh.release),
	)
	return sh
}

// release is the runtime's refcount-zero hook: a string whose handle is no
// longer reachable from any variable is destroyed.
func (sh *Shell) release(obj object.Object) {
	s, ok := obj.(*object.String)
	if !ok {
		return
	}
	if sh.sharedWithVar(s) {
		return
	}
	sh.log.Debug().Str("value", s.Value()).Msg("destroy")
	s.Destroy(sh.alloc)
}

func (sh *Shell) sharedWithVar(s *object.String) bool {
	for _, v := range sh.vars {
		if v.SharesHandle(s) {
			return true
		}
	}
	return false
}

func (sh *Shell) RunInteractive(in io.Reader) error {
	fmt.Fprintf(sh.out, "%s (type %s for commands)\n", bold("picoshell"), yellow("help"))
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, yellow("picoshell> "))
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		if err := sh.Exec(scanner.Text()); err != nil {
			fmt.Fprintln(sh.out, red(err.Error()))
		}
	}
}

func (sh *Shell) RunScript(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := sh.Exec(scanner.Text()); err != nil {
			// Match the runtime's report-and-continue posture for scripts.
			fmt.Fprintln(sh.out, red(err.Error()))
		}
	}
	return scanner.Err()
}

// Exec runs a single shell command line.
func (sh *Shell) Exec(line string) error {
	sh.log.Debug().Str("line", line).Msg("exec")
	tokens, err := tokenize(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	switch tokens[0] {
	case "new":
		return sh.cmdNew(tokens[1:])
	case "alias":
		return sh.cmdAlias(tokens[1:])
	case "call":
		return sh.cmdCall(tokens[1:])
	case "show":
		return sh.cmdShow(tokens[1:])
	case "list":
		return sh.cmdList()
	case "free":
		return sh.cmdFree(tokens[1:])
	case "mem":
		return sh.cmdMem()
	case "methods":
		return sh.cmdMethods()
	case "help":
		return sh.cmdHelp()
	default:
		return fmt.Errorf("unknown command %q (try help)", tokens[0])
	}
}

func (sh *Shell) cmdNew(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: new <var> <text>")
	}
	name, text := args[0], args[1]
	if old, ok := sh.vars[name]; ok {
		delete(sh.vars, name)
		sh.release(old)
	}
	s, err := object.NewStringFromText(sh.alloc, text)
	if err != nil {
		return err
	}
	sh.vars[name] = s
	fmt.Fprintf(sh.out, "%s = %s\n", name, green(s.Inspect()))
	return nil
}

func (sh *Shell) cmdAlias(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: alias <new> <existing>")
	}
	src, ok := sh.vars[args[1]]
	if !ok {
		return fmt.Errorf("undefined variable %q", args[1])
	}
	if old, ok := sh.vars[args[0]]; ok {
		delete(sh.vars, args[0])
		sh.release(old)
	}
	sh.vars[args[0]] = src.Alias()
	fmt.Fprintf(sh.out, "%s is an alias of %s\n", args[0], args[1])
	return nil
}

func (sh *Shell) cmdCall(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: call <var> <method> [args...]")
	}
	receiver, ok := sh.vars[args[0]]
	if !ok {
		return fmt.Errorf("undefined variable %q", args[0])
	}
	callArgs := make([]object.Object, 0, len(args)-2)
	var temps []*object.String
	defer func() {
		for _, tmp := range temps {
			if !sh.sharedWithVar(tmp) {
				tmp.Destroy(sh.alloc)
			}
		}
	}()
	for _, tok := range args[2:] {
		obj, tmp, err := sh.parseArg(tok)
		if err != nil {
			return err
		}
		if tmp != nil {
			temps = append(temps, tmp)
		}
		callArgs = append(callArgs, obj)
	}

	// Slot 0 gets its own reference to the receiver's handle, like a stack
	// slot copy would.
	frame := sh.rt.NewFrame(receiver.Alias(), callArgs...)
	sh.log.Debug().Str("receiver", args[0]).Str("method", args[1]).Msg("invoke")
	result, err := sh.rt.Invoke(context.Background(), frame, args[1])
	if err != nil {
		if errors.IsUsage(err) {
			// A usage error is a value of the session, not a shell failure:
			// report it and keep going, like a script interpreter would.
			fmt.Fprintf(sh.out, "=> %s\n", red(object.NewError(err).Inspect()))
			return nil
		}
		return err
	}
	fmt.Fprintf(sh.out, "=> %s\n", green(result.Inspect()))
	if s, ok := result.(*object.String); ok && !sh.sharedWithVar(s) {
		// The result is not reachable from any variable once printed.
		sh.release(s)
	}
	return nil
}

// parseArg converts one token into an object: $name references a variable,
// integer literals become ints, true/false/nil their singletons, and
// anything else a temporary string (returned so the caller can reclaim it).
func (sh *Shell) parseArg(tok string) (object.Object, *object.String, error) {
	if strings.HasPrefix(tok, "$") {
		v, ok := sh.vars[tok[1:]]
		if !ok {
			return nil, nil, fmt.Errorf("undefined variable %q", tok[1:])
		}
		return v, nil, nil
	}
	switch tok {
	case "nil":
		return object.Nil, nil, nil
	case "true":
		return object.True, nil, nil
	case "false":
		return object.False, nil, nil
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return object.NewInt(n), nil, nil
	}
	s, err := object.NewStringFromText(sh.alloc, tok)
	if err != nil {
		return nil, nil, err
	}
	return s, s, nil
}

func (sh *Shell) cmdShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <var>")
	}
	s, ok := sh.vars[args[0]]
	if !ok {
		return fmt.Errorf("undefined variable %q", args[0])
	}
	fmt.Fprintf(sh.out, "%s = %s (%d bytes)\n", args[0], green(s.Inspect()), s.Len())
	return nil
}

func (sh *Shell) cmdList() error {
	if len(sh.vars) == 0 {
		fmt.Fprintln(sh.out, "no variables")
		return nil
	}
	names := make([]string, 0, len(sh.vars))
	for name := range sh.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := sh.vars[name]
		aliases := ""
		for _, other := range names {
			if other != name && sh.vars[other].SharesHandle(s) {
				aliases += " " + other
			}
		}
		if aliases != "" {
			fmt.Fprintf(sh.out, "%s = %s (aliases:%s)\n", name, green(s.Inspect()), aliases)
		} else {
			fmt.Fprintf(sh.out, "%s = %s\n", name, green(s.Inspect()))
		}
	}
	return nil
}

func (sh *Shell) cmdFree(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: free <var>")
	}
	s, ok := sh.vars[args[0]]
	if !ok {
		return fmt.Errorf("undefined variable %q", args[0])
	}
	delete(sh.vars, args[0])
	sh.release(s)
	return nil
}

func (sh *Shell) cmdMem() error {
	if sh.pool == nil {
		fmt.Fprintln(sh.out, "pool: unbounded")
		return nil
	}
	fmt.Fprintf(sh.out, "pool: %d of %d bytes in use, %d allocations\n",
		sh.pool.Live(), sh.pool.Budget(), sh.pool.Allocs())
	return nil
}

func (sh *Shell) cmdMethods() error {
	for _, spec := range object.StringMethodSpecs() {
		args := strings.Join(spec.Args, ", ")
		fmt.Fprintf(sh.out, "%-10s (%s) -> %-8s %s\n",
			bold(spec.Name), args, spec.Returns, spec.Doc)
	}
	return nil
}

func (sh *Shell) cmdHelp() error {
	fmt.Fprint(sh.out, `commands:
  new <var> <text>                create a string variable
  alias <new> <existing>          share the existing variable's handle
  call <var> <method> [args...]   invoke an operator ($name, 123, "text")
  show <var>                      print a variable
  list                            print all variables
  free <var>                      drop a variable, destroying the last reference
  mem                             allocator statistics
  methods                         list string operators
`)
	return nil
}

// tokenize splits a command line into tokens, honoring double-quoted
// segments with the usual escape sequences. A # outside quotes starts a
// comment.
func tokenize(line string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		switch {
		case line[i] == ' ' || line[i] == '\t':
			i++
		case line[i] == '#':
			return tokens, nil
		case line[i] == '"':
			end := i + 1
			for end < len(line) {
				if line[end] == '\\' {
					end += 2
					continue
				}
				if line[end] == '"' {
					break
				}
				end++
			}
			if end >= len(line) {
				return nil, fmt.Errorf("unterminated quote")
			}
			tok, err := strconv.Unquote(line[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("bad quoted token: %w", err)
			}
			tokens = append(tokens, tok)
			i = end + 1
		default:
			end := i
			for end < len(line) && line[end] != ' ' && line[end] != '\t' {
				end++
			}
			tokens = append(tokens, line[i:end])
			i = end
		}
	}
	return tokens, nil
}
