// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"REG_COUNT": strconv.Itoa(REGISTER_COUNT),
	"REG_ACC":   reg(REGISTER_ACC),
	"REG_LINK":  reg(REGISTER_LINK),
}

// Defines returns an iterator over the system equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(sysEquate)
}

var (
	reParen   = regexp.MustCompile(`\$\([^\$]*\)`)
	reComment = regexp.MustCompile(`[;#].*$`)
)

// MACRO_DEPTH is the deepest permitted nesting of macro expansions.
const MACRO_DEPTH = 16

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Assembler is a two pass macro assembler. Parse is the first pass, building
// the instruction list and label table; the second pass is performed by
// the resulting Program when it is serialized.
type Assembler struct {
	Verbose      bool          // If set, verbosely logs the assembler actions.
	Instructions []Instruction // List of parsed instructions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to instruction steps.
	Equate    map[string]string // Map of equates.
	Macro     map[string]*Macro // Map of macros.

	depth     int // Current macro expansion depth.
	expansion int // Count of macro expansions, for unique '@' labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = ParseNumber(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// substitute replaces a word that names an equate, including either
// half of an imm($reg) operand.
func (asm *Assembler) substitute(word string) string {
	equate, ok := asm.Equate[word]
	if ok {
		return equate
	}

	match := reMemory.FindStringSubmatch(word)
	if match != nil {
		imm := strings.TrimSpace(match[1])
		rs := strings.TrimSpace(match[2])
		if value, ok := asm.Equate[imm]; ok {
			imm = value
		}
		if value, ok := asm.Equate[rs]; ok {
			rs = value
		}
		return imm + "(" + rs + ")"
	}

	return word
}

// splitArgs splits operand text on commas, trimming each operand.
func splitArgs(text string) (args []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}
	args = strings.Split(text, ",")
	for n, arg := range args {
		args[n] = strings.TrimSpace(arg)
	}
	return
}

// parseLine parses a single line, which may define labels, an equate,
// or an instruction.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for {
		n := strings.IndexByte(words[0], ':')
		if n < 0 {
			break
		}
		label := words[0][:n]
		if !reLabel.MatchString(label) {
			err = &ErrOperand{Token: label, LineNo: lineno, Err: ErrLabelInvalid}
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentStep()

		if rest := words[0][n+1:]; len(rest) > 0 {
			words[0] = rest
		} else {
			words = words[1:]
		}
		if len(words) == 0 {
			return
		}
	}

	name := asm.substitute(words[0])
	args := splitArgs(strings.Join(words[1:], " "))
	for n, arg := range args {
		args[n] = asm.substitute(arg)
	}

	macro, ok := asm.Macro[name]
	if ok {
		err = asm.expand(name, macro, args, lineno)
		return
	}

	in, err := ParseInstruction(name, args, lineno, asm.currentStep())
	if err != nil {
		return
	}

	asm.Instructions = append(asm.Instructions, in)

	return
}

// expand parses the body of a macro, with its arguments bound as
// equates. Every expanded line carries the line number of the call site.
// An '@' in the body is replaced by a prefix unique to this expansion.
func (asm *Assembler) expand(name string, macro *Macro, args []string, lineno int) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if asm.depth >= MACRO_DEPTH {
		err = ErrMacroRecursion
		return
	}
	asm.depth++
	asm.expansion++
	prefix := fmt.Sprintf("%v_%v_", name, asm.expansion)

	old_equate := maps.Clone(asm.Equate)
	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}
	defer func() {
		asm.Equate = old_equate
		asm.depth--
	}()

	if asm.Verbose {
		logrus.WithField("line", lineno).Infof("asm: expand %v %v", name, args)
	}

	for n, line := range macro.Lines {
		line = strings.ReplaceAll(line, "@", prefix)
		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, LineNo: macro.LineNo + n, Err: err}
			return
		}
	}

	return
}

// define handles the .macro and .endm directives, and collects the
// body of the macro being defined. It returns true if the line was
// consumed.
func (asm *Assembler) define(macro **Macro, line string, lineno int) (ok bool, err error) {
	words := strings.Fields(line)

	switch {
	case words[0] == ".macro":
		ok = true
		if *macro != nil {
			err = ErrMacroNesting
			return
		}
		if len(words) < 2 || !reLabel.MatchString(words[1]) {
			err = ErrMacroSyntax
			return
		}
		name := words[1]
		_, exists := asm.Macro[name]
		_, is_mnemonic := LookupMnemonic(name)
		if exists || is_mnemonic {
			err = ErrMacroDuplicate
			return
		}
		args := splitArgs(strings.Join(words[2:], " "))
		for _, arg := range args {
			if !reLabel.MatchString(arg) {
				err = ErrMacroSyntax
				return
			}
		}
		*macro = &Macro{LineNo: lineno + 1, Args: args}
		asm.Macro[name] = *macro
	case words[0] == ".endm":
		ok = true
		if *macro == nil {
			err = ErrMacroLonelyEndm
			return
		}
		*macro = nil
	case *macro != nil:
		ok = true
		(*macro).Lines = append((*macro).Lines, line)
	}

	return
}

// currentStep gets the step of the next instruction.
func (asm *Assembler) currentStep() int {
	return len(asm.Instructions)
}

// Parse parses an input stream into a Program. Parsing stops at the
// first syntax error.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Instructions = asm.Instructions[:0]
	asm.Label = make(map[string]int, 16)
	asm.Macro = make(map[string]*Macro)
	asm.depth = 0
	asm.expansion = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			logrus.WithField("line", lineno).Infof("asm: %v", text)
		}

		line = strings.TrimSpace(reComment.ReplaceAllString(text, ""))
		if len(line) == 0 {
			continue
		}

		var defined bool
		defined, err = asm.define(&macro, line, lineno)
		if err != nil {
			return
		}
		if defined {
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instructions),
		Label:        maps.Clone(asm.Label),
	}

	if asm.Verbose {
		logrus.Infof("asm: %d instructions, %d labels", prog.Len(), len(prog.Label))
	}

	return
}

// Assemble parses the source text and returns both hex serializations.
func Assemble(input io.Reader) (full, compact string, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	full, err = prog.Assemble()
	if err != nil {
		return
	}

	compact, err = prog.AssembleA()
	if err != nil {
		full = ""
		return
	}

	return
}
