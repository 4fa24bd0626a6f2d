/*
* Copyright (c) 2024-present SpecML project contributors
 */

package parser

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var specLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Array", Pattern: `\[\]`},
	{Name: "ImportPath", Pattern: `@(/[a-zA-Z_][\w.-]*)+`},
	{Name: "Path", Pattern: `/[^\s{}<>(),|?]*`},
	{Name: "Float", Pattern: `[-+]?\d+\.\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "String", Pattern: `"(\\"|[^"\n])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Operators", Pattern: `[{}<>(),:|?#]`},
	{Name: "Whitespace", Pattern: `[ \r\n\t]+`},
})

var specParser = participle.MustBuild[SpecAST](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

func parseImpl(fileName string, content string) (*SpecAST, error) {
	ast, err := specParser.ParseString(fileName, content)
	if err != nil {
		return nil, wrapParticipleError(fileName, err)
	}
	return ast, nil
}

func wrapParticipleError(fileName string, err error) error {
	var unexpected *participle.UnexpectedTokenError
	if errors.As(err, &unexpected) {
		pos := unexpected.Position()
		if pos.Filename == "" {
			pos.Filename = fileName
		}
		return &ParseError{
			Pos:      pos,
			Expected: unexpected.Expect,
			Found:    unexpected.Unexpected.Value,
		}
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		pos := lexErr.Position()
		if pos.Filename == "" {
			pos.Filename = fileName
		}
		return &LexError{Pos: pos, Msg: lexErr.Message()}
	}
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		if pos.Filename == "" {
			pos.Filename = fileName
		}
		return &ParseError{Pos: pos, Found: perr.Message()}
	}
	return err
}

// parseFSImpl walks the tree below dir collecting every *.specml file, then
// parses independent files on maxParseWorkers goroutines. Results keep
// discovery order (sorted walk order) regardless of scheduling; per-file
// errors are joined, a failed file produces no AST.
func parseFSImpl(fsys IReadFS, dir string) ([]*FileSpecAST, error) {
	paths := make([]string, 0)
	err := walkSpecFiles(fsys, dir, &paths)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrDirContainsNoSpecFiles
	}
	sort.Strings(paths)

	type slot struct {
		ast *FileSpecAST
		err error
	}
	slots := make([]slot, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxParseWorkers)
	for i := range paths {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			bytes, err := fsys.ReadFile(paths[i])
			if err != nil {
				slots[i].err = err
				return
			}
			relPath := relativeTo(paths[i], dir)
			ast, err := parseImpl(relPath, string(bytes))
			if err != nil {
				slots[i].err = err
				return
			}
			slots[i].ast = &FileSpecAST{Path: relPath, Ast: ast}
		}(i)
	}
	wg.Wait()

	files := make([]*FileSpecAST, 0, len(paths))
	errs := make([]error, 0)
	for i := range slots {
		if slots[i].err != nil {
			errs = append(errs, slots[i].err)
			continue
		}
		files = append(files, slots[i].ast)
	}
	return files, errors.Join(errs...)
}

func walkSpecFiles(fsys IReadFS, dir string, paths *[]string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fp := joinPath(dir, entry.Name())
		if entry.IsDir() {
			if err := walkSpecFiles(fsys, fp, paths); err != nil {
				return err
			}
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), specFileExt) {
			*paths = append(*paths, fp)
		}
	}
	return nil
}

func joinPath(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}

func relativeTo(path, dir string) string {
	if dir == "" || dir == "." {
		return filepath.ToSlash(path)
	}
	return strings.TrimPrefix(filepath.ToSlash(path), filepath.ToSlash(dir)+"/")
}
