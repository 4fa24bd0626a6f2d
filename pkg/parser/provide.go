/*
* Copyright (c) 2024-present SpecML project contributors
 */

package parser

// ParseFile parses content of a single spec file and returns its AST bound
// to fileName. Performs syntax analysis only.
func ParseFile(fileName, content string) (*FileSpecAST, error) {
	ast, err := parseImpl(fileName, content)
	if err != nil {
		return nil, err
	}
	return &FileSpecAST{
		Path: fileName,
		Ast:  ast,
	}, nil
}

// ParseFS parses every *.specml file under dir. Independent files are parsed
// concurrently; the returned slice keeps discovery order. All per-file
// lex/parse errors are joined into the returned error, alongside the ASTs of
// the files that did parse.
func ParseFS(fsys IReadFS, dir string) ([]*FileSpecAST, error) {
	return parseFSImpl(fsys, dir)
}
