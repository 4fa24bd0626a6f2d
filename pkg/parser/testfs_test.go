/*
* Copyright (c) 2024-present SpecML project contributors
 */

package parser

import "testing/fstest"

func testFS(files map[string]string) IReadFS {
	m := fstest.MapFS{}
	for path, content := range files {
		m[path] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}
