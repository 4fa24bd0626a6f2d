/*
* Copyright (c) 2024-present SpecML project contributors
 */

package parser

const (
	specFileExt = ".specml"

	// DataFileSuffix and ApiFileSuffix distinguish file intent. Both kinds
	// share one grammar.
	DataFileSuffix = ".data.specml"
	ApiFileSuffix  = ".api.specml"
)

const maxParseWorkers = 8
