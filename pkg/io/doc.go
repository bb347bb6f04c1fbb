// Package io provides JSON import and export of circuit edge lists and
// rendered element lists.
//
// The edge list format is a JSON object with an "edges" array:
//
//	{
//	  "edges": [
//	    {"source": "a0.1", "target": "m0-0"},
//	    {"source": "m0-0", "target": "resid_post"}
//	  ]
//	}
//
// Element lists are written as a plain JSON array in the schema the rendering
// widget consumes (see package layout). Elements are export-only: the widget
// is the consumer, nothing reads them back.
package io
