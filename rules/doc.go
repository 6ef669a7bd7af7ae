// Package rules builds insertion blocks for line sequences from declarative
// rules, so splice points can be kept in configuration.
//
//	rules:
//	  - name: section-break
//	    mode: every
//	    pattern: '^## '
//	    insert: ["", "---"]
//	  - name: banner
//	    mode: first
//	    index: 0
//	    insert: ["generated file, do not edit"]
//
// A rule matches a line when all of its conditions hold.
package rules
