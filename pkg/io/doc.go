// Package io provides JSON import and export for reconstructed schematics.
//
// # JSON Format
//
// A schematic is written as its component list and the wires found between
// corner components:
//
//	{
//	  "components": [
//	    {"class": 4, "x": 3, "y": 3, "name": "Corner#4"},
//	    {"class": 5, "x": 3, "y": 6, "name": "Corner#5"},
//	    {"class": 13, "x": 5, "y": 3, "name": "Resistance#0"}
//	  ],
//	  "wires": [
//	    {"from": 0, "to": 1, "dir": "bottom"}
//	  ]
//	}
//
// Components are identified by their position in the list. x and y are cell
// coordinates. name is informational and ignored on import. A wire joins
// port dir of component from to the opposite port of component to.
//
// [ReadJSON] rebuilds the links through [schematic.Graph.Connect], so a file
// naming a port a component does not have, or linking a port twice, is
// rejected.
package io
