// Package flowhcl loads workflow definitions from HCL files. It is the CLI's
// definition surface; the HTTP transport speaks JSON. A definition looks like:
//
//	workflow "demo" {
//	  name = "Demo"
//
//	  node "a" {
//	    type  = "text"
//	    attrs = { label = "A", text = "hello" }
//	  }
//
//	  port "p1" {
//	    node      = "b"
//	    direction = "input"
//	    label     = "text"
//	  }
//
//	  edge "e1" {
//	    from        = "a"
//	    to          = "b"
//	    target_port = "p1"
//	  }
//	}
//
// Node attributes are arbitrary HCL object literals, converted to native Go
// values for the engine.
package flowhcl
