// Package model defines stable boundary types for API layers.
//
// Transaction identity (canonical bytes and hashes) is unaffected by any
// projection. These structs are the only types intended for direct JSON
// serialization by consumers.
package model
