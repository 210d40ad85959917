//go:build !unix && !windows

package dbase

var DefaultIO GenericIO
