package ietfparse

//go:generate go tool errtrace -w .

// Version is the current ietfparse package version
var Version = "0.0.0"
