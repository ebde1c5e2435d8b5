package fdt

import "errors"

var (
	// ErrTruncated indicates the blob is too short for a field or block
	// the header declares.
	ErrTruncated = errors.New("fdt: truncated blob")

	// ErrInvalidMagic indicates the blob does not start with the FDT
	// magic 0xd00dfeed.
	ErrInvalidMagic = errors.New("fdt: invalid magic")

	// ErrUnsupportedVersion indicates a devicetree format version other
	// than 17.
	ErrUnsupportedVersion = errors.New("fdt: unsupported version")

	// ErrInvalidLastCompVersion indicates a last compatible version other
	// than 16. A DTSpec boot program must provide a devicetree backwards
	// compatible with version 16.
	ErrInvalidLastCompVersion = errors.New("fdt: invalid last compatible version")

	// ErrFullRsvRegions indicates the fixed-size buffer for memory
	// reservation entries is full.
	ErrFullRsvRegions = errors.New("fdt: memory reservation buffer is full")

	// ErrUnknownToken indicates an unrecognized token in the structure
	// block.
	ErrUnknownToken = errors.New("fdt: unknown token")

	// ErrMalformedStructure indicates a structure block that violates the
	// token grammar or its declared size.
	ErrMalformedStructure = errors.New("fdt: malformed structure")

	// ErrMalformedPath indicates a lookup path that is not absolute.
	ErrMalformedPath = errors.New("fdt: malformed path")

	// ErrNotFound indicates the requested node or property does not
	// exist.
	ErrNotFound = errors.New("fdt: not found")

	// ErrAmbiguousPath indicates a unit-address-less path component that
	// matches more than one node.
	ErrAmbiguousPath = errors.New("fdt: ambiguous path")

	// ErrConversion indicates a property value whose length does not
	// match the requested type.
	ErrConversion = errors.New("fdt: conversion error")
)
