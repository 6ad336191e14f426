// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ExistsError - already exists class of errors
	ExistsError GenericError
	// InvalidError - invalid data class of errors
	InvalidError GenericError
	// LengthError - length mismatch class of errors
	LengthError GenericError
	// NotFoundError - missing data class of errors
	NotFoundError GenericError
	// OverflowError - arithmetic overflow class of errors
	OverflowError GenericError
	// ProcessError - failure class of errors
	ProcessError GenericError
	// RecordError - record layout class of errors
	RecordError GenericError
)

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrCannotDecodeIdentity     = RecordError("cannot decode identity")
	ErrCellTooSmall             = LengthError("cell too small")
	ErrChecksumMismatch         = ProcessError("checksum mismatch")
	ErrCollectionNotEmpty       = ProcessError("collection not empty")
	ErrDeserializationFailed    = RecordError("deserialization failed")
	ErrImmutableAuthority       = InvalidError("authority is immutable")
	ErrIncorrectAccount         = ProcessError("incorrect account")
	ErrIncorrectAssetHash       = ProcessError("incorrect asset hash")
	ErrInsufficientDeposit      = InvalidError("insufficient deposit")
	ErrInvalidAuthority         = InvalidError("invalid authority")
	ErrInvalidCollection        = InvalidError("invalid collection")
	ErrInvalidKey               = RecordError("invalid key")
	ErrInvalidKeyLength         = LengthError("invalid key length")
	ErrInvalidKeyType           = InvalidError("invalid key type")
	ErrInvalidPluginType        = RecordError("invalid plugin type")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrNameTooLong              = LengthError("name too long")
	ErrNotInitialised           = NotFoundError("not initialised")
	ErrNotPublicKey             = RecordError("not a public key")
	ErrNumericalOverflow        = OverflowError("numerical overflow")
	ErrPluginAlreadyExists      = ExistsError("plugin already exists")
	ErrPluginNotFound           = NotFoundError("plugin not found")
	ErrUriTooLong               = LengthError("uri too long")
	ErrWrongOwner               = InvalidError("wrong owner")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e OverflowError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine the class of an error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrOverflow - determine the class of an error
func IsErrOverflow(e error) bool { _, ok := e.(OverflowError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - determine the class of an error
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }
