// SPDX-License-Identifier: ISC
// Copyright (c) 2021-2026 Coremark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package plugin

import (
	"github.com/coremark-inc/coremarkd/authority"
	"github.com/coremark-inc/coremarkd/identity"
	"github.com/coremark-inc/coremarkd/record"
)

// Event - the lifecycle operation kinds
type Event int

// enumerate lifecycle events
const (
	EventCreate Event = iota
	EventAddPlugin
	EventRemovePlugin
	EventUpdatePlugin
	EventApprovePluginAuthority
	EventRevokePluginAuthority
	EventUpdate
	EventTransfer
	EventBurn
	EventCompress
	EventDecompress
)

// String - describe an event for logging
func (event Event) String() string {
	switch event {
	case EventCreate:
		return "Create"
	case EventAddPlugin:
		return "AddPlugin"
	case EventRemovePlugin:
		return "RemovePlugin"
	case EventUpdatePlugin:
		return "UpdatePlugin"
	case EventApprovePluginAuthority:
		return "ApprovePluginAuthority"
	case EventRevokePluginAuthority:
		return "RevokePluginAuthority"
	case EventUpdate:
		return "Update"
	case EventTransfer:
		return "Transfer"
	case EventBurn:
		return "Burn"
	case EventCompress:
		return "Compress"
	case EventDecompress:
		return "Decompress"
	default:
		return "*unknown*"
	}
}

// CheckResult - whether an entity participates in authorizing an
// event, independent of the caller
type CheckResult int

// enumerate check results
const (
	CheckNone CheckResult = iota
	CheckCanApprove
	CheckCanReject
)

// Participates - true for CanApprove and CanReject
func (result CheckResult) Participates() bool {
	return CheckNone != result
}

// ValidationResult - a per-caller verdict
type ValidationResult int

// enumerate validation results
const (
	ValidationPass ValidationResult = iota
	ValidationApproved
	ValidationRejected
	ValidationForceApproved
)

// String - describe a verdict for logging
func (result ValidationResult) String() string {
	switch result {
	case ValidationPass:
		return "Pass"
	case ValidationApproved:
		return "Approved"
	case ValidationRejected:
		return "Rejected"
	case ValidationForceApproved:
		return "ForceApproved"
	default:
		return "*unknown*"
	}
}

// ValidationContext - everything a validator may consult
//
// ResolvedAuthority is only set for operations that resolve the caller
// up front (burn, transfer, compress style overrides); Target is the
// object the plugin is attached to
type ValidationContext struct {
	Caller            identity.Identity
	NewOwner          *identity.Identity
	ResolvedAuthority authority.Authority
	PluginAuthority   authority.Authority
	Target            record.CoreObject
}

// authorityMatches - caller satisfies the plugin's own authority grant
func (ctx *ValidationContext) authorityMatches() bool {
	if nil == ctx.PluginAuthority || nil == ctx.Target {
		return false
	}
	return nil == authority.Assert(ctx.Target, ctx.Caller, ctx.PluginAuthority)
}

// resolvedMatches - the pre-resolved caller authority equals the
// plugin's grant; used by the permanent override plugins and by the
// management verdict
func (ctx *ValidationContext) resolvedMatches() bool {
	if nil == ctx.ResolvedAuthority || nil == ctx.PluginAuthority {
		return false
	}
	if ctx.ResolvedAuthority.Equal(ctx.PluginAuthority) {
		return true
	}
	// a permanent grant also matches the plain identity label
	if p, ok := ctx.PluginAuthority.(authority.Permanent); ok {
		return ctx.ResolvedAuthority.Equal(authority.Pubkey{Address: p.Address})
	}
	return false
}

// Check - participation of a plugin type in authorizing an event
//
// a pure function of (type, event); no storage access
func Check(pluginType Type, event Event) CheckResult {

	// every plugin participates in its own management
	switch event {
	case EventRemovePlugin, EventUpdatePlugin,
		EventApprovePluginAuthority, EventRevokePluginAuthority:
		if TypeFreeze == pluginType && EventRemovePlugin == event {
			// freeze can also veto removal while frozen
			return CheckCanReject
		}
		return CheckCanApprove
	}

	switch pluginType {

	case TypeRoyalties:
		if EventTransfer == event {
			return CheckCanReject
		}

	case TypeFreeze:
		if EventTransfer == event || EventBurn == event {
			return CheckCanReject
		}

	case TypeBurn:
		if EventBurn == event {
			return CheckCanApprove
		}

	case TypeTransfer:
		if EventTransfer == event {
			return CheckCanApprove
		}

	case TypeUpdateDelegate:
		if EventUpdate == event {
			return CheckCanApprove
		}

	case TypeAttributes:
		// data only, never participates further

	case TypePermanentFreeze:
		switch event {
		case EventTransfer, EventBurn, EventAddPlugin:
			return CheckCanReject
		}

	case TypePermanentTransfer:
		switch event {
		case EventTransfer:
			return CheckCanApprove
		case EventAddPlugin:
			return CheckCanReject
		}

	case TypePermanentBurn:
		switch event {
		case EventBurn:
			return CheckCanApprove
		case EventAddPlugin:
			return CheckCanReject
		}
	}

	return CheckNone
}

// DefaultAuthority - the authority a plugin receives when attached
// without an explicit grant
func DefaultAuthority(pluginType Type) authority.Authority {
	switch pluginType {
	case TypeFreeze, TypeBurn, TypeTransfer:
		return authority.Owner{}
	default:
		return authority.UpdateAuthority{}
	}
}

// shared management verdict: a plugin approves its own management
// events for its recorded authority and passes otherwise
//
// a grant held through resolution must satisfy too: on a delegated
// asset an UpdateAuthority grant names the parent collection's update
// authority, which only the resolved label can identify
func manageVerdict(event Event, ctx *ValidationContext) (ValidationResult, bool) {
	switch event {
	case EventRemovePlugin, EventUpdatePlugin,
		EventApprovePluginAuthority, EventRevokePluginAuthority:
		if ctx.authorityMatches() || ctx.resolvedMatches() {
			return ValidationApproved, true
		}
		return ValidationPass, true
	}
	return ValidationPass, false
}

// Validate implementations

// Validate - royalties can only veto a transfer that violates the ruleset
func (p Royalties) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	if EventTransfer == event && nil != ctx.NewOwner {
		switch p.Ruleset {
		case RulesetAllowList:
			if !containsIdentity(p.RuleAddrs, *ctx.NewOwner) {
				return ValidationRejected, nil
			}
		case RulesetDenyList:
			if containsIdentity(p.RuleAddrs, *ctx.NewOwner) {
				return ValidationRejected, nil
			}
		}
	}
	return ValidationPass, nil
}

// Validate - freeze vetoes transfer, burn and its own removal while frozen
func (p Freeze) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if p.Frozen {
		switch event {
		case EventTransfer, EventBurn, EventRemovePlugin:
			return ValidationRejected, nil
		}
	}
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	return ValidationPass, nil
}

// Validate - burn delegate approves burn for its authority
func (p Burn) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	if EventBurn == event && ctx.authorityMatches() {
		return ValidationApproved, nil
	}
	return ValidationPass, nil
}

// Validate - transfer delegate approves transfer for its authority
func (p Transfer) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	if EventTransfer == event && ctx.authorityMatches() {
		return ValidationApproved, nil
	}
	return ValidationPass, nil
}

// Validate - update delegate approves update for its authority
func (p UpdateDelegate) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	if EventUpdate == event && ctx.authorityMatches() {
		return ValidationApproved, nil
	}
	return ValidationPass, nil
}

// Validate - attributes carry data only
func (p Attributes) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	return ValidationPass, nil
}

// Validate - permanent freeze; attachable only at creation
func (p PermanentFreeze) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if EventAddPlugin == event {
		return ValidationRejected, nil
	}
	if p.Frozen {
		switch event {
		case EventTransfer, EventBurn:
			return ValidationRejected, nil
		}
	}
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	return ValidationPass, nil
}

// Validate - permanent transfer; its authority may always transfer
func (p PermanentTransfer) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if EventAddPlugin == event {
		return ValidationRejected, nil
	}
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	if EventTransfer == event && ctx.resolvedMatches() {
		return ValidationForceApproved, nil
	}
	return ValidationPass, nil
}

// Validate - permanent burn; its authority may always burn
func (p PermanentBurn) Validate(event Event, ctx *ValidationContext) (ValidationResult, error) {
	if EventAddPlugin == event {
		return ValidationRejected, nil
	}
	if EventRevokePluginAuthority == event {
		return ValidationApproved, nil
	}
	if verdict, done := manageVerdict(event, ctx); done {
		return verdict, nil
	}
	if EventBurn == event && ctx.resolvedMatches() {
		return ValidationForceApproved, nil
	}
	return ValidationPass, nil
}

func containsIdentity(list []identity.Identity, id identity.Identity) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}
