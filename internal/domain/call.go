package domain

// EntryPoint names an operation of the contract.
type EntryPoint string

const (
	EntryPointInstall           EntryPoint = "install"
	EntryPointSetVariables      EntryPoint = "set_variables"
	EntryPointMint              EntryPoint = "mint"
	EntryPointBurn              EntryPoint = "burn"
	EntryPointTransfer          EntryPoint = "transfer"
	EntryPointApprove           EntryPoint = "approve"
	EntryPointSetApprovalForAll EntryPoint = "set_approval_for_all"
	EntryPointRegisterOwner     EntryPoint = "register_owner"
)

// EntryPoints lists every entry point a Call can target.
var EntryPoints = []EntryPoint{
	EntryPointInstall,
	EntryPointSetVariables,
	EntryPointMint,
	EntryPointBurn,
	EntryPointTransfer,
	EntryPointApprove,
	EntryPointSetApprovalForAll,
	EntryPointRegisterOwner,
}

// Stored reports whether the entry point is called directly on the installed
// contract. The others run a session program.
func (e EntryPoint) Stored() bool {
	switch e {
	case EntryPointInstall, EntryPointMint, EntryPointTransfer:
		return false
	default:
		return true
	}
}

// DefaultProgram is the bundled session program of a session entry point.
func (e EntryPoint) DefaultProgram() string {
	switch e {
	case EntryPointInstall:
		return "contract.wasm"
	case EntryPointMint:
		return "mint_call.wasm"
	case EntryPointTransfer:
		return "transfer_call.wasm"
	default:
		return ""
	}
}

// Call is one invocation of the contract. The set of variants is closed.
type Call interface {
	EntryPoint() EntryPoint
	isCall()
}

type InstallCall struct{ InstallArgs }
type SetVariablesCall struct{ ConfigurableVariables }
type MintCall struct{ MintArgs }
type BurnCall struct{ BurnArgs }
type TransferCall struct{ TransferArgs }
type ApproveCall struct{ ApproveArgs }
type SetApprovalForAllCall struct{ ApprovalForAllArgs }
type RegisterOwnerCall struct{ RegisterOwnerArgs }

func (InstallCall) EntryPoint() EntryPoint           { return EntryPointInstall }
func (SetVariablesCall) EntryPoint() EntryPoint      { return EntryPointSetVariables }
func (MintCall) EntryPoint() EntryPoint              { return EntryPointMint }
func (BurnCall) EntryPoint() EntryPoint              { return EntryPointBurn }
func (TransferCall) EntryPoint() EntryPoint          { return EntryPointTransfer }
func (ApproveCall) EntryPoint() EntryPoint           { return EntryPointApprove }
func (SetApprovalForAllCall) EntryPoint() EntryPoint { return EntryPointSetApprovalForAll }
func (RegisterOwnerCall) EntryPoint() EntryPoint     { return EntryPointRegisterOwner }

func (InstallCall) isCall()           {}
func (SetVariablesCall) isCall()      {}
func (MintCall) isCall()              {}
func (BurnCall) isCall()              {}
func (TransferCall) isCall()          {}
func (ApproveCall) isCall()           {}
func (SetApprovalForAllCall) isCall() {}
func (RegisterOwnerCall) isCall()     {}
